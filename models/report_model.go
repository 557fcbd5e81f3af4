package models

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	FileRef   string    `gorm:"size:255;not null" json:"file_ref"`
	TaskID    *string   `gorm:"size:64" json:"task_id,omitempty"`
	CreatedBy string    `gorm:"size:64;not null;index" json:"created_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	Receivers []ReportReceiver `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"receivers,omitempty"`
}

// ReportReceiver is one receiver's delivery row. ReadAt is set iff IsRead.
type ReportReceiver struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_report_receiver" json:"report_id"`
	ReceiverID string     `gorm:"size:64;not null;uniqueIndex:idx_report_receiver;index" json:"receiver_id"`
	IsRead     bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt     *time.Time `json:"read_at"`

	Report *Report `gorm:"foreignKey:ReportID" json:"report,omitempty"`
}
