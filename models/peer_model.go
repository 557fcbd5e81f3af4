package models

import "time"

// Shapes returned by peer services. Only the fields this service reads are
// declared; everything else in the peer payload is ignored.

type UserProfile struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	DepartmentID *string `json:"department_id,omitempty"`
	AvatarURL    *string `json:"avatar_url,omitempty"`
}

type CreateAccountRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	DepartmentID string `json:"department_id,omitempty"`
}

type Account struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username,omitempty"`
}

type Department struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	ManagerID string   `json:"manager_id,omitempty"`
	MemberIDs []string `json:"member_ids,omitempty"`
}

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Status       string   `json:"status,omitempty"`
	DepartmentID string   `json:"department_id,omitempty"`
	OwnerID      string   `json:"owner_id,omitempty"`
	MemberIDs    []string `json:"member_ids,omitempty"`
}

type Task struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Title      string     `json:"title"`
	Status     string     `json:"status,omitempty"`
	AssigneeID string     `json:"assignee_id,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

type Document struct {
	ID             string  `json:"id"`
	FileName       string  `json:"file_name"`
	URL            string  `json:"url"`
	ConversationID *string `json:"conversation_id,omitempty"`
}
