// Package peers turns local method calls into calls to the platform's other
// services. Each call forwards the caller identity found in its context,
// runs under a bounded timeout and reports failures as one of
// PEER_UNAVAILABLE, PEER_REJECTED, PEER_FAULTED or TIMEOUT.
package peers

import (
	config "github.com/anjiri1684/workhub/configs"
	"github.com/charmbracelet/log"
)

type Gateway struct {
	Users       *UserClient
	Departments *DepartmentClient
	Projects    *ProjectClient
	Tasks       *TaskClient
	Documents   *DocumentClient
}

func NewGateway(cfg config.PeerConfig, logger *log.Logger) *Gateway {
	return &Gateway{
		Users:       NewUserClient(NewClient("user-service", cfg.UserURL, cfg.Timeout, logger)),
		Departments: NewDepartmentClient(NewClient("department-service", cfg.DepartmentURL, cfg.Timeout, logger)),
		Projects:    NewProjectClient(NewClient("project-service", cfg.ProjectURL, cfg.Timeout, logger)),
		Tasks:       NewTaskClient(NewClient("task-service", cfg.TaskURL, cfg.Timeout, logger)),
		Documents:   NewDocumentClient(NewClient("document-service", cfg.DocumentURL, cfg.Timeout, logger)),
	}
}
