package handlers

import (
	"context"
	"sync"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/anjiri1684/workhub/services"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPageSize = 50
	// enrichmentWorkers bounds concurrent profile lookups per request.
	enrichmentWorkers = 4
)

type MessagingHandler struct {
	Conversations *services.ConversationService
	Messages      *services.MessageService
	Users         UserPeer
	Departments   DepartmentPeer
	Projects      ProjectPeer
	Logger        *log.Logger
}

type CreateDirectRequest struct {
	RecipientID string `json:"recipient_id" validate:"required"`
}

type CreateGroupRequest struct {
	Name      string   `json:"name" validate:"max=120"`
	MemberIDs []string `json:"member_ids" validate:"required,min=1,dive,required"`
}

type AddMembersRequest struct {
	UserIDs []string `json:"user_ids" validate:"required,min=1,dive,required"`
}

type SendMessageRequest struct {
	Content     string   `json:"content" validate:"max=10000"`
	Attachments []string `json:"attachments" validate:"dive,required"`
}

type ConversationView struct {
	models.Conversation
	MemberProfiles []models.UserProfile `json:"member_profiles,omitempty"`
}

// Enrichment reports whether member profiles could be fetched from the user
// service. A failed lookup never fails the listing.
type Enrichment struct {
	Status string         `json:"status"`
	Kind   apperrors.Kind `json:"kind,omitempty"`
}

type ConversationList struct {
	Data       []ConversationView `json:"data"`
	Enrichment Enrichment         `json:"enrichment"`
}

func (h *MessagingHandler) GetUserConversations(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	convs, err := h.Conversations.FindByMember(c.UserContext(), userID)
	if err != nil {
		return err
	}

	profiles, enrichErr := h.lookupProfiles(c.UserContext(), convs)
	out := ConversationList{
		Data:       make([]ConversationView, 0, len(convs)),
		Enrichment: Enrichment{Status: "complete"},
	}
	if enrichErr != nil {
		h.Logger.Warn("conversation enrichment degraded", "kind", apperrors.KindOf(enrichErr), "err", enrichErr)
		out.Enrichment = Enrichment{Status: "degraded", Kind: apperrors.KindOf(enrichErr)}
	}
	for _, conv := range convs {
		view := ConversationView{Conversation: conv}
		for _, member := range conv.Members {
			if p, ok := profiles[member]; ok {
				view.MemberProfiles = append(view.MemberProfiles, p)
			}
		}
		out.Data = append(out.Data, view)
	}
	return c.JSON(out)
}

// lookupProfiles fetches every distinct member once. It returns whatever it
// could fetch along with the first failure.
func (h *MessagingHandler) lookupProfiles(ctx context.Context, convs []models.Conversation) (map[string]models.UserProfile, error) {
	var ids []string
	for _, conv := range convs {
		ids = append(ids, conv.Members...)
	}
	ids = models.UniqueMembers(ids...)

	var mu sync.Mutex
	profiles := make(map[string]models.UserProfile, len(ids))
	var g errgroup.Group
	g.SetLimit(enrichmentWorkers)
	for _, id := range ids {
		g.Go(func() error {
			p, err := h.Users.GetUser(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			profiles[id] = *p
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	return profiles, err
}

func (h *MessagingHandler) CreateOrGetDirectConversation(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateDirectRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	conv, created, err := h.Conversations.CreateDirectOrReuse(c.UserContext(), userID, req.RecipientID)
	if err != nil {
		return err
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(conv)
	}
	return c.JSON(conv)
}

func (h *MessagingHandler) CreateGroupConversation(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateGroupRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	conv, err := h.Conversations.CreateGroup(c.UserContext(), userID, req.MemberIDs, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// CreateProjectConversation opens a group for the project's owner and
// members as known to the project service.
func (h *MessagingHandler) CreateProjectConversation(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	project, err := h.Projects.GetProject(c.UserContext(), c.Params("projectId"))
	if err != nil {
		return peerNotFound(err, "Project not found")
	}

	members := append([]string{project.OwnerID}, project.MemberIDs...)
	conv, err := h.Conversations.CreateGroup(c.UserContext(), userID, members, project.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

func (h *MessagingHandler) CreateDepartmentConversation(c *fiber.Ctx) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	dept, err := h.Departments.GetDepartment(c.UserContext(), c.Params("departmentId"))
	if err != nil {
		return peerNotFound(err, "Department not found")
	}

	members := append([]string{dept.ManagerID}, dept.MemberIDs...)
	conv, err := h.Conversations.CreateGroup(c.UserContext(), userID, members, dept.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

func (h *MessagingHandler) GetConversation(c *fiber.Ctx) error {
	conv, _, err := h.memberConversation(c)
	if err != nil {
		return err
	}
	return c.JSON(conv)
}

func (h *MessagingHandler) AddMembers(c *fiber.Ctx) error {
	conv, _, err := h.memberConversation(c)
	if err != nil {
		return err
	}
	var req AddMembersRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.Conversations.AddMembers(c.UserContext(), conv.ID, req.UserIDs)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

func (h *MessagingHandler) GetConversationMessages(c *fiber.Ctx) error {
	conv, _, err := h.memberConversation(c)
	if err != nil {
		return err
	}
	page := c.QueryInt("page", 0)
	pageSize := c.QueryInt("page_size", defaultPageSize)

	messages, err := h.Messages.Page(c.UserContext(), conv.ID, page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(messages)
}

func (h *MessagingHandler) SendMessage(c *fiber.Ctx) error {
	conv, userID, err := h.memberConversation(c)
	if err != nil {
		return err
	}
	var req SendMessageRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	msg, err := h.Messages.Append(c.UserContext(), conv.ID, userID, req.Content, req.Attachments)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// memberConversation loads :conversationId and checks the caller belongs
// to it. It returns the caller's id alongside the conversation.
func (h *MessagingHandler) memberConversation(c *fiber.Ctx) (*models.Conversation, string, error) {
	return loadMemberConversation(c, h.Conversations)
}

func loadMemberConversation(c *fiber.Ctx, conversations *services.ConversationService) (*models.Conversation, string, error) {
	userID, err := callerID(c)
	if err != nil {
		return nil, "", err
	}
	conv, err := conversations.Get(c.UserContext(), c.Params("conversationId"))
	if err != nil {
		return nil, "", err
	}
	if !conv.HasMember(userID) {
		return nil, "", fiber.NewError(fiber.StatusForbidden, "You are not a member of this conversation")
	}
	return conv, userID, nil
}
