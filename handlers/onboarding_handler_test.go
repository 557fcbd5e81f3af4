package handlers_test

import (
	"net/http"
	"testing"

	"github.com/anjiri1684/workhub/handlers"
	"github.com/anjiri1684/workhub/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboard(t *testing.T) {
	env := newTestEnv(t)
	env.peer.handle("POST /api/accounts", models.Account{ID: "acc-1", UserID: "newbie", Email: "new@corp.test"}, http.StatusCreated)
	env.peer.handle("POST /departments/d1/users", map[string]string{"status": "ok"}, http.StatusOK)
	env.peer.handle("POST /departments/d-down/users", map[string]string{"error": "down"}, http.StatusServiceUnavailable)

	var resp handlers.OnboardResponse
	status := env.call(t, "hr", fiber.MethodPost, "/api/v1/onboarding", handlers.OnboardRequest{
		FullName: "New Person", Email: "new@corp.test", DepartmentID: "d1",
	}, &resp)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "newbie", resp.Account.UserID)
	assert.True(t, resp.Department.Done)
	assert.True(t, resp.Welcome.Done)
	require.NotEmpty(t, resp.ConversationID)

	var messages []models.Message
	status = env.call(t, "newbie", fiber.MethodGet, "/api/v1/conversations/"+resp.ConversationID+"/messages", nil, &messages)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, messages, 1)
	assert.Equal(t, "Welcome aboard, New Person!", messages[0].Content)

	resp = handlers.OnboardResponse{}
	status = env.call(t, "hr", fiber.MethodPost, "/api/v1/onboarding", handlers.OnboardRequest{
		FullName: "New Person", Email: "new@corp.test", DepartmentID: "d-down",
	}, &resp)
	require.Equal(t, fiber.StatusCreated, status)
	assert.False(t, resp.Department.Done)
	assert.EqualValues(t, "PEER_FAULTED", resp.Department.Kind)
	assert.True(t, resp.Welcome.Done)
}

func TestOnboardFailsWhenAccountCannotBeCreated(t *testing.T) {
	env := newTestEnv(t)
	env.peer.handle("POST /api/accounts", map[string]string{"error": "email taken"}, http.StatusConflict)

	var errResp errorBody
	status := env.call(t, "hr", fiber.MethodPost, "/api/v1/onboarding", handlers.OnboardRequest{
		FullName: "Dup", Email: "dup@corp.test",
	}, &errResp)
	assert.Equal(t, fiber.StatusBadGateway, status)
	assert.Equal(t, "PEER_REJECTED", errResp.Kind)

	status = env.call(t, "hr", fiber.MethodPost, "/api/v1/onboarding", handlers.OnboardRequest{
		FullName: "Bad", Email: "not-an-email",
	}, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
