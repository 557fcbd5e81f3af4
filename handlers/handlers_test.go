package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/anjiri1684/workhub/handlers"
	"github.com/anjiri1684/workhub/logging"
	"github.com/anjiri1684/workhub/peers"
	"github.com/anjiri1684/workhub/routes"
	"github.com/anjiri1684/workhub/services"
	"github.com/anjiri1684/workhub/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "handler-test-secret"

// peerStub stands in for every upstream service. Handlers for individual
// routes are installed per test.
type peerStub struct {
	mux    *http.ServeMux
	server *httptest.Server

	mu   sync.Mutex
	auth []string
}

func newPeerStub(t *testing.T) *peerStub {
	p := &peerStub{mux: http.NewServeMux()}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.auth = append(p.auth, r.Header.Get(fiber.HeaderAuthorization))
		p.mu.Unlock()
		p.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(p.server.Close)
	return p
}

func (p *peerStub) handle(pattern string, body interface{}, status int) {
	p.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	})
}

func (p *peerStub) seenAuth() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.auth...)
}

type testEnv struct {
	app           *fiber.App
	peer          *peerStub
	conversations *testutil.Conversations
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	peer := newPeerStub(t)
	return newTestEnvWithPeerURL(t, peer, peer.server.URL)
}

func newTestEnvWithPeerURL(t *testing.T, peer *peerStub, peerURL string) *testEnv {
	t.Helper()
	logger := logging.Discard()
	clock := services.NewClock()
	conversations := testutil.NewConversations()

	conversationSvc := services.NewConversationService(conversations, clock, logger)
	messageSvc := services.NewMessageService(testutil.NewMessages(), conversations, clock, logger)
	reportSvc := services.NewReportService(testutil.NewReports(), clock, logger)

	client := func(name string) *peers.Client {
		return peers.NewClient(name, peerURL, 2*time.Second, logger)
	}
	users := peers.NewUserClient(client("user-service"))
	departments := peers.NewDepartmentClient(client("department-service"))

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler(logger)})
	routes.Register(app, jwtSecret, routes.Handlers{
		Messaging: &handlers.MessagingHandler{
			Conversations: conversationSvc,
			Messages:      messageSvc,
			Users:         users,
			Departments:   departments,
			Projects:      peers.NewProjectClient(client("project-service")),
			Logger:        logger,
		},
		Uploads: &handlers.UploadHandler{
			Documents:     peers.NewDocumentClient(client("document-service")),
			Conversations: conversationSvc,
		},
		Reports: &handlers.ReportHandler{
			Reports: reportSvc,
			Tasks:   peers.NewTaskClient(client("task-service")),
		},
		Onboarding: &handlers.OnboardingHandler{
			Users:         users,
			Departments:   departments,
			Conversations: conversationSvc,
			Messages:      messageSvc,
			Logger:        logger,
		},
	})
	return &testEnv{app: app, peer: peer, conversations: conversations}
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

// call sends a JSON request as userID and decodes the response into out
// when out is not nil.
func (e *testEnv) call(t *testing.T, userID, method, path string, body, out interface{}) int {
	t.Helper()
	auth := ""
	if userID != "" {
		auth = bearerFor(t, userID)
	}
	return e.callWithAuth(t, auth, method, path, body, out)
}

func (e *testEnv) callWithAuth(t *testing.T, auth, method, path string, body, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	return e.do(t, req, out)
}

func (e *testEnv) upload(t *testing.T, userID, path string, files map[string]string, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(fiber.MethodPost, path, &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, bearerFor(t, userID))
	return e.do(t, req, out)
}

func (e *testEnv) do(t *testing.T, req *http.Request, out interface{}) int {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type errorBody struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
