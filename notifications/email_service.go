package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	config "github.com/anjiri1684/workhub/configs"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

var ErrEmailDisabled = errors.New("email service not configured")

type BrevoService struct {
	apiKey      string
	senderEmail string
	senderName  string
	endpoint    string
	http        *http.Client
	logger      *log.Logger
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewBrevoService returns a sender for the Brevo transactional API. With any
// of key, sender email or sender name missing, every Send returns
// ErrEmailDisabled.
func NewBrevoService(cfg config.EmailConfig, logger *log.Logger) *BrevoService {
	s := &BrevoService{
		apiKey:      cfg.BrevoAPIKey,
		senderEmail: cfg.SenderEmail,
		senderName:  cfg.SenderName,
		endpoint:    brevoURL,
		http:        &http.Client{Timeout: 10 * time.Second},
		logger:      logger.With("component", "email"),
	}
	if !s.Enabled() {
		s.logger.Warn("email service not configured, notifications will be skipped")
	}
	return s
}

// WithEndpoint points the service at another Brevo-compatible URL.
func (s *BrevoService) WithEndpoint(endpoint string) *BrevoService {
	s.endpoint = endpoint
	return s
}

func (s *BrevoService) Enabled() bool {
	return s.apiKey != "" && s.senderEmail != "" && s.senderName != ""
}

func (s *BrevoService) Send(ctx context.Context, toName, toEmail, subject, htmlContent string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}
	at := strings.Index(toEmail, "@")
	if at <= 0 {
		return errors.Errorf("invalid recipient email: %q", toEmail)
	}
	if toName == "" {
		toName = toEmail[:at]
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      map[string]string{"name": s.senderName, "email": s.senderEmail},
		To:          []map[string]string{{"email": toEmail, "name": toName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return errors.Wrap(err, "marshal brevo payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "build brevo request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "send brevo request")
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusCreated {
		return errors.Errorf("brevo answered %d: %s", resp.StatusCode, respBody)
	}
	s.logger.Debug("email sent", "to", toEmail, "subject", subject)
	return nil
}
