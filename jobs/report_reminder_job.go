package jobs

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/anjiri1684/workhub/apperrors"
	"github.com/anjiri1684/workhub/models"
	"github.com/anjiri1684/workhub/relay"
	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

type UnreadReports interface {
	UnreadOlderThan(ctx context.Context, age time.Duration) ([]models.ReportReceiver, error)
}

type UserDirectory interface {
	GetUser(ctx context.Context, userID string) (*models.UserProfile, error)
}

type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, toName, toEmail, subject, htmlContent string) error
}

// ReportReminder emails every receiver who has left a report unread for
// longer than After. One email per receiver lists all of their pending
// reports.
type ReportReminder struct {
	Reports      UnreadReports
	Users        UserDirectory
	Mailer       Mailer
	ServiceToken string
	After        time.Duration
	Timeout      time.Duration
	Logger       *log.Logger
}

// Schedule registers the reminder on c under the given cron spec.
func (r *ReportReminder) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx := context.Background()
		if r.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, r.Timeout)
			defer cancel()
		}
		r.Run(ctx)
	})
}

// Run sends one pass of reminders and returns how many emails went out.
func (r *ReportReminder) Run(ctx context.Context) int {
	r.Logger.Info("Running job: report reminders")
	if !r.Mailer.Enabled() {
		r.Logger.Info("email is not configured, skipping report reminders")
		return 0
	}

	// No inbound request here; peers see the service token instead.
	if r.ServiceToken != "" {
		ctx = relay.WithCredential(ctx, bearer(r.ServiceToken))
	}

	rows, err := r.Reports.UnreadOlderThan(ctx, r.After)
	if err != nil {
		r.Logger.Error("list unread reports", "err", err)
		return 0
	}
	if len(rows) == 0 {
		return 0
	}

	pending := map[string][]models.Report{}
	var order []string
	for _, row := range rows {
		if row.Report == nil {
			continue
		}
		if _, seen := pending[row.ReceiverID]; !seen {
			order = append(order, row.ReceiverID)
		}
		pending[row.ReceiverID] = append(pending[row.ReceiverID], *row.Report)
	}

	sent := 0
	for _, receiverID := range order {
		user, err := r.Users.GetUser(ctx, receiverID)
		if err != nil {
			r.Logger.Warn("skip reminder, user lookup failed",
				"receiver_id", receiverID, "kind", apperrors.KindOf(err), "err", err)
			continue
		}
		if user.Email == "" {
			continue
		}
		reports := pending[receiverID]
		subject := fmt.Sprintf("You have %d unread report(s)", len(reports))
		if err := r.Mailer.Send(ctx, user.FullName, user.Email, subject, reminderBody(user.FullName, reports)); err != nil {
			r.Logger.Warn("send reminder", "receiver_id", receiverID, "err", err)
			continue
		}
		sent++
	}
	r.Logger.Info("report reminders sent", "sent", sent, "receivers", len(order))
	return sent
}

func reminderBody(name string, reports []models.Report) string {
	var b strings.Builder
	b.WriteString("<h1>Unread reports</h1>")
	fmt.Fprintf(&b, "<p>Hi %s,</p><p>The following reports are waiting for you:</p><ul>", html.EscapeString(name))
	for _, report := range reports {
		fmt.Fprintf(&b, "<li>%s (published %s)</li>",
			html.EscapeString(report.Title), report.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString("</ul>")
	return b.String()
}

func bearer(token string) string {
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}
