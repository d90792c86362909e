package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/Dan9191/finance-assistant/internal/models"
	"github.com/Dan9191/finance-assistant/internal/utils"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendHealthDigest sends the periodic financial health digest
func (s *Sender) SendHealthDigest(to, username string, report models.HealthReport, summary *models.SummaryMetrics, insights []models.Insight) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Your financial health: %s", report.Grade)
	e.Text = []byte(digestBody(username, report, summary, insights))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", to, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

func digestBody(username string, report models.HealthReport, summary *models.SummaryMetrics, insights []models.Insight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", username)
	fmt.Fprintf(&b, "Your financial health score as of %s is %.0f (%s).\n",
		report.CalculatedAt.Format(time.DateOnly), report.OverallScore, report.Grade)

	if summary != nil {
		fmt.Fprintf(&b, "\nIncome: %s\nExpenses: %s\nNet cash flow: %s\n",
			utils.FormatMoney(summary.TotalIncome, ""),
			utils.FormatMoney(summary.TotalExpenses, ""),
			utils.FormatMoney(summary.NetFlow, ""))
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, r := range report.Recommendations {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}
	if len(insights) > 0 {
		b.WriteString("\nWhat we noticed:\n")
		for _, in := range insights {
			fmt.Fprintf(&b, "- %s: %s\n", in.Title, in.Recommendation)
		}
	}
	b.WriteString("\nBest regards,\nFinance Assistant")
	return b.String()
}
