package mailer

import (
	"fmt"
	"html"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type HotLeadAlert struct {
	SessionID    string
	Score        int
	Route        string
	Topic        string
	VisitedPages []string
	OccurredAt   time.Time
}

type IEmailService interface {
	SendHotLeadAlert(toEmail string, alert HotLeadAlert) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) SendHotLeadAlert(toEmail string, alert HotLeadAlert) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Hot lead on %s (score %d)", alert.Route, alert.Score))
	m.SetBody("text/html", HotLeadBody(alert))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send hot lead alert to %s: %w", toEmail, err)
	}
	return nil
}

// HotLeadBody renders the alert email.
func HotLeadBody(alert HotLeadAlert) string {
	pages := make([]string, len(alert.VisitedPages))
	for i, p := range alert.VisitedPages {
		pages[i] = "<li>" + html.EscapeString(p) + "</li>"
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A visitor just turned hot</h2>
			<p>Score <strong>%d</strong>, currently on <strong>%s</strong> (topic: %s).</p>
			<p>Pages visited:</p>
			<ul>%s</ul>
			<p style="color: #888;">Session %s, %s</p>
		</div>
	`,
		alert.Score,
		html.EscapeString(alert.Route),
		html.EscapeString(alert.Topic),
		strings.Join(pages, ""),
		html.EscapeString(alert.SessionID),
		alert.OccurredAt.UTC().Format(time.RFC1123),
	)
}
