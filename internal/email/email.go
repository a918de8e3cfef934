// Package email formats lease reminders and sends them over SMTP.
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/evcraddock/rent-ledger/internal/report"
)

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// IsConfigured returns true if SMTP settings are present.
func (c SMTPConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}

// NeedsAttention returns the leases that are expiring or expired, keeping
// their order.
func NeedsAttention(leases []report.Lease) []report.Lease {
	var out []report.Lease
	for _, l := range leases {
		if l.State != report.LeaseActive {
			out = append(out, l)
		}
	}
	return out
}

// ReminderSubject is the subject line of a lease reminder.
func ReminderSubject(leases []report.Lease) string {
	if len(leases) == 1 {
		return "1 lease needs attention"
	}
	return fmt.Sprintf("%d leases need attention", len(leases))
}

// FormatReminder builds a plain-text reminder listing expired leases
// before expiring ones.
func FormatReminder(leases []report.Lease) string {
	var expired, expiring []report.Lease
	for _, l := range leases {
		switch l.State {
		case report.LeaseExpired:
			expired = append(expired, l)
		case report.LeaseExpiring:
			expiring = append(expiring, l)
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hi,\n\n%s.\n", ReminderSubject(append(expired, expiring...)))

	section := func(title string, rows []report.Lease, days func(int) string) {
		if len(rows) == 0 {
			return
		}
		fmt.Fprintf(&buf, "\n%s:\n", title)
		for i, l := range rows {
			fmt.Fprintf(&buf, "%d. %s", i+1, l.TenantName)
			if l.PropertyName != "" {
				fmt.Fprintf(&buf, " (%s)", l.PropertyName)
			}
			fmt.Fprintf(&buf, "\n   Lease end %s, %s\n", l.LeaseEnd, days(l.Days))
		}
	}

	section("Expired", expired, func(d int) string { return plural(d, "day") + " overdue" })
	section("Expiring soon", expiring, func(d int) string { return plural(d, "day") + " left" })

	fmt.Fprintf(&buf, "\nrent-ledger\n")
	return buf.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Send sends an email via SMTP.
// Supports both port 465 (implicit TLS) and port 587 (STARTTLS).
func Send(cfg SMTPConfig, to []string, subject, body string) error {
	if !cfg.IsConfigured() {
		return fmt.Errorf("SMTP not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		cfg.From,
		strings.Join(to, ", "),
		subject,
		body,
	)

	addr := cfg.Host + ":" + cfg.Port

	if cfg.Port == "465" {
		return sendImplicitTLS(cfg, addr, to, msg)
	}
	return sendSTARTTLS(cfg, addr, to, msg)
}

// sendImplicitTLS connects over TLS directly (port 465/SMTPS).
func sendImplicitTLS(cfg SMTPConfig, addr string, to []string, msg string) (err error) {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: cfg.Host})
	if err != nil {
		return fmt.Errorf("TLS dial: %w", err)
	}

	c, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}
	defer func() {
		if quitErr := c.Quit(); quitErr != nil && err == nil {
			err = fmt.Errorf("quit: %w", quitErr)
		}
	}()

	if cfg.User != "" {
		if err := c.Auth(smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if err := c.Mail(cfg.From); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	return nil
}

// sendSTARTTLS connects plain then upgrades to TLS (port 587).
func sendSTARTTLS(cfg SMTPConfig, addr string, to []string, msg string) error {
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
