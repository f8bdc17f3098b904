package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"

	"github.com/adityarawat/prepometer/internal/config"
)

// Mailer delivers one-time sign-in codes.
type Mailer interface {
	SendSignInCode(email, code string) error
}

// NewMailer picks a delivery backend from the config: Resend when an API key
// is present, SMTP when a host is configured, nil otherwise.
func NewMailer(cfg config.EmailConfig, baseURL string) Mailer {
	if cfg.ResendAPIKey != "" {
		return &resendMailer{cfg: cfg, baseURL: baseURL}
	}
	if cfg.SMTPHost != "" {
		return &smtpMailer{cfg: cfg, baseURL: baseURL}
	}
	return nil
}

func signInBody(baseURL, code string) (subject, html string) {
	link := fmt.Sprintf("%s/auth/verify?token=%s", baseURL, code)
	subject = "Your Prepometer sign-in code"
	html = fmt.Sprintf(
		`<p>Use this one-time code to sign in:</p>`+
			`<p><b>%s</b></p>`+
			`<p>Or open <a href="%s">this link</a>. The code expires in 15 minutes.</p>`,
		code, link,
	)
	return subject, html
}

type resendMailer struct {
	cfg     config.EmailConfig
	baseURL string
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *resendMailer) SendSignInCode(email, code string) error {
	subject, html := signInBody(m.baseURL, code)
	body := resendRequest{
		From:    m.cfg.FromEmail,
		To:      []string{email},
		Subject: subject,
		HTML:    html,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API error: status %d", resp.StatusCode)
	}
	return nil
}

type smtpMailer struct {
	cfg     config.EmailConfig
	baseURL string
}

func (m *smtpMailer) SendSignInCode(email, code string) error {
	subject, html := signInBody(m.baseURL, code)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	msg := "From: " + m.cfg.FromEmail + "\r\n" +
		"To: " + email + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		html

	var a smtp.Auth
	if m.cfg.SMTPUser != "" {
		a = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, a, m.cfg.FromEmail, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
