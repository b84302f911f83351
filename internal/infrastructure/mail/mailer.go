// Package mail delivers transactional email through a Brevo-style HTTP
// API. No SMTP connection is held; each send is one JSON POST.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config captures the mail provider settings.
type Config struct {
	APIURL    string
	APIKey    string
	FromEmail string
	FromName  string
}

type Mailer struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Mailer {
	return &Mailer{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type address struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type sendRequest struct {
	Sender      address   `json:"sender"`
	To          []address `json:"to"`
	Subject     string    `json:"subject"`
	TextContent string    `json:"textContent"`
}

// Send posts one message to the provider. Any non-2xx response is an error.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	payload, err := json.Marshal(sendRequest{
		Sender:      address{Name: m.cfg.FromName, Email: m.cfg.FromEmail},
		To:          []address{{Email: to}},
		Subject:     subject,
		TextContent: body,
	})
	if err != nil {
		return fmt.Errorf("marshal mail: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", m.cfg.APIKey)

	res, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return fmt.Errorf("mail provider returned %d: %s", res.StatusCode, b)
	}
	return nil
}
