// Package email provides an email sending client.
//
// It uses Resend (resend-go) as the email provider and
// loads HTML templates from the filesystem to render email bodies.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/deppfellow/schoolapp/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// DefaultTemplateDir is where templates live relative to the working directory.
const DefaultTemplateDir = "templates/emails"

const defaultFrom = "Schoolapp <onboarding@resend.dev>"

// Client wraps the Resend client and a logger.
//
// A nil client means no API key is configured: emails are rendered and
// logged but never sent.
type Client struct {
	client      *resend.Client
	logger      *zerolog.Logger
	from        string
	TemplateDir string
}

// NewClient creates an email Client from the integration settings.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	c := &Client{
		logger:      logger,
		from:        cfg.Integration.NotificationFrom,
		TemplateDir: DefaultTemplateDir,
	}
	if c.from == "" {
		c.from = defaultFrom
	}
	if cfg.Integration.ResendAPIKey != "" {
		c.client = resend.NewClient(cfg.Integration.ResendAPIKey)
	}
	return c
}

// Render executes templateName with data and returns the HTML body.
func (c *Client) Render(templateName Template, data map[string]string) (string, error) {
	tmplPath := filepath.Join(c.TemplateDir, string(templateName)+".html")

	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse email template %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", errors.Wrapf(err, "failed to execute email template %s", templateName)
	}

	return body.String(), nil
}

// SendEmail renders templateName with data and sends it to a single recipient.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	html, err := c.Render(templateName, data)
	if err != nil {
		return err
	}

	if c.client == nil {
		c.logger.Warn().
			Str("to", to).
			Str("template", string(templateName)).
			Msg("resend api key not configured, email not sent")
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Debug().Str("email_id", sent.Id).Str("to", to).Msg("email sent")
	return nil
}
