package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const brevoAPIURL = "https://api.brevo.com/v3/smtp/email"

// BrevoClient sends transactional email through the Brevo API.
type BrevoClient struct {
	apiKey     string
	fromEmail  string
	fromName   string
	httpClient *http.Client
	log        *zap.Logger
	configured bool
}

// NewBrevoClient builds the client; missing credentials leave it
// unconfigured and SendEmail becomes a logged no-op.
func NewBrevoClient(apiKey, fromEmail, fromName string, logger *zap.Logger) *BrevoClient {
	return &BrevoClient{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger,
		configured: apiKey != "" && fromEmail != "",
	}
}

// IsConfigured reports whether email credentials were provided.
func (c *BrevoClient) IsConfigured() bool {
	return c.configured
}

type brevoSendReq struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HtmlContent string              `json:"htmlContent"`
}

// SendEmail delivers one message.
func (c *BrevoClient) SendEmail(ctx context.Context, toEmail, subject, body string) error {
	if !c.configured {
		c.log.Warn("brevo client not configured, email skipped", zap.String("to", toEmail))
		return nil
	}

	reqBody := brevoSendReq{
		Sender:      map[string]string{"email": c.fromEmail, "name": c.fromName},
		To:          []map[string]string{{"email": toEmail}},
		Subject:     subject,
		HtmlContent: body,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, brevoAPIURL, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody map[string]interface{}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errorBody); decodeErr != nil {
			return fmt.Errorf("brevo API returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("brevo API returned status %d: %v", resp.StatusCode, errorBody)
	}
	return nil
}
