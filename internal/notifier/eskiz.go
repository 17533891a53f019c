package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const defaultEskizBaseURL = "https://notify.eskiz.uz/api"

// EskizClient sends SMS through the Eskiz gateway. Calls go through a
// circuit breaker so a dead gateway does not stall every OTP request on a
// full HTTP timeout.
type EskizClient struct {
	baseURL    string
	token      string
	from       string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	log        *zap.Logger
	configured bool
}

// NewEskizClient builds the client. An empty token leaves the client
// unconfigured; SendSMS then logs and returns nil so flows keep working in
// environments without SMS credentials.
func NewEskizClient(baseURL, token, from string, maxFailures uint32, logger *zap.Logger) *EskizClient {
	if baseURL == "" {
		baseURL = defaultEskizBaseURL
	}
	if maxFailures == 0 {
		maxFailures = 5
	}
	st := gobreaker.Settings{
		Name:    "eskiz-sms",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("circuit breaker state",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &EskizClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		from:       from,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         gobreaker.NewCircuitBreaker(st),
		log:        logger,
		configured: token != "",
	}
}

// IsConfigured reports whether SMS credentials were provided.
func (c *EskizClient) IsConfigured() bool {
	return c.configured
}

type eskizSendReq struct {
	MobilePhone string `json:"mobile_phone"`
	Message     string `json:"message"`
	From        string `json:"from"`
}

// SendSMS posts a message to the Eskiz send endpoint.
func (c *EskizClient) SendSMS(ctx context.Context, phone, message string) error {
	if !c.configured {
		c.log.Warn("eskiz client not configured, sms skipped", zap.String("phone", phone))
		return nil
	}
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.send(ctx, phone, message)
	})
	return err
}

func (c *EskizClient) send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(eskizSendReq{
		MobilePhone: phone,
		Message:     message,
		From:        c.from,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/message/sms/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sms request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("eskiz API returned status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
