// Package whatsapp provides a lightweight WhatsApp Cloud API (Meta)
// client for RechargBatt. Uses raw HTTP calls (no SDK) to minimize
// external dependencies.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// graphAPIBase is the Cloud API endpoint prefix; messages are posted to
// {base}/{phone-number-id}/messages.
const graphAPIBase = "https://graph.facebook.com/v19.0"

// ErrNotConfigured is returned when the WhatsApp credentials are missing.
var ErrNotConfigured = errors.New("whatsapp: not configured")

// Result captures the provider's answer to one send attempt.
type Result struct {
	OK     bool            `json:"ok"`
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Client is the outbound text-messaging interface.
type Client interface {
	// SendText delivers a free-form text message to the given recipient
	// (international format, e.g. +241XXXXXXXX). A provider-side rejection
	// is reported inside the Result, not as an error; the error return is
	// reserved for missing configuration and transport failures.
	SendText(ctx context.Context, to, text string) (Result, error)
}

// RealClient is the raw HTTP implementation of Client.
type RealClient struct {
	Token         string
	PhoneNumberID string

	baseURL    string
	httpClient *http.Client
}

// NewClient creates a RealClient. Token and phoneNumberID may be empty;
// SendText then fails with ErrNotConfigured.
func NewClient(token, phoneNumberID string) *RealClient {
	return &RealClient{
		Token:         token,
		PhoneNumberID: phoneNumberID,
		baseURL:       graphAPIBase,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

var _ Client = (*RealClient)(nil)

// sendPayload is the Cloud API request body for a text message.
type sendPayload struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

// SendText posts a text message to the Cloud API.
func (c *RealClient) SendText(ctx context.Context, to, text string) (Result, error) {
	if c.Token == "" || c.PhoneNumberID == "" {
		return Result{}, ErrNotConfigured
	}

	payload := sendPayload{MessagingProduct: "whatsapp", To: to, Type: "text"}
	payload.Text.Body = text

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/"+c.PhoneNumberID+"/messages",
		bytes.NewReader(jsonBody))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	var data json.RawMessage
	_ = json.NewDecoder(resp.Body).Decode(&data)

	if resp.StatusCode >= 400 {
		return Result{
			OK:     false,
			Status: resp.StatusCode,
			Data:   data,
			Error:  errorMessage(data, resp.Status),
		}, nil
	}

	return Result{OK: true, Status: resp.StatusCode, Data: data}, nil
}

// errorMessage digs the human-readable message out of a Graph API error
// body, falling back to the HTTP status line.
func errorMessage(data json.RawMessage, fallback string) string {
	var body struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != nil && body.Error.Message != "" {
			return body.Error.Message
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fallback
}
