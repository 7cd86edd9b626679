package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// ParseModeHTML enables Telegram's HTML-subset markup for a message.
// An empty parse mode sends plain text.
const ParseModeHTML = "HTML"

// Client talks to the Telegram Bot API. Every request is bounded by the
// client timeout; a timeout counts as a plain transport failure.
type Client struct {
	token      string
	chatID     string
	apiBase    string
	httpClient *http.Client
}

func NewClient(token, chatID string, timeout time.Duration) *Client {
	return &Client{
		token:      token,
		chatID:     chatID,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage delivers a text message to the configured chat.
func (c *Client) SendMessage(ctx context.Context, text string, parseMode string, disablePreview bool) error {
	payload := url.Values{
		"chat_id": {c.chatID},
		"text":    {text},
	}
	if parseMode != "" {
		payload.Set("parse_mode", parseMode)
	}
	if disablePreview {
		payload.Set("disable_web_page_preview", "true")
	}

	return c.call(ctx, "sendMessage", payload)
}

// SendPhoto delivers a photo by URL with a caption.
func (c *Client) SendPhoto(ctx context.Context, photoURL, caption string, parseMode string) error {
	payload := url.Values{
		"chat_id": {c.chatID},
		"photo":   {photoURL},
		"caption": {caption},
	}
	if parseMode != "" {
		payload.Set("parse_mode", parseMode)
	}

	return c.call(ctx, "sendPhoto", payload)
}

// call posts a form-encoded Bot API request. Success requires both a
// 2xx status and a well-formed acknowledgment with ok set; every other
// outcome is one error class as far as callers are concerned.
func (c *Client) call(ctx context.Context, method string, payload url.Values) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.token, method)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(payload.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned HTTP %d: %s", method, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var ack apiResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !ack.OK {
		return fmt.Errorf("%s rejected: %s", method, ack.Description)
	}

	return nil
}
