package line

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultReplyURL is the LINE Messaging API reply endpoint
const DefaultReplyURL = "https://api.line.me/v2/bot/message/reply"

// Replier sends messages in answer to a webhook event
type Replier interface {
	Reply(ctx context.Context, replyToken string, messages []Message) error
}

// ReplyClient calls the LINE reply API with a channel access token
type ReplyClient struct {
	url         string
	accessToken string
	http        *http.Client
}

func NewReplyClient(accessToken string) *ReplyClient {
	return NewReplyClientWithURL(DefaultReplyURL, accessToken)
}

func NewReplyClientWithURL(url, accessToken string) *ReplyClient {
	return &ReplyClient{
		url:         url,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ReplyClient) Reply(ctx context.Context, replyToken string, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}
	if len(messages) > MaxReplyMessages {
		messages = messages[:MaxReplyMessages]
	}

	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(replyRequest{ReplyToken: replyToken, Messages: messages}); err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return fmt.Errorf("failed to build reply request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("line reply http %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}
	return nil
}
