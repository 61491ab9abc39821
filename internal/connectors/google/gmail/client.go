// Package gmail implements the mailbox client over the Gmail API:
// listing recent unread messages and fetching message detail with
// header and body extraction.
package gmail

import (
	"context"
	"fmt"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/tanRdev/otpbar/internal/connectors/google"
	"github.com/tanRdev/otpbar/internal/core/domain"
	"github.com/tanRdev/otpbar/internal/core/ports/driven"
)

const (
	// listQuery restricts the scan to unread mail from the last day.
	// OTP codes older than that are stale by definition.
	listQuery = "is:unread newer_than:1d"

	// maxListResults bounds one polling cycle's batch.
	maxListResults = 25

	// maxPartNodes bounds the MIME tree walk so a pathological
	// message cannot stall a cycle.
	maxPartNodes = 64
)

// Ensure Client satisfies the MailClient port.
var _ driven.MailClient = (*Client)(nil)

// Client reads the authenticated mailbox through the Gmail API. All
// calls go through the shared rate limiter.
type Client struct {
	svc     *gmailapi.Service
	limiter *google.RateLimiter
}

// NewClient creates a mailbox client over a Gmail API service.
func NewClient(svc *gmailapi.Service) *Client {
	return &Client{
		svc:     svc,
		limiter: google.NewRateLimiter(google.DefaultGmailRateLimit),
	}
}

// ListRecentUnread returns the ids of recent unread messages, bounded
// to one batch. An empty mailbox yields an empty slice, not an error.
func (c *Client) ListRecentUnread(ctx context.Context) ([]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	resp, err := c.svc.Users.Messages.List("me").
		Q(listQuery).
		MaxResults(maxListResults).
		Context(ctx).
		Do()
	if err != nil {
		if google.IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		return nil, fmt.Errorf("list messages: %w", google.WrapError(err))
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// FetchDetail retrieves one message in full and extracts the sender,
// subject, snippet, and decoded body text.
func (c *Client) FetchDetail(ctx context.Context, id string) (*domain.Message, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch message: %w", err)
	}

	msg, err := c.svc.Users.Messages.Get("me", id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		if google.IsRateLimited(err) {
			c.limiter.RecordRateLimitError(0)
		}
		return nil, fmt.Errorf("fetch message: %w", google.WrapError(err))
	}

	out := &domain.Message{
		ID:      msg.Id,
		Snippet: msg.Snippet,
	}
	if msg.Payload != nil {
		out.From = headerValue(msg.Payload.Headers, "From")
		out.Subject = headerValue(msg.Payload.Headers, "Subject")
		out.Body = extractBody(msg.Payload)
	}
	return out, nil
}

// headerValue returns the first header matching name, case
// insensitively, or "".
func headerValue(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// extractBody walks the MIME tree iteratively, depth first, and
// returns the first part whose payload decodes to non-empty text.
// MIME types are not filtered: senders mislabel OTP bodies often
// enough that the first decodable text wins regardless of label.
// The walk visits at most maxPartNodes parts.
func extractBody(payload *gmailapi.MessagePart) string {
	stack := []*gmailapi.MessagePart{payload}
	visited := 0
	for len(stack) > 0 && visited < maxPartNodes {
		part := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited++

		if part.Body != nil && part.Body.Data != "" {
			if text, err := DecodeBody(part.Body.Data); err == nil && text != "" {
				return text
			}
		}

		// Children pushed in reverse so the walk reads left to right.
		for i := len(part.Parts) - 1; i >= 0; i-- {
			stack = append(stack, part.Parts[i])
		}
	}

	return ""
}
