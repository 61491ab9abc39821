package driven

import (
	"context"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

// MailClient lists and fetches messages from the remote mail provider
// using bearer-token authentication supplied by a TokenProvider.
type MailClient interface {
	// ListRecentUnread returns the ids of unread messages received
	// within the last day, capped at 25. Content is not fetched at
	// this stage.
	ListRecentUnread(ctx context.Context) ([]string, error)

	// FetchDetail retrieves the full representation of one message:
	// From/Subject headers, snippet, and decoded body text.
	FetchDetail(ctx context.Context, id string) (*domain.Message, error)
}
