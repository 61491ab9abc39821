package google

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

// IsRateLimited returns true if the error is a 429 from a Google API.
func IsRateLimited(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests
	}
	return false
}

// WrapError maps a Google API failure onto the engine's error
// taxonomy: credential rejections become auth failures, a missing
// resource stays distinguishable, and everything else is transport.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return fmt.Errorf("%v: %w", err, domain.ErrTransport)
	}

	switch gerr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("google api status %d: %w", gerr.Code, domain.ErrAuth)
	case http.StatusNotFound:
		return fmt.Errorf("google api status %d: %w", gerr.Code, domain.ErrNotFound)
	default:
		return fmt.Errorf("google api status %d: %w", gerr.Code, domain.ErrTransport)
	}
}
