package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

// DecodeBody decodes a Gmail body payload. Gmail emits base64url
// without padding, and some senders mix in standard-alphabet output,
// so the input is normalised to padded standard base64 before
// decoding. Non-UTF-8 results are rejected rather than propagated into
// matching and display.
func DecodeBody(data string) (string, error) {
	normalised := strings.NewReplacer("-", "+", "_", "/").Replace(data)
	if rem := len(normalised) % 4; rem != 0 {
		normalised += strings.Repeat("=", 4-rem)
	}

	raw, err := base64.StdEncoding.DecodeString(normalised)
	if err != nil {
		return "", fmt.Errorf("decode body: %v: %w", err, domain.ErrParse)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("decode body: not valid utf-8: %w", domain.ErrParse)
	}
	return string(raw), nil
}
