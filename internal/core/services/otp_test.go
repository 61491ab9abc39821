package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractOTP(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{
			name:  "labelled code with colon",
			text:  "Your verification code: 345678",
			want:  "345678",
			found: true,
		},
		{
			name:  "code before your-code phrasing",
			text:  "482913 is your Google verification code",
			want:  "482913",
			found: true,
		},
		{
			name:  "your code is phrasing",
			text:  "Your code is 7291",
			want:  "7291",
			found: true,
		},
		{
			name:  "enter to verify phrasing",
			text:  "Enter 55443 to verify your account",
			want:  "55443",
			found: true,
		},
		{
			name:  "hyphenated code",
			text:  "Use 123-456 to sign in",
			want:  "123-456",
			found: true,
		},
		{
			name:  "bare six digit fallback",
			text:  "884217 expires in ten minutes",
			want:  "884217",
			found: true,
		},
		{
			name:  "contextual match beats earlier bare digits",
			text:  "Order 111222 shipped. Your verification code: 654321",
			want:  "654321",
			found: true,
		},
		{
			name:  "pin label",
			text:  "PIN: 9932",
			want:  "9932",
			found: true,
		},
		{
			name:  "case insensitive",
			text:  "YOUR OTP IS 445566",
			want:  "445566",
			found: true,
		},
		{
			name:  "ten digit run does not match",
			text:  "Code is 1234567890",
			found: false,
		},
		{
			name:  "no digits at all",
			text:  "Welcome to our newsletter",
			found: false,
		},
		{
			name:  "empty text",
			text:  "",
			found: false,
		},
		{
			name:  "five digit run without context does not match fallback",
			text:  "Reference 55443 attached",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractOTP(tt.text)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
