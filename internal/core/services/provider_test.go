package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProvider(t *testing.T) {
	tests := []struct {
		name   string
		sender string
		want   string
	}{
		{
			name:   "bare domain",
			sender: "noreply@google.com",
			want:   "Google",
		},
		{
			name:   "subdomain",
			sender: "security@mail.netflix.com",
			want:   "Netflix",
		},
		{
			name:   "display name with address",
			sender: "GitHub <noreply@github.com>",
			want:   "GitHub",
		},
		{
			name:   "gmail maps to google",
			sender: "someone@gmail.com",
			want:   "Google",
		},
		{
			name:   "dotted key requires exact domain",
			sender: "info@x.com",
			want:   "X",
		},
		{
			name:   "dotted key does not match superstring domain",
			sender: "info@axax.com",
			want:   "info",
		},
		{
			name:   "atlassian outranks jira",
			sender: "jira@atlassian.com",
			want:   "Atlassian",
		},
		{
			name:   "cashapp resolves before square",
			sender: "cashapp@squareup.com",
			want:   "Cash App",
		},
		{
			name:   "domain beats display name keyword",
			sender: "Google Fan Club <hello@example.com>",
			want:   "Google",
		},
		{
			name:   "cleaned display name fallback",
			sender: "Acme Support <help@acme-logistics.example>",
			want:   "Acme",
		},
		{
			name:   "raw name when cleaning strips everything",
			sender: "noreply@example.com",
			want:   "noreply",
		},
		{
			name:   "capitalised domain label fallback",
			sender: "this is a very long display name over the cap <x@contoso.org>",
			want:   "Contoso",
		},
		{
			name:   "unknown when nothing usable",
			sender: "",
			want:   "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractProvider(tt.sender))
		})
	}
}

func TestExtractSenderName(t *testing.T) {
	tests := []struct {
		name string
		from string
		want string
	}{
		{
			name: "display name before address",
			from: "GitHub <noreply@github.com>",
			want: "GitHub",
		},
		{
			name: "bare address yields local part prefix",
			from: "alerts@bank.example",
			want: "alerts",
		},
		{
			name: "no separators returns whole value",
			from: "mailer-daemon",
			want: "mailer-daemon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSenderName(tt.from))
		})
	}
}
