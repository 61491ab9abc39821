package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanRdev/otpbar/internal/core/domain"
)

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "unpadded base64url as gmail emits it",
			data: base64.RawURLEncoding.EncodeToString([]byte("Your code is 123456")),
			want: "Your code is 123456",
		},
		{
			name: "padded base64url",
			data: base64.URLEncoding.EncodeToString([]byte("hello")),
			want: "hello",
		},
		{
			name: "standard alphabet tolerated",
			data: base64.StdEncoding.EncodeToString([]byte(">>>")),
			want: ">>>",
		},
		{
			name: "url alphabet substitution characters",
			data: base64.RawURLEncoding.EncodeToString([]byte(">>>")),
			want: ">>>",
		},
		{
			name: "empty input",
			data: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeBody(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeBodyRejectsGarbage(t *testing.T) {
	_, err := DecodeBody("!!! not base64 !!!")
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestDecodeBodyRejectsNonUTF8(t *testing.T) {
	data := base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x80})
	_, err := DecodeBody(data)
	assert.ErrorIs(t, err, domain.ErrParse)
}
