package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
)

func TestParseChannelRef(t *testing.T) {
	tests := []struct {
		raw     string
		want    channelRef
		wantErr error
	}{
		{raw: "https://t.me/news", want: channelRef{Username: "news", Link: "https://t.me/news"}},
		{raw: "http://t.me/news/", want: channelRef{Username: "news", Link: "https://t.me/news"}},
		{raw: "t.me/news?start=1", want: channelRef{Username: "news", Link: "https://t.me/news"}},
		{raw: "https://telegram.me/Daily_Feed", want: channelRef{Username: "Daily_Feed", Link: "https://t.me/Daily_Feed"}},
		{raw: "@news", want: channelRef{Username: "news", Link: "https://t.me/news"}},
		{raw: "  news  ", want: channelRef{Username: "news", Link: "https://t.me/news"}},
		{raw: "-1001234567890", want: channelRef{ID: -1001234567890}},
		{raw: "https://t.me/+AbCdEf123", wantErr: fserrors.ErrPrivateLinkNeedsID},
		{raw: "https://t.me/joinchat/AbCdEf123", wantErr: fserrors.ErrPrivateLinkNeedsID},
		{raw: "0", wantErr: fserrors.ErrInvalidChannelID},
		{raw: "", wantErr: fserrors.ErrInvalidJoinLink},
		{raw: "@ab", wantErr: fserrors.ErrInvalidJoinLink},
		{raw: "https://example.com/news", wantErr: fserrors.ErrInvalidJoinLink},
		{raw: "https://t.me/", wantErr: fserrors.ErrInvalidJoinLink},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseChannelRef(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChannelRef_Resolvable(t *testing.T) {
	assert.Equal(t, "@news", channelRef{Username: "news"}.Resolvable())
	assert.Equal(t, "-1001234567890", channelRef{ID: -1001234567890}.Resolvable())
}

func TestNormalizeJoinLink(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr error
	}{
		{raw: "https://t.me/+AbCdEf", want: "https://t.me/+AbCdEf"},
		{raw: "t.me/joinchat/AbCdEf", want: "https://t.me/joinchat/AbCdEf"},
		{raw: " http://telegram.me/news ", want: "http://telegram.me/news"},
		{raw: "", wantErr: fserrors.ErrEmptyJoinLink},
		{raw: "https://t.me/", wantErr: fserrors.ErrInvalidJoinLink},
		{raw: "https://example.com/+AbCdEf", wantErr: fserrors.ErrInvalidJoinLink},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeJoinLink(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifyPayload_RoundTrip(t *testing.T) {
	for _, groupID := range []int64{-1001000000001, -42, 7} {
		id, err := ParseVerifyPayload(VerifyPayload(groupID))
		require.NoError(t, err)
		assert.Equal(t, groupID, id)
	}
}

func TestParseVerifyPayload_Invalid(t *testing.T) {
	for _, payload := range []string{"", "checksub_", "checksub_x1", "checksub_0", "verify_-100"} {
		_, err := ParseVerifyPayload(payload)
		assert.ErrorIs(t, err, fserrors.ErrInvalidPayload, payload)
	}
}
