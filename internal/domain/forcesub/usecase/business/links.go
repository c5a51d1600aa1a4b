package business

import (
	"regexp"
	"strconv"
	"strings"

	fserrors "github.com/Conte777/forcesub-bot/internal/domain/forcesub/errors"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{3,31}$`)

var linkHosts = []string{"t.me/", "telegram.me/", "telegram.dog/"}

// channelRef is a parsed admin supplied channel reference
type channelRef struct {
	Username string
	ID       int64
	Link     string
}

// Resolvable returns the reference form accepted by the channel resolver
func (r channelRef) Resolvable() string {
	if r.Username != "" {
		return "@" + r.Username
	}
	return strconv.FormatInt(r.ID, 10)
}

// parseChannelRef accepts a public t.me link, "@username", a bare username or a numeric id.
// Private invite links cannot be resolved and are rejected.
func parseChannelRef(raw string) (channelRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return channelRef{}, fserrors.ErrInvalidJoinLink
	}

	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if id == 0 {
			return channelRef{}, fserrors.ErrInvalidChannelID
		}
		return channelRef{ID: id}, nil
	}

	if name, ok := strings.CutPrefix(raw, "@"); ok {
		return usernameRef(name)
	}

	path, ok := linkPath(raw)
	if !ok {
		return usernameRef(raw)
	}

	if isPrivateInvite(path) {
		return channelRef{}, fserrors.ErrPrivateLinkNeedsID
	}

	name, _, _ := strings.Cut(path, "/")
	name, _, _ = strings.Cut(name, "?")
	return usernameRef(strings.TrimPrefix(name, "@"))
}

// normalizeJoinLink validates an invite or public link and returns it with an https scheme
func normalizeJoinLink(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fserrors.ErrEmptyJoinLink
	}

	path, ok := linkPath(raw)
	if !ok || path == "" {
		return "", fserrors.ErrInvalidJoinLink
	}

	if !strings.HasPrefix(raw, "https://") && !strings.HasPrefix(raw, "http://") {
		return "https://" + raw, nil
	}
	return raw, nil
}

func usernameRef(name string) (channelRef, error) {
	if !usernamePattern.MatchString(name) {
		return channelRef{}, fserrors.ErrInvalidJoinLink
	}
	return channelRef{Username: name, Link: "https://t.me/" + name}, nil
}

// linkPath strips scheme and host from a Telegram link
func linkPath(raw string) (string, bool) {
	rest := strings.TrimPrefix(strings.TrimPrefix(raw, "https://"), "http://")
	rest = strings.TrimPrefix(rest, "www.")

	for _, host := range linkHosts {
		if path, ok := strings.CutPrefix(rest, host); ok {
			return path, true
		}
	}
	return "", false
}

func isPrivateInvite(path string) bool {
	return strings.HasPrefix(path, "+") || strings.HasPrefix(path, "joinchat/")
}
