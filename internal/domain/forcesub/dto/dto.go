// Package dto contains data transfer objects for the forcesub domain
package dto

import (
	"time"

	"github.com/Conte777/forcesub-bot/internal/domain/forcesub/entities"
)

// GroupMessage is an inbound chat message as seen by the gate
type GroupMessage struct {
	ChatID      int64
	ChatTitle   string
	IsGroup     bool
	MessageID   int
	SenderID    int64
	SenderName  string
	SenderIsBot bool
	IsCommand   bool
	HasBody     bool

	// SenderChatID is set when a user posts as one of their own channels
	SenderChatID int64

	// GroupAuthored marks anonymous admin posts and automatic forwards from the linked channel
	GroupAuthored bool
}

// GateOutcome is the terminal state of one gate run
type GateOutcome string

const (
	OutcomeExempt     GateOutcome = "exempt"
	OutcomeAdmitted   GateOutcome = "admitted"
	OutcomeSuppressed GateOutcome = "suppressed"
	OutcomeWarned     GateOutcome = "warned"
)

// VerifyRequest is a re-verify button press
type VerifyRequest struct {
	CallbackID    string
	InvokerID     int64
	Payload       string
	HostChatID    int64
	HostMessageID int
}

// VerifyResult classifies a re-verification
type VerifyResult string

const (
	VerifyInvalid       VerifyResult = "invalid"
	VerifyUnavailable   VerifyResult = "unavailable"
	VerifyNoRestriction VerifyResult = "no_restriction"
	VerifyPassed        VerifyResult = "passed"
	VerifyFailed        VerifyResult = "failed"
)

// VerifyResponse is the ephemeral answer to a re-verify press
type VerifyResponse struct {
	Result VerifyResult
	Text   string

	// DeleteWarning requests removal of the message hosting the button
	DeleteWarning bool
}

// AddRequirementRequest represents a request to add a required channel
type AddRequirementRequest struct {
	GroupID    int64  `json:"groupId" validate:"required"`
	GroupTitle string `json:"groupTitle"`
	AdminID    int64  `json:"adminId" validate:"required"`

	// ChannelRef is "@username", a t.me link or a numeric id
	ChannelRef string `json:"channelRef" validate:"required"`

	// JoinLink overrides the link shown to users; required for private channels
	JoinLink string `json:"joinLink"`
}

// RemoveRequirementRequest represents a request to remove a required channel
type RemoveRequirementRequest struct {
	GroupID   int64 `json:"groupId" validate:"required"`
	AdminID   int64 `json:"adminId" validate:"required"`
	ChannelID int64 `json:"channelId" validate:"required"`
}

// GroupRequest identifies a group and the user acting in it
type GroupRequest struct {
	GroupID int64 `json:"groupId" validate:"required"`
	UserID  int64 `json:"userId" validate:"required"`
}

// RequirementItem represents a single requirement in a list
type RequirementItem struct {
	ChannelID    int64     `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	JoinLink     string    `json:"joinLink"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RequirementListResponse represents a response for listing requirements
type RequirementListResponse struct {
	GroupID      int64             `json:"groupId"`
	Requirements []RequirementItem `json:"requirements"`
}

// AddRequirementResponse represents the stored requirement
type AddRequirementResponse struct {
	GroupTitle   string `json:"groupTitle"`
	ChannelID    int64  `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	JoinLink     string `json:"joinLink"`
}

// ClearResponse reports how many requirements were removed
type ClearResponse struct {
	Removed int64 `json:"removed"`
}

// GroupsResponse lists gated groups
type GroupsResponse struct {
	Groups []entities.GroupSummary `json:"groups"`
}

// ToItems converts requirements to list items
func ToItems(reqs []entities.Requirement) []RequirementItem {
	items := make([]RequirementItem, len(reqs))
	for i, req := range reqs {
		items[i] = RequirementItem{
			ChannelID:    req.ChannelID,
			ChannelTitle: req.DisplayTitle(),
			JoinLink:     req.JoinLink,
			CreatedAt:    req.CreatedAt,
		}
	}
	return items
}
