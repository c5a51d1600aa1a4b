package entities

import "time"

// GateEventType names an event published by the gate
type GateEventType string

const (
	EventMessageSuppressed   GateEventType = "message_suppressed"
	EventVerificationPassed  GateEventType = "verification_passed"
	EventVerificationFailed  GateEventType = "verification_failed"
	EventRequirementAdded    GateEventType = "requirement_added"
	EventRequirementRemoved  GateEventType = "requirement_removed"
	EventRequirementsCleared GateEventType = "requirements_cleared"
)

// GateEvent is an audit record of a gate action
type GateEvent struct {
	Type       GateEventType `json:"type"`
	GroupID    int64         `json:"group_id"`
	UserID     int64         `json:"user_id"`
	ChannelIDs []int64       `json:"channel_ids,omitempty"`
	Degraded   bool          `json:"degraded,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
