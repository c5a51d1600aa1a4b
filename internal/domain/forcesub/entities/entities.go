// Package entities contains domain entities
package entities

import "time"

// Requirement is one mandatory channel for one group.
// The pair (GroupID, ChannelID) is unique.
type Requirement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GroupID      int64     `gorm:"not null;uniqueIndex:idx_force_subscribe_group_channel,priority:1" json:"groupId"`
	GroupTitle   string    `gorm:"type:text" json:"groupTitle"`
	ChannelID    int64     `gorm:"not null;uniqueIndex:idx_force_subscribe_group_channel,priority:2" json:"channelId"`
	ChannelTitle string    `gorm:"type:text" json:"channelTitle"`
	JoinLink     string    `gorm:"type:text;not null" json:"joinLink"`
	AddedBy      int64     `gorm:"not null" json:"addedBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName overrides the gorm table name
func (Requirement) TableName() string {
	return "force_subscribe"
}

// DisplayTitle returns the channel title or a fallback
func (r Requirement) DisplayTitle() string {
	if r.ChannelTitle != "" {
		return r.ChannelTitle
	}
	return "Channel"
}

// GroupSummary describes a gated group
type GroupSummary struct {
	GroupID      int64  `json:"groupId"`
	GroupTitle   string `json:"groupTitle"`
	Requirements int    `json:"requirements"`
}

// ChannelInfo is a resolved target channel
type ChannelInfo struct {
	ID       int64
	Title    string
	Username string
}
