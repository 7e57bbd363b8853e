package model

import "time"

// PlanRecord is the durable archive row written for every successful
// generation. It is an audit log, not session state: sessions themselves
// are never persisted.
type PlanRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID string    `gorm:"size:64;not null;index" json:"workspace_id"`
	SessionName string    `gorm:"size:128;not null" json:"session_name"`
	Origin      string    `gorm:"size:255;not null" json:"origin"`
	Destination string    `gorm:"size:255;not null" json:"destination"`
	Prompt      string    `gorm:"type:mediumtext;not null" json:"prompt"`
	RawResponse string    `gorm:"type:mediumtext;not null" json:"raw_response"`
	ParseStatus string    `gorm:"size:16;not null" json:"parse_status"`
	CreatedAt   time.Time `json:"created_at"`
}
