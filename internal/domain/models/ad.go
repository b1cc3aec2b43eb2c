package models

import (
	"time"
)

// Ad is an advertisement record. Every ad belongs to exactly one folder and
// is deactivated in place, never removed.
type Ad struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	TargetURL string    `json:"target_url" db:"target_url"`
	FolderID  string    `json:"folder" db:"folder_id"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
