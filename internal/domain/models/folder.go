package models

import (
	"time"
)

// Folder is a node in the advertisement folder tree. ParentID is nil only for
// the root folder; at most one root may be active at a time.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ParentID  *string   `json:"parent" db:"parent_id"` // NULL = root folder
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsRoot designates whether this folder is the root folder.
func (f *Folder) IsRoot() bool { return f.ParentID == nil }

// IsActiveRoot designates whether this folder is the active root folder.
func (f *Folder) IsActiveRoot() bool { return f.IsRoot() && f.IsActive }
