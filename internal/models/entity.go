package models

import (
	"time"
)

// Entity holds the identity and timestamp fields shared by every
// persisted model. It is embedded by value, not inherited.
type Entity struct {
	// ID is the unique identifier for this entity
	ID string

	// CreatedAt is when the entity was created
	CreatedAt time.Time

	// UpdatedAt is when the entity was last modified
	UpdatedAt time.Time
}

// NewEntity creates an Entity with both timestamps set to now
func NewEntity(id string, now time.Time) Entity {
	return Entity{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp
func (e *Entity) Touch(now time.Time) {
	e.UpdatedAt = now
}
