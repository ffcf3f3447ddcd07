// Package common holds the cross-layer value types shared by the engine's
// service and interface layers.
package common

import (
	"time"

	"github.com/google/uuid"
)

// ID is a string alias for UUID v4.
type ID string

// NewID generates a fresh random ID.
func NewID() ID {
	return ID(uuid.NewString())
}

// Metadata is an open-ended key-value bag attached to records.
type Metadata map[string]interface{}

// BaseEntity carries identity and audit metadata for stored records.
type BaseEntity struct {
	ID        ID        `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBaseEntity returns a BaseEntity with a fresh ID and both timestamps set
// to now.
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{ID: NewID(), CreatedAt: now, UpdatedAt: now}
}

// Touch bumps the update timestamp.
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// ErrorDetail provides structured error information for interface responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Offset  int    `json:"offset,omitempty"`
}

// HealthStatus indicates the health of a component.
type HealthStatus string

const (
	HealthUp       HealthStatus = "up"
	HealthDown     HealthStatus = "down"
	HealthDegraded HealthStatus = "degraded"
)

// ComponentHealth reports one component's health probe result.
type ComponentHealth struct {
	Name    string        `json:"name"`
	Status  HealthStatus  `json:"status"`
	Latency time.Duration `json:"latency"`
	Message string        `json:"message,omitempty"`
}
