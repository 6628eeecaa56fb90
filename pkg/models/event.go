package models

import "time"

// EventType follows the kubernetes convention: Normal for expected lifecycle
// steps, Warning for anything that indicates trouble.
type EventType string

const (
	NormalEvent  EventType = "Normal"
	WarningEvent EventType = "Warning"
)

// GeneratedEvent is one synthesized lifecycle event for a task or workflow.
type GeneratedEvent struct {
	Type           EventType `json:"type"`
	Reason         string    `json:"reason"`
	Message        string    `json:"message"`
	Source         string    `json:"source"`
	InvolvedObject string    `json:"involved_object"`
	FirstTimestamp time.Time `json:"first_timestamp"`
	LastTimestamp  time.Time `json:"last_timestamp"`
	Count          int       `json:"count"`
}
