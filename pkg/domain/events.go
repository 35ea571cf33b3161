package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventHalt     EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent represents one consumed symbol.
type StepEvent struct {
	EventBase
	From   string `json:"from"`
	Symbol string `json:"symbol"`
	To     string `json:"to"`
	Index  int    `json:"index"`
}

// RunEvent represents the start or the end of a run.
type RunEvent struct {
	EventBase
	Input    string        `json:"input"`
	Result   *Result       `json:"result,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for simulator observability.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnHalt     func(context.Context, *RunEvent)
}
