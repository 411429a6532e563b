package controlling_kettle

import "time"

// KettleStatus is the power/heating state of the kettle.
type KettleStatus string

const (
	StatusOff     KettleStatus = "off"
	StatusOn      KettleStatus = "on"
	StatusReady   KettleStatus = "ready"
	StatusStopped KettleStatus = "stopped"
)

// KettleCondition is a snapshot of the kettle: power status plus water temperature.
type KettleCondition struct {
	Status      KettleStatus `json:"status"`
	Temperature float64      `json:"temperature"` // °C
}

// KettleEvent is a single log entry.
type KettleEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // FILL | START | STOP | READY | POUR | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
