package models

import "time"

// Event types written to the device log.
const (
	EventLedOn       = "LED_ON"
	EventLedOff      = "LED_OFF"
	EventSensorFault = "SENSOR_FAULT"
	EventRecovered   = "SENSOR_RECOVERED"
)

// DeviceEvent is a single log entry.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // LED_ON | LED_OFF | SENSOR_FAULT | SENSOR_RECOVERED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
