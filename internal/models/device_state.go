package models

import "time"

// SensorCount is the number of temperature probes wired to the device.
const SensorCount = 3

// FailedReadingC is reported for a probe that did not answer within its retry budget.
const FailedReadingC = -1.0

// DeviceState is the current snapshot of the board: LED output and last sample.
type DeviceState struct {
	ID         int       `json:"id"`
	LedOn      bool      `json:"led_on"`
	Temp1C     float64   `json:"temp1_c"`
	Temp2C     float64   `json:"temp2_c"`
	Temp3C     float64   `json:"temp3_c"`
	FaultCodes []string  `json:"fault_codes,omitempty"` // e.g. ["SENSOR_2_OFFLINE"]
	UpdatedAt  time.Time `json:"updated_at"`
}

// Readings returns the three temperatures in probe order.
func (s DeviceState) Readings() [SensorCount]float64 {
	return [SensorCount]float64{s.Temp1C, s.Temp2C, s.Temp3C}
}

// SetReadings stores the three temperatures in probe order.
func (s *DeviceState) SetReadings(r [SensorCount]float64) {
	s.Temp1C, s.Temp2C, s.Temp3C = r[0], r[1], r[2]
}

// Temperatures is the payload of GET /temperature.
type Temperatures struct {
	Temp1 float64 `json:"temp1"`
	Temp2 float64 `json:"temp2"`
	Temp3 float64 `json:"temp3"`
}
