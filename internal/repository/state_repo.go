package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"esp_panel/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

var _ StateRepo = (*StateSQLite)(nil)

const (
	deviceStateRowID = 1

	upsertStateSQL = `
		INSERT INTO device_state (id, led_on, temp1_c, temp2_c, temp3_c, faults, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			led_on=excluded.led_on,
			temp1_c=excluded.temp1_c,
			temp2_c=excluded.temp2_c,
			temp3_c=excluded.temp3_c,
			faults=excluded.faults,
			updated_at=excluded.updated_at
	`

	selectStateSQL = `
		SELECT id, led_on, temp1_c, temp2_c, temp3_c, faults, updated_at
		FROM device_state WHERE id=?
	`
)

func marshalFaultCodes(codes []string) (string, error) {
	if codes == nil {
		codes = []string{}
	}
	b, err := json.Marshal(codes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalFaultCodes(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var codes []string
	if err := json.Unmarshal([]byte(s), &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// Save upserts the single device_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, state models.DeviceState) error {
	faults, err := marshalFaultCodes(state.FaultCodes)
	if err != nil {
		return fmt.Errorf("marshal fault codes: %w", err)
	}

	ts := state.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err = r.db.ExecContext(ctx, upsertStateSQL,
		deviceStateRowID,
		state.LedOn,
		state.Temp1C,
		state.Temp2C,
		state.Temp3C,
		faults,
		ts.UTC(),
	)
	if err != nil {
		return fmt.Errorf("save device state: %w", err)
	}
	return nil
}

// Load fetches the device_state row. A zero state (ID 0) means nothing was saved yet.
func (r *StateSQLite) Load(ctx context.Context) (models.DeviceState, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, deviceStateRowID)

	var (
		s      models.DeviceState
		faults sql.NullString
	)
	if err := row.Scan(
		&s.ID,
		&s.LedOn,
		&s.Temp1C,
		&s.Temp2C,
		&s.Temp3C,
		&faults,
		&s.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DeviceState{}, nil
		}
		return models.DeviceState{}, fmt.Errorf("load device state: %w", err)
	}

	codes, err := unmarshalFaultCodes(faults.String)
	if err != nil {
		return models.DeviceState{}, fmt.Errorf("decode fault codes: %w", err)
	}
	s.FaultCodes = codes
	s.UpdatedAt = s.UpdatedAt.UTC()

	return s, nil
}
