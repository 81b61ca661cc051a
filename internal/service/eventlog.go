package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"esp_panel/internal/models"
	"esp_panel/internal/repository"
)

type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	errUnknownEventType = errors.New("unknown event type")
)

var knownEventTypes = []string{
	models.EventLedOn,
	models.EventLedOff,
	models.EventSensorFault,
	models.EventRecovered,
}

// IsFilterError reports whether err comes from a bad filter rather than storage.
func IsFilterError(err error) bool {
	return errors.Is(err, errInvalidTimeRange) || errors.Is(err, errUnknownEventType)
}

func normalizeEventType(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// normalizeFilter converts bounds to UTC, canonicalizes the type and validates both.
func normalizeFilter(f LogFilter) (LogFilter, error) {
	out := LogFilter{
		From: toUTC(f.From),
		To:   toUTC(f.To),
		Type: normalizeEventType(f.Type),
	}
	if !out.From.IsZero() && !out.To.IsZero() && out.From.After(out.To) {
		return LogFilter{}, errInvalidTimeRange
	}
	if out.Type != "" && !hasString(knownEventTypes, out.Type) {
		return LogFilter{}, fmt.Errorf("%w %q", errUnknownEventType, out.Type)
	}
	return out, nil
}

// List returns the events matching f, oldest first.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error) {
	nf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, nf.From, nf.To, nf.Type)
}

