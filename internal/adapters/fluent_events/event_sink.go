package fluent_events

import (
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	"autofinder-client/internal/core/port"
)

// FluentEventSinkAdapter отправляет события телеметрии в Fluent Bit.
// Доставка fire-and-forget: ошибка отправки пишется в лог и забывается.
type FluentEventSinkAdapter struct {
	client *fluent.Fluent
	logger port.LoggerPort
}

var _ port.EventSinkPort = (*FluentEventSinkAdapter)(nil)

func NewFluentEventSinkAdapter(client *fluent.Fluent, logger port.LoggerPort) *FluentEventSinkAdapter {
	return &FluentEventSinkAdapter{
		client: client,
		logger: logger.WithFields(port.Fields{"component": "FluentEventSink"}),
	}
}

func (a *FluentEventSinkAdapter) Record(eventKind string, subjectID string, note string) {
	data := map[string]string{
		"event_kind": eventKind,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if subjectID != "" {
		data["subject_id"] = subjectID
	}
	if note != "" {
		data["note"] = note
	}

	if err := a.client.Post("events."+eventKind, data); err != nil {
		a.logger.Debug("Failed to post telemetry event", port.Fields{
			"event_kind": eventKind,
			"error":      err.Error(),
		})
	}
}

// NoopEventSinkAdapter — заглушка на случай, когда телеметрия выключена.
type NoopEventSinkAdapter struct{}

var _ port.EventSinkPort = (*NoopEventSinkAdapter)(nil)

func NewNoopEventSinkAdapter() *NoopEventSinkAdapter { return &NoopEventSinkAdapter{} }

func (a *NoopEventSinkAdapter) Record(eventKind string, subjectID string, note string) {}
