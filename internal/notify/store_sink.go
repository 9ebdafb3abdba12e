package notify

import (
	"log/slog"

	"github.com/sadopc/vital/internal/reminder"
	"github.com/sadopc/vital/internal/store"
)

// StoreSink persists every event to the append-only event log.
type StoreSink struct {
	store  *store.Store
	logger *slog.Logger
}

func NewStoreSink(s *store.Store, logger *slog.Logger) *StoreSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &StoreSink{store: s, logger: logger}
}

func (s *StoreSink) Handle(ev reminder.Event) {
	err := s.store.AppendEvent(store.EventRecord{
		ID:          ev.ID,
		Kind:        string(ev.Kind),
		Description: ev.Description,
		Payload:     ev.Payload,
		CreatedAt:   ev.At,
	})
	if err != nil {
		// A sink failure is never the core's problem; log and move on.
		s.logger.Error("persist event", "kind", ev.Kind, "err", err)
	}
}
