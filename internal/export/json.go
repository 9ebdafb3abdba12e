package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/vital/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Events     []jsonEvent `json:"events"`
}

type jsonEvent struct {
	ID          string            `json:"id"`
	Timestamp   string            `json:"timestamp"`
	Kind        string            `json:"kind"`
	Description string            `json:"description"`
	Payload     map[string]string `json:"payload,omitempty"`
	Duration    string            `json:"duration,omitempty"`
}

func ToJSON(events []store.EventRecord, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(events),
	}

	for _, e := range events {
		je := jsonEvent{
			ID:          e.ID,
			Timestamp:   e.CreatedAt.Local().Format(time.RFC3339),
			Kind:        e.Kind,
			Description: e.Description,
			Payload:     e.Payload,
		}
		if raw, ok := e.Payload["duration_sec"]; ok {
			if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
				je.Duration = formatDuration(secs)
			}
		}
		export.Events = append(export.Events, je)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
