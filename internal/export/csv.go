package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/vital/internal/store"
)

func ToCSV(events []store.EventRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Timestamp", "Kind", "Description", "Payload"}); err != nil {
		return err
	}

	for _, e := range events {
		payload := ""
		if len(e.Payload) > 0 {
			raw, err := json.Marshal(e.Payload)
			if err != nil {
				return fmt.Errorf("marshal payload: %w", err)
			}
			payload = string(raw)
		}

		row := []string{
			e.ID,
			e.CreatedAt.Local().Format(time.RFC3339),
			e.Kind,
			e.Description,
			payload,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
