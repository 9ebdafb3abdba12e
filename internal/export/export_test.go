package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/vital/internal/store"
)

func sampleEvents() []store.EventRecord {
	base := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	return []store.EventRecord{
		{
			ID: "ev-1", Kind: "water_intake", Description: "Consumed 250ml of water",
			Payload:   map[string]string{"amount_ml": "250", "progress_pct": "8.9"},
			CreatedAt: base,
		},
		{
			ID: "ev-2", Kind: "session_end", Description: "Work session ended after 25m0s",
			Payload:   map[string]string{"duration_sec": "1500"},
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "ev-3", Kind: "break_taken", Description: "Break taken",
			CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleEvents(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want header + 3", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][2] != "Kind" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "ev-1" || rows[1][2] != "water_intake" {
		t.Errorf("first row = %v", rows[1])
	}

	// Payload column is JSON
	var payload map[string]string
	if err := json.Unmarshal([]byte(rows[1][4]), &payload); err != nil {
		t.Fatalf("payload column not JSON: %v", err)
	}
	if payload["amount_ml"] != "250" {
		t.Errorf("payload = %v", payload)
	}

	// Empty payload stays empty
	if rows[3][4] != "" {
		t.Errorf("empty payload column = %q", rows[3][4])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatalf("ToCSV(nil): %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("expected at least a header row")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleEvents(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		ExportedAt string `json:"exported_at"`
		Count      int    `json:"count"`
		Events     []struct {
			ID       string            `json:"id"`
			Kind     string            `json:"kind"`
			Payload  map[string]string `json:"payload"`
			Duration string            `json:"duration"`
		} `json:"events"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}

	if out.Count != 3 || len(out.Events) != 3 {
		t.Fatalf("count = %d, events = %d", out.Count, len(out.Events))
	}
	if out.ExportedAt == "" {
		t.Error("exported_at missing")
	}
	if out.Events[0].ID != "ev-1" {
		t.Errorf("first event = %+v", out.Events[0])
	}

	// duration_sec payloads get a formatted duration
	if got := out.Events[1].Duration; got != "00:25:00" {
		t.Errorf("duration = %q, want 00:25:00", got)
	}
	if got := out.Events[0].Duration; got != "" {
		t.Errorf("unexpected duration on intake event: %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		secs int64
		want string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{1500, "00:25:00"},
		{3661, "01:01:01"},
		{7200, "02:00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.secs); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
