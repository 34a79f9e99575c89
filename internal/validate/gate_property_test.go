package validate

import (
	"encoding/json"
	"testing"

	"pgregory.net/rapid"
)

// TestFlagsGateProperty verifies that the gate returns exactly the
// conforming subset in input order, for arbitrary mixes of good and
// mangled records, and never panics.
func TestFlagsGateProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(rt, "num_records")

		var in []json.RawMessage
		var wantIDs []string

		for i := 0; i < n; i++ {
			id := rapid.StringMatching(`f[0-9]{1,4}`).Draw(rt, "id")
			doc := map[string]any{
				"id":              id,
				"conversation_id": rapid.StringMatching(`c[0-9]{1,4}`).Draw(rt, "conversation_id"),
				"message":         rapid.StringMatching(`[a-z ]{0,40}`).Draw(rt, "message"),
				"severity":        rapid.SampledFrom([]string{"low", "medium", "high"}).Draw(rt, "severity"),
				"created_at":      "2026-08-01T10:00:00Z",
				"resolved":        rapid.Bool().Draw(rt, "resolved"),
			}

			conforming := true
			switch rapid.IntRange(0, 4).Draw(rt, "mangle") {
			case 0:
				// leave conforming
			case 1:
				delete(doc, rapid.SampledFrom([]string{"id", "conversation_id", "message", "severity", "created_at", "resolved"}).Draw(rt, "drop_field"))
				conforming = false
			case 2:
				doc["severity"] = rapid.SampledFrom([]string{"", "urgent", "LOW", "critical"}).Draw(rt, "bad_severity")
				conforming = false
			case 3:
				doc["resolved"] = rapid.SampledFrom([]string{"true", "false"}).Draw(rt, "resolved_string")
				conforming = false
			case 4:
				doc["id"] = rapid.IntRange(0, 1000).Draw(rt, "numeric_id")
				conforming = false
			}

			b, err := json.Marshal(doc)
			if err != nil {
				rt.Fatalf("marshal: %v", err)
			}
			in = append(in, b)
			if conforming {
				wantIDs = append(wantIDs, id)
			}
		}

		got := Flags(in)
		if len(got) != len(wantIDs) {
			rt.Fatalf("admitted %d records, want %d", len(got), len(wantIDs))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				rt.Fatalf("record[%d].ID = %q, want %q (order must match input)", i, got[i].ID, id)
			}
		}
	})
}
