package usecase

import (
	"errors"
	"testing"
)

func TestNormalizer_Normalize_RanksH2HTable(t *testing.T) {
	t.Parallel()

	raw := []byte(`{
		"name": "Office League",
		"scoring": "H2H",
		"entries": [
			{"team_code": 1, "team_name": "Alpha", "owner_name": "A", "total_points": 900, "h2h_info": {"points": 3, "current_opponent": 2}, "players": []},
			{"team_code": 2, "team_name": "Bravo", "owner_name": "B", "total_points": 100, "h2h_info": {"points": 12, "current_opponent": 1}, "players": [
				{"id": 10, "display_name": "Keeper", "team_pos": {"number": 1}, "play_status": {"type": "playing"}, "point_sources": []}
			]}
		]
	}`)

	table, err := NewNormalizer().Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if table.Name != "Office League" {
		t.Fatalf("unexpected league name: %s", table.Name)
	}
	if len(table.Entries) != 2 || table.Entries[0].TeamCode != 2 {
		t.Fatalf("expected Bravo to lead, got=%+v", table.Entries)
	}
	if got := table.Entries[0].Players[0].DisplayName; got != "Keeper" {
		t.Fatalf("unexpected player decoded: %s", got)
	}
}

func TestNormalizer_Normalize_TotalScoringIgnoresMissingH2HInfo(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"name": "Classic", "scoring": "TOTAL", "entries": [
		{"team_code": 1, "total_points": 10},
		{"team_code": 2, "total_points": 20}
	]}`)

	table, err := NewNormalizer().Normalize(raw)
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if table.Entries[0].TeamCode != 2 {
		t.Fatalf("expected team 2 first, got=%d", table.Entries[0].TeamCode)
	}
}

func TestNormalizer_Normalize_EmptyEntriesIsValid(t *testing.T) {
	t.Parallel()

	table, err := NewNormalizer().Normalize([]byte(`{"name": "Empty", "scoring": "TOTAL", "entries": []}`))
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if len(table.Entries) != 0 {
		t.Fatalf("expected no entries, got=%d", len(table.Entries))
	}
}

func TestNormalizer_Normalize_RejectsMalformedPayloads(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty body":         ``,
		"not json":           `<html>bad gateway</html>`,
		"missing entries":    `{"name": "x", "scoring": "TOTAL"}`,
		"missing scoring":    `{"name": "x", "entries": []}`,
		"missing team code":  `{"name": "x", "scoring": "TOTAL", "entries": [{"team_name": "nobody"}]}`,
		"missing player id":  `{"name": "x", "scoring": "TOTAL", "entries": [{"team_code": 1, "players": [{"display_name": "p"}]}]}`,
		"h2h without info":   `{"name": "x", "scoring": "H2H", "entries": [{"team_code": 1}]}`,
		"wrong field type":   `{"name": "x", "scoring": "TOTAL", "entries": [{"team_code": "one"}]}`,
		"entries not a list": `{"name": "x", "scoring": "TOTAL", "entries": {}}`,
	}

	normalizer := NewNormalizer()
	for name, raw := range cases {
		_, err := normalizer.Normalize([]byte(raw))
		if !errors.Is(err, ErrMalformedPayload) {
			t.Fatalf("%s: expected ErrMalformedPayload, got %v", name, err)
		}
	}
}
