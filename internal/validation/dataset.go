package validation

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/models"
)

var requiredSections = []string{"schedules", "settings", "stats"}

// ValidateDatasetJSON checks an import payload and decodes it. The payload
// must carry object-valued schedules, settings and stats sections, and every
// one of the seven days must be present as an array. Entries without an id
// are assigned one. Counters are recomputed from the entries.
func ValidateDatasetJSON(raw []byte) (*models.WeekDataset, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, &apperrors.FormatError{Msg: "payload is not a JSON object", Err: err}
	}

	for _, section := range requiredSections {
		if v, ok := top[section]; !ok || !isJSON(v, '{') {
			return nil, &apperrors.FormatError{Msg: fmt.Sprintf("missing or invalid %q section", section)}
		}
	}

	var schedules map[string]json.RawMessage
	if err := json.Unmarshal(top["schedules"], &schedules); err != nil {
		return nil, &apperrors.FormatError{Msg: "schedules section is unreadable", Err: err}
	}
	for _, d := range models.Days {
		if v, ok := schedules[string(d)]; !ok || !isJSON(v, '[') {
			return nil, &apperrors.FormatError{Msg: fmt.Sprintf("day %q must be present as an array", d)}
		}
	}

	var ds models.WeekDataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, &apperrors.FormatError{Msg: "payload does not match the dataset schema", Err: err}
	}
	ds.Normalize()

	seen := make(map[string]bool)
	total, completed := 0, 0
	for _, d := range models.Days {
		bucket := ds.Schedules[d]
		for i := range bucket {
			e := &bucket[i]
			if e.ID == "" {
				e.ID = uuid.New().String()
			}
			if seen[e.ID] {
				return nil, &apperrors.FormatError{Msg: fmt.Sprintf("duplicate entry id %s", e.ID)}
			}
			seen[e.ID] = true
			if err := ValidateEntry(*e); err != nil {
				return nil, &apperrors.FormatError{Msg: fmt.Sprintf("invalid entry on %s", d), Err: err}
			}
			total++
			if e.Completed {
				completed++
			}
		}
	}
	ds.Stats.TotalSchedules = total
	ds.Stats.CompletedSchedules = completed

	return &ds, nil
}

func isJSON(v json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(v)
	return len(trimmed) > 0 && trimmed[0] == open
}
