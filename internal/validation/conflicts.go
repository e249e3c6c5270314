package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/weekly/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateEntry ConflictType = "duplicate_entry"
	ConflictDuplicateID    ConflictType = "duplicate_id"
	ConflictUnsorted       ConflictType = "unsorted_bucket"
	ConflictInvalidTime    ConflictType = "invalid_time"
	ConflictCounterDrift   ConflictType = "counter_drift"
)

// Conflict represents a detected inconsistency in a dataset
type Conflict struct {
	Type        ConflictType
	Description string
	Day         models.Day // empty for dataset-wide conflicts
	EntryIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// CheckDataset reports invariant violations: duplicate ids, unsorted
// buckets, malformed times, the same activity twice at one slot, and
// counters that disagree with the entries.
func CheckDataset(ds *models.WeekDataset) ValidationResult {
	var result ValidationResult
	ids := make(map[string]models.Day)
	total, completed := 0, 0

	for _, d := range models.Days {
		bucket := ds.Schedules[d]
		slots := make(map[string]string)
		for i, e := range bucket {
			total++
			if e.Completed {
				completed++
			}

			if prev, ok := ids[e.ID]; ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateID,
					Description: fmt.Sprintf("entry id %s appears on both %s and %s", e.ID, prev, d),
					Day:         d,
					EntryIDs:    []string{e.ID},
				})
			}
			ids[e.ID] = d

			if err := ValidateTime(e.Time); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("%q on %s has invalid time %q", e.Title, d, e.Time),
					Day:         d,
					EntryIDs:    []string{e.ID},
				})
			}

			if i > 0 && bucket[i-1].Time > e.Time {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictUnsorted,
					Description: fmt.Sprintf("%s is not sorted by time at %q", d, e.Title),
					Day:         d,
					EntryIDs:    []string{bucket[i-1].ID, e.ID},
				})
			}

			slot := e.Time + "|" + strings.ToLower(e.Title)
			if other, ok := slots[slot]; ok {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictDuplicateEntry,
					Description: fmt.Sprintf("%q is scheduled twice on %s at %s", e.Title, d, e.Time),
					Day:         d,
					EntryIDs:    []string{other, e.ID},
				})
			}
			slots[slot] = e.ID
		}
	}

	if ds.Stats.TotalSchedules != total || ds.Stats.CompletedSchedules != completed {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictCounterDrift,
			Description: fmt.Sprintf("counters report %d total / %d completed but entries hold %d / %d",
				ds.Stats.TotalSchedules, ds.Stats.CompletedSchedules, total, completed),
		})
	}

	return result
}
