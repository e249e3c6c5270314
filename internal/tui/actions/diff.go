package actions

import "github.com/julianstephens/weekly/internal/models"

type OpKind int

const (
	Keep OpKind = iota
	Update
	Insert
	Remove
)

func (k OpKind) String() string {
	switch k {
	case Keep:
		return "keep"
	case Update:
		return "update"
	case Insert:
		return "insert"
	case Remove:
		return "remove"
	}
	return "unknown"
}

// Op is one step of a list edit. Index refers to the list as it stands
// after all previous ops were applied.
type Op struct {
	Kind  OpKind
	Index int
	Entry models.ScheduleEntry
}

// DiffEntries returns the ops that turn prev into next, matching entries by
// id. Applied in order they leave unchanged rows in place, so a cursor on a
// surviving entry can stay put.
func DiffEntries(prev, next []models.ScheduleEntry) []Op {
	wanted := make(map[string]bool, len(next))
	for _, e := range next {
		wanted[e.ID] = true
	}

	var ops []Op
	cur := make([]models.ScheduleEntry, 0, len(prev))
	for i := len(prev) - 1; i >= 0; i-- {
		if !wanted[prev[i].ID] {
			ops = append(ops, Op{Kind: Remove, Index: i, Entry: prev[i]})
		}
	}
	for _, e := range prev {
		if wanted[e.ID] {
			cur = append(cur, e)
		}
	}

	for j, e := range next {
		if j < len(cur) && cur[j].ID == e.ID {
			kind := Keep
			if !sameEntry(cur[j], e) {
				kind = Update
				cur[j] = e
			}
			ops = append(ops, Op{Kind: kind, Index: j, Entry: e})
			continue
		}

		// moved: take it out of its old slot
		for k := j + 1; k < len(cur); k++ {
			if cur[k].ID == e.ID {
				ops = append(ops, Op{Kind: Remove, Index: k, Entry: cur[k]})
				cur = append(cur[:k], cur[k+1:]...)
				break
			}
		}
		ops = append(ops, Op{Kind: Insert, Index: j, Entry: e})
		cur = append(cur, models.ScheduleEntry{})
		copy(cur[j+1:], cur[j:])
		cur[j] = e
	}
	return ops
}

// Changed reports whether ops do anything besides Keep.
func Changed(ops []Op) bool {
	for _, op := range ops {
		if op.Kind != Keep {
			return true
		}
	}
	return false
}

func sameEntry(a, b models.ScheduleEntry) bool {
	if (a.CompletedAt == nil) != (b.CompletedAt == nil) {
		return false
	}
	if a.CompletedAt != nil && *a.CompletedAt != *b.CompletedAt {
		return false
	}
	return a.ID == b.ID &&
		a.Day == b.Day &&
		a.Time == b.Time &&
		a.Title == b.Title &&
		a.Description == b.Description &&
		a.NotificationEnabled == b.NotificationEnabled &&
		a.Completed == b.Completed &&
		a.CreatedAt == b.CreatedAt &&
		a.UpdatedAt == b.UpdatedAt
}
