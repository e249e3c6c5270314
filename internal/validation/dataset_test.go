package validation

import (
	"strings"
	"testing"

	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/models"
)

const validPayload = `{
  "schedules": {
    "monday": [
      {"id": "b", "time": "09:00", "title": "Standup", "description": "", "notificationEnabled": true, "completed": true, "completedAt": "2024-01-01T09:10:00Z", "createdAt": "2024-01-01T08:00:00Z"},
      {"id": "a", "time": "07:00", "title": "Run", "description": "5k", "notificationEnabled": false, "completed": false, "completedAt": null, "createdAt": "2024-01-01T06:00:00Z"}
    ],
    "tuesday": [{"time": "18:00", "title": "Cook"}],
    "wednesday": [], "thursday": [], "friday": [], "saturday": [], "sunday": []
  },
  "settings": {"notificationEnabled": true, "theme": "dark", "defaultNotificationTime": 5},
  "stats": {"totalSchedules": 99, "completedSchedules": 0, "weeklyStats": {}}
}`

func TestValidateDatasetJSONAccepts(t *testing.T) {
	ds, err := ValidateDatasetJSON([]byte(validPayload))
	if err != nil {
		t.Fatalf("ValidateDatasetJSON failed: %v", err)
	}

	mon := ds.Schedules[models.Monday]
	if len(mon) != 2 || mon[0].ID != "a" || mon[1].ID != "b" {
		t.Errorf("monday not sorted: %+v", mon)
	}
	if mon[0].Day != models.Monday {
		t.Errorf("entry day not normalized: %q", mon[0].Day)
	}
	tue := ds.Schedules[models.Tuesday]
	if len(tue) != 1 || tue[0].ID == "" {
		t.Errorf("missing id not assigned: %+v", tue)
	}
	if ds.Stats.TotalSchedules != 3 || ds.Stats.CompletedSchedules != 1 {
		t.Errorf("counters not recomputed: %+v", ds.Stats)
	}
	if ds.Settings.DefaultLeadMinutes != 5 {
		t.Errorf("legacy lead not read: %+v", ds.Settings)
	}
}

func TestValidateDatasetJSONRejects(t *testing.T) {
	days := `"monday": [], "tuesday": [], "wednesday": [], "thursday": [], "friday": [], "saturday": []`
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"not json", `not json`, "not a JSON object"},
		{"array root", `[]`, "not a JSON object"},
		{"missing stats", `{"schedules": {` + days + `, "sunday": []}, "settings": {}}`, `"stats"`},
		{"settings not object", `{"schedules": {` + days + `, "sunday": []}, "settings": [], "stats": {}}`, `"settings"`},
		{"missing sunday", `{"schedules": {` + days + `}, "settings": {}, "stats": {}}`, `"sunday"`},
		{"null sunday", `{"schedules": {` + days + `, "sunday": null}, "settings": {}, "stats": {}}`, `"sunday"`},
		{"bad time", `{"schedules": {` + days + `, "sunday": [{"id": "x", "time": "31:00", "title": "Nap"}]}, "settings": {}, "stats": {}}`, "invalid entry on sunday"},
		{"duplicate id", `{"schedules": {` + strings.Replace(days, `"monday": []`, `"monday": [{"id": "x", "time": "08:00", "title": "A"}]`, 1) + `, "sunday": [{"id": "x", "time": "09:00", "title": "B"}]}, "settings": {}, "stats": {}}`, "duplicate entry id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateDatasetJSON([]byte(tt.payload))
			if !apperrors.IsFormat(err) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestCheckDataset(t *testing.T) {
	ds := models.NewWeekDataset()
	ds.Schedules[models.Monday] = []models.ScheduleEntry{
		{ID: "1", Time: "10:00", Title: "Gym"},
		{ID: "2", Time: "09:00", Title: "Read"},
		{ID: "3", Time: "09:00", Title: "read"},
	}
	ds.Schedules[models.Friday] = []models.ScheduleEntry{
		{ID: "1", Time: "7:00", Title: "Dup"},
	}
	ds.Stats.TotalSchedules = 1

	result := CheckDataset(ds)
	found := make(map[ConflictType]bool)
	for _, c := range result.Conflicts {
		found[c.Type] = true
	}
	for _, want := range []ConflictType{ConflictDuplicateID, ConflictUnsorted, ConflictInvalidTime, ConflictDuplicateEntry, ConflictCounterDrift} {
		if !found[want] {
			t.Errorf("expected conflict %s, got %+v", want, result.Conflicts)
		}
	}
	if !strings.HasPrefix(result.FormatReport(), "Conflicts detected:") {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}

	clean := models.NewWeekDataset()
	if r := CheckDataset(clean); r.HasConflicts() {
		t.Errorf("empty dataset reported conflicts: %+v", r.Conflicts)
	}
}
