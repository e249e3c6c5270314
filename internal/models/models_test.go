package models

import (
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/julianstephens/weekly/internal/constants"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in      string
		want    Day
		wantErr bool
	}{
		{"monday", Monday, false},
		{"Tue", Tuesday, false},
		{" THURSDAY ", Thursday, false},
		{"1", Monday, false},
		{"7", Sunday, false},
		{"8", "", true},
		{"t", "", true},
		{"someday", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDay(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseDays(t *testing.T) {
	days, err := ParseDays("mon,wed,mon")
	if err != nil {
		t.Fatalf("ParseDays failed: %v", err)
	}
	if len(days) != 2 || days[0] != Monday || days[1] != Wednesday {
		t.Errorf("ParseDays = %v, want [monday wednesday]", days)
	}

	all, err := ParseDays("all")
	if err != nil {
		t.Fatalf("ParseDays(all) failed: %v", err)
	}
	if len(all) != 7 {
		t.Errorf("ParseDays(all) returned %d days", len(all))
	}
}

func TestDayWeekdayRoundTrip(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) // a Monday
	for i, d := range Days {
		ts := base.AddDate(0, 0, i)
		if got := DayOf(ts); got != d {
			t.Errorf("DayOf(%s) = %s, want %s", ts.Weekday(), got, d)
		}
		if d.Weekday() != ts.Weekday() {
			t.Errorf("%s.Weekday() = %s, want %s", d, d.Weekday(), ts.Weekday())
		}
		if d.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", d, d.Index(), i)
		}
	}
	if Wednesday.Short() != "Wed" {
		t.Errorf("Short() = %q", Wednesday.Short())
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"9:05", 9, 5, false},
		{"24:00", 0, 0, true},
		{"12:60", 0, 0, true},
		{"12:5", 0, 0, true},
		{"noon", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		h, m, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (h != tt.h || m != tt.m) {
			t.Errorf("ParseClock(%q) = %d:%d, want %d:%d", tt.in, h, m, tt.h, tt.m)
		}
	}

	if got, _ := NormalizeClock("7:30"); got != "07:30" {
		t.Errorf("NormalizeClock(7:30) = %q", got)
	}
}

func TestSortEntriesStable(t *testing.T) {
	entries := []ScheduleEntry{
		{ID: "a", Time: "10:00"},
		{ID: "b", Time: "08:00"},
		{ID: "c", Time: "10:00"},
		{ID: "d", Time: "09:30"},
	}
	SortEntries(entries)

	want := []string{"b", "d", "a", "c"}
	for i, id := range want {
		if entries[i].ID != id {
			t.Fatalf("position %d = %s, want %s (got %+v)", i, entries[i].ID, id, entries)
		}
	}
}

func TestNewWeekDatasetMarshalsEmptyBuckets(t *testing.T) {
	ds := NewWeekDataset()
	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, d := range Days {
		if string(raw["schedules"][string(d)]) != "[]" {
			t.Errorf("bucket %s = %s, want []", d, raw["schedules"][string(d)])
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	ds := NewWeekDataset()
	at := "2024-01-01T10:00:00Z"
	ds.Schedules[Monday] = append(ds.Schedules[Monday], ScheduleEntry{ID: "x", Time: "10:00", Title: "Run", CompletedAt: &at})
	ds.Stats.WeeklyStats["2024-W01"] = map[Day]DayStat{Monday: {Total: 1}}

	c := ds.Clone()
	c.Schedules[Monday][0].Title = "Walk"
	*c.Schedules[Monday][0].CompletedAt = "changed"
	c.Stats.WeeklyStats["2024-W01"][Monday] = DayStat{Total: 9}

	if ds.Schedules[Monday][0].Title != "Run" {
		t.Error("clone shares entry storage")
	}
	if *ds.Schedules[Monday][0].CompletedAt != at {
		t.Error("clone shares completedAt pointer")
	}
	if ds.Stats.WeeklyStats["2024-W01"][Monday].Total != 1 {
		t.Error("clone shares weekly stats")
	}
}

func TestNormalize(t *testing.T) {
	ds := &WeekDataset{
		Schedules: map[Day][]ScheduleEntry{
			Friday: {{ID: "2", Time: "18:00"}, {ID: "1", Time: "07:00", Day: Monday}},
		},
	}
	ds.Normalize()

	for _, d := range Days {
		if ds.Schedules[d] == nil {
			t.Errorf("bucket %s is nil", d)
		}
	}
	fri := ds.Schedules[Friday]
	if fri[0].ID != "1" || fri[0].Day != Friday {
		t.Errorf("normalize did not sort or restamp: %+v", fri)
	}
	if ds.Settings.Theme != constants.DefaultTheme {
		t.Errorf("theme = %q", ds.Settings.Theme)
	}
}

func TestSettingsLegacyKey(t *testing.T) {
	var s Settings
	if err := json.Unmarshal([]byte(`{"notificationEnabled":true,"theme":"dark","defaultNotificationTime":10}`), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !s.NotificationEnabled || s.Theme != constants.ThemeDark || s.DefaultLeadMinutes != 10 {
		t.Errorf("unexpected settings: %+v", s)
	}

	var d Settings
	if err := json.Unmarshal([]byte(`{}`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if d != DefaultSettings() {
		t.Errorf("empty settings = %+v, want defaults", d)
	}
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "2024-W01"},
		{time.Date(2021, 1, 3, 0, 0, 0, 0, time.UTC), "2020-W53"},
		{time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), "2025-W01"},
	}
	for _, tt := range tests {
		if got := ISOWeekKey(tt.t); got != tt.want {
			t.Errorf("ISOWeekKey(%s) = %s, want %s", tt.t.Format("2006-01-02"), got, tt.want)
		}
	}
}
