package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/weekly/internal/constants"
)

// DayStat is the completion summary of one day within a week
type DayStat struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// Stats holds derived counters. Never edited by hand.
type Stats struct {
	TotalSchedules     int                        `json:"totalSchedules"`
	CompletedSchedules int                        `json:"completedSchedules"`
	WeeklyStats        map[string]map[Day]DayStat `json:"weeklyStats"`
}

// WeekDataset is the root aggregate persisted under a single key
type WeekDataset struct {
	Schedules map[Day][]ScheduleEntry `json:"schedules"`
	Settings  Settings                `json:"settings"`
	Stats     Stats                   `json:"stats"`
}

// NewWeekDataset returns a default-populated dataset.
func NewWeekDataset() *WeekDataset {
	ds := &WeekDataset{
		Schedules: make(map[Day][]ScheduleEntry, len(Days)),
		Settings:  DefaultSettings(),
		Stats: Stats{
			WeeklyStats: make(map[string]map[Day]DayStat),
		},
	}
	for _, d := range Days {
		ds.Schedules[d] = []ScheduleEntry{}
	}
	return ds
}

// Normalize fills missing buckets, drops unknown ones, stamps each entry
// with its bucket and restores the per-bucket sort order.
func (w *WeekDataset) Normalize() {
	if w.Schedules == nil {
		w.Schedules = make(map[Day][]ScheduleEntry, len(Days))
	}
	for d := range w.Schedules {
		if !d.Valid() {
			delete(w.Schedules, d)
		}
	}
	for _, d := range Days {
		bucket := w.Schedules[d]
		if bucket == nil {
			bucket = []ScheduleEntry{}
		}
		for i := range bucket {
			bucket[i].Day = d
		}
		SortEntries(bucket)
		w.Schedules[d] = bucket
	}
	if w.Stats.WeeklyStats == nil {
		w.Stats.WeeklyStats = make(map[string]map[Day]DayStat)
	}
	if w.Settings.Theme == "" {
		w.Settings.Theme = constants.DefaultTheme
	}
}

// Clone returns a deep copy.
func (w *WeekDataset) Clone() *WeekDataset {
	if w == nil {
		return nil
	}
	c := &WeekDataset{
		Schedules: make(map[Day][]ScheduleEntry, len(w.Schedules)),
		Settings:  w.Settings,
		Stats: Stats{
			TotalSchedules:     w.Stats.TotalSchedules,
			CompletedSchedules: w.Stats.CompletedSchedules,
			WeeklyStats:        make(map[string]map[Day]DayStat, len(w.Stats.WeeklyStats)),
		},
	}
	for d, bucket := range w.Schedules {
		cp := make([]ScheduleEntry, len(bucket))
		for i, e := range bucket {
			cp[i] = e.clone()
		}
		c.Schedules[d] = cp
	}
	for week, days := range w.Stats.WeeklyStats {
		cp := make(map[Day]DayStat, len(days))
		for d, s := range days {
			cp[d] = s
		}
		c.Stats.WeeklyStats[week] = cp
	}
	return c
}

// Find locates an entry by id across all buckets.
func (w *WeekDataset) Find(id string) (Day, int, bool) {
	for _, d := range Days {
		for i, e := range w.Schedules[d] {
			if e.ID == id {
				return d, i, true
			}
		}
	}
	return "", -1, false
}

// IndexOf locates an entry by id within one bucket, or -1.
func (w *WeekDataset) IndexOf(day Day, id string) int {
	for i, e := range w.Schedules[day] {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Each calls fn for every entry in display order.
func (w *WeekDataset) Each(fn func(day Day, e ScheduleEntry)) {
	for _, d := range Days {
		for _, e := range w.Schedules[d] {
			fn(d, e)
		}
	}
}

// Count returns the number of entries across all buckets.
func (w *WeekDataset) Count() int {
	n := 0
	for _, d := range Days {
		n += len(w.Schedules[d])
	}
	return n
}

// ISOWeekKey returns the ISO-8601 week key of t, e.g. "2024-W05".
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
