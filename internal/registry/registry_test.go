package registry

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/julianstephens/weekly/internal/clock"
	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/models"
)

type fakeStore struct {
	ds    *models.WeekDataset
	saves int
}

func (f *fakeStore) LoadOrInit(ctx context.Context) *models.WeekDataset {
	if f.ds == nil {
		f.ds = models.NewWeekDataset()
	}
	return f.ds.Clone()
}

func (f *fakeStore) Save(ds *models.WeekDataset) {
	f.saves++
	f.ds = ds.Clone()
}

type recordingObserver struct {
	saved   []string
	removed []string
}

func (o *recordingObserver) EntrySaved(day models.Day, e models.ScheduleEntry) {
	o.saved = append(o.saved, string(day)+"/"+e.ID)
}

func (o *recordingObserver) EntryRemoved(id string) {
	o.removed = append(o.removed, id)
}

func newTestRegistry(t *testing.T) (*Registry, *fakeStore, *recordingObserver) {
	t.Helper()
	store := &fakeStore{}
	clk := clock.NewFake(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	r := New(store, clk)
	obs := &recordingObserver{}
	r.SetObserver(obs)
	return r, store, obs
}

func fields(hhmm, title string) models.EntryFields {
	return models.EntryFields{Time: hhmm, Title: title, NotificationEnabled: true}
}

func ptr[T any](v T) *T { return &v }

func TestAddEntryValidation(t *testing.T) {
	ctx := context.Background()
	r, store, _ := newTestRegistry(t)

	tests := []struct {
		name   string
		fields models.EntryFields
	}{
		{"missing time", fields("", "Run")},
		{"missing title", fields("10:00", "   ")},
		{"bad time", fields("25:00", "Run")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.AddEntry(ctx, models.Monday, tt.fields)
			if !apperrors.IsValidation(err) {
				t.Errorf("AddEntry() error = %v, want ValidationError", err)
			}
		})
	}
	if store.saves != 0 {
		t.Errorf("rejected submissions wrote %d times", store.saves)
	}

	_, err := r.AddEntries(ctx, nil, fields("10:00", "Run"))
	if !apperrors.IsValidation(err) {
		t.Errorf("AddEntries() with no days error = %v", err)
	}
}

func TestAddEntryKeepsBucketSorted(t *testing.T) {
	ctx := context.Background()
	r, store, obs := newTestRegistry(t)

	for i, hhmm := range []string{"14:00", "09:30", "23:59", "00:00", "9:30", "12:15"} {
		e, err := r.AddEntry(ctx, models.Monday, fields(hhmm, fmt.Sprintf("task %d", i)))
		if err != nil {
			t.Fatalf("AddEntry(%s) error = %v", hhmm, err)
		}
		if e.Completed || e.CreatedAt == "" || e.Day != models.Monday {
			t.Errorf("unexpected new entry %+v", e)
		}

		bucket := store.ds.Schedules[models.Monday]
		if !sort.SliceIsSorted(bucket, func(a, b int) bool { return bucket[a].Time < bucket[b].Time }) {
			t.Fatalf("bucket not sorted after adding %s: %+v", hhmm, bucket)
		}
	}

	bucket := store.ds.Schedules[models.Monday]
	// equal times keep insertion order
	if bucket[1].Title != "task 1" || bucket[2].Title != "task 4" {
		t.Errorf("stable order broken: %s, %s", bucket[1].Title, bucket[2].Title)
	}
	if store.ds.Stats.TotalSchedules != 6 {
		t.Errorf("TotalSchedules = %d, want 6", store.ds.Stats.TotalSchedules)
	}
	if len(obs.saved) != 6 {
		t.Errorf("observer saw %d saves, want 6", len(obs.saved))
	}
}

func TestIDsUnique(t *testing.T) {
	ctx := context.Background()
	r, store, _ := newTestRegistry(t)

	for i := 0; i < 50; i++ {
		day := models.Days[i%len(models.Days)]
		if _, err := r.AddEntry(ctx, day, fields("08:00", "same")); err != nil {
			t.Fatal(err)
		}
	}

	seen := map[string]bool{}
	store.ds.Each(func(_ models.Day, e models.ScheduleEntry) {
		if seen[e.ID] {
			t.Errorf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	})
	if len(seen) != 50 {
		t.Errorf("got %d entries, want 50", len(seen))
	}
}

func TestUniqueIDRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRegistry(t)

	ids := []string{"a", "a", "b"}
	r.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, _ := r.AddEntry(ctx, models.Monday, fields("08:00", "x"))
	second, _ := r.AddEntry(ctx, models.Tuesday, fields("08:00", "y"))
	if first.ID != "a" || second.ID != "b" {
		t.Errorf("ids = %s, %s", first.ID, second.ID)
	}
}

func TestAddEntriesMultiDay(t *testing.T) {
	ctx := context.Background()
	r, store, _ := newTestRegistry(t)

	created, err := r.AddEntries(ctx, []models.Day{models.Monday, models.Wednesday, models.Friday}, fields("07:00", "Gym"))
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 3 || created[0].ID == created[1].ID {
		t.Fatalf("created = %+v", created)
	}
	for _, d := range []models.Day{models.Monday, models.Wednesday, models.Friday} {
		if len(store.ds.Schedules[d]) != 1 {
			t.Errorf("%s has %d entries", d, len(store.ds.Schedules[d]))
		}
	}
	if store.saves != 1 {
		t.Errorf("multi-day add should save once, got %d", store.saves)
	}
}

func TestUpdateEntry(t *testing.T) {
	ctx := context.Background()
	r, store, obs := newTestRegistry(t)

	early, _ := r.AddEntry(ctx, models.Monday, fields("08:00", "Early"))
	late, _ := r.AddEntry(ctx, models.Monday, fields("12:00", "Late"))

	updated, err := r.UpdateEntry(ctx, models.Monday, early.ID, models.EntryPatch{Time: ptr("13:00"), Description: ptr("moved")})
	if err != nil {
		t.Fatalf("UpdateEntry() error = %v", err)
	}
	if updated.Title != "Early" || updated.Time != "13:00" || updated.Description != "moved" {
		t.Errorf("updated = %+v", updated)
	}
	bucket := store.ds.Schedules[models.Monday]
	if bucket[0].ID != late.ID || bucket[1].ID != early.ID {
		t.Error("bucket not re-sorted after time change")
	}
	if obs.saved[len(obs.saved)-1] != "monday/"+early.ID {
		t.Errorf("observer not told about update: %v", obs.saved)
	}

	_, err = r.UpdateEntry(ctx, models.Tuesday, early.ID, models.EntryPatch{Title: ptr("x")})
	if !apperrors.IsNotFound(err) {
		t.Errorf("UpdateEntry() on wrong day error = %v, want NotFound", err)
	}

	_, err = r.UpdateEntry(ctx, models.Monday, early.ID, models.EntryPatch{Title: ptr("")})
	if !apperrors.IsValidation(err) {
		t.Errorf("clearing the title error = %v, want ValidationError", err)
	}
}

func TestUpdateEntryMovesDay(t *testing.T) {
	ctx := context.Background()
	r, store, obs := newTestRegistry(t)

	e, _ := r.AddEntry(ctx, models.Monday, fields("08:00", "Read"))
	moved, err := r.UpdateEntry(ctx, models.Monday, e.ID, models.EntryPatch{Day: ptr(models.Sunday)})
	if err != nil {
		t.Fatal(err)
	}
	if moved.Day != models.Sunday || moved.ID != e.ID {
		t.Errorf("moved = %+v", moved)
	}
	if len(store.ds.Schedules[models.Monday]) != 0 || len(store.ds.Schedules[models.Sunday]) != 1 {
		t.Error("entry not moved between buckets")
	}
	if obs.saved[len(obs.saved)-1] != "sunday/"+e.ID {
		t.Errorf("observer saw %v", obs.saved)
	}
}

func TestUpdateByTitle(t *testing.T) {
	ctx := context.Background()
	r, store, _ := newTestRegistry(t)

	r.AddEntries(ctx, []models.Day{models.Monday, models.Thursday}, fields("06:00", "Yoga"))
	other, _ := r.AddEntry(ctx, models.Monday, fields("07:00", "yoga"))

	n, err := r.UpdateByTitle(ctx, "Yoga", models.EntryPatch{Time: ptr("06:30"), Title: ptr("Morning yoga")})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("UpdateByTitle() touched %d, want 2", n)
	}
	for _, d := range []models.Day{models.Monday, models.Thursday} {
		for _, e := range store.ds.Schedules[d] {
			if e.ID == other.ID {
				if e.Title != "yoga" || e.Time != "07:00" {
					t.Errorf("non-matching entry changed: %+v", e)
				}
				continue
			}
			if e.Title != "Morning yoga" || e.Time != "06:30" {
				t.Errorf("matching entry not updated: %+v", e)
			}
		}
	}

	if _, err := r.UpdateByTitle(ctx, "Morning yoga", models.EntryPatch{Day: ptr(models.Friday)}); !apperrors.IsValidation(err) {
		t.Errorf("day move by title error = %v", err)
	}

	n, _ = r.UpdateByTitle(ctx, "nothing", models.EntryPatch{Title: ptr("x")})
	if n != 0 {
		t.Errorf("UpdateByTitle() on unknown title = %d", n)
	}
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()
	r, store, obs := newTestRegistry(t)

	e, _ := r.AddEntry(ctx, models.Friday, fields("18:00", "Cook"))
	r.ToggleCompletion(ctx, models.Friday, e.ID)

	if !r.DeleteEntry(ctx, models.Friday, e.ID) {
		t.Fatal("DeleteEntry() = false for existing entry")
	}
	if store.ds.Stats.TotalSchedules != 0 || store.ds.Stats.CompletedSchedules != 0 {
		t.Errorf("counters after delete = %+v", store.ds.Stats)
	}
	if len(obs.removed) != 1 || obs.removed[0] != e.ID {
		t.Errorf("observer removed = %v", obs.removed)
	}

	if r.DeleteEntry(ctx, models.Friday, e.ID) {
		t.Error("deleting twice should report false")
	}
}

func TestToggleCompletionNetZero(t *testing.T) {
	ctx := context.Background()
	r, store, _ := newTestRegistry(t)

	e, _ := r.AddEntry(ctx, models.Monday, fields("10:00", "Walk"))

	on, err := r.ToggleCompletion(ctx, models.Monday, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !on.Completed || on.CompletedAt == nil || store.ds.Stats.CompletedSchedules != 1 {
		t.Errorf("after first toggle: %+v, completed=%d", on, store.ds.Stats.CompletedSchedules)
	}

	off, err := r.ToggleCompletion(ctx, models.Monday, e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if off.Completed || off.CompletedAt != nil || store.ds.Stats.CompletedSchedules != 0 {
		t.Errorf("after second toggle: %+v, completed=%d", off, store.ds.Stats.CompletedSchedules)
	}

	if _, err := r.ToggleCompletion(ctx, models.Monday, "missing"); !apperrors.IsNotFound(err) {
		t.Errorf("toggle of missing entry error = %v", err)
	}
}

func TestRecomputeWeeklyStats(t *testing.T) {
	ctx := context.Background()
	r, store, _ := newTestRegistry(t)

	a, _ := r.AddEntry(ctx, models.Monday, fields("08:00", "a"))
	r.AddEntry(ctx, models.Monday, fields("09:00", "b"))
	r.AddEntry(ctx, models.Monday, fields("10:00", "c"))
	r.ToggleCompletion(ctx, models.Monday, a.ID)

	week, key := r.RecomputeWeeklyStats(ctx)
	if key != "2024-W03" {
		t.Errorf("week key = %s, want 2024-W03", key)
	}
	if got := week[models.Monday]; got != (models.DayStat{Total: 3, Completed: 1, Percentage: 33}) {
		t.Errorf("monday = %+v", got)
	}
	if got := week[models.Tuesday]; got != (models.DayStat{}) {
		t.Errorf("empty day = %+v", got)
	}
	if store.ds.Stats.WeeklyStats[key][models.Monday].Total != 3 {
		t.Error("weekly stats not persisted")
	}

	r.ToggleCompletion(ctx, models.Monday, a.ID)
	week, _ = r.RecomputeWeeklyStats(ctx)
	if week[models.Monday].Completed != 0 {
		t.Error("recompute should overwrite the previous week entry")
	}
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRegistry(t)

	s, err := r.UpdateSettings(ctx, models.SettingsPatch{NotificationEnabled: ptr(true), DefaultLeadMinutes: ptr(10)})
	if err != nil {
		t.Fatal(err)
	}
	if !s.NotificationEnabled || s.DefaultLeadMinutes != 10 {
		t.Errorf("settings = %+v", s)
	}

	bad := models.SettingsPatch{DefaultLeadMinutes: ptr(-1)}
	if _, err := r.UpdateSettings(ctx, bad); !apperrors.IsValidation(err) {
		t.Errorf("negative lead error = %v", err)
	}
}

func TestTitlesAreDistinctInDisplayOrder(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newTestRegistry(t)
	if _, err := r.AddEntries(ctx, []models.Day{models.Monday, models.Friday}, fields("08:00", "Swim")); err != nil {
		t.Fatal(err)
	}
	if _, err := r.AddEntry(ctx, models.Monday, fields("07:00", "Read")); err != nil {
		t.Fatal(err)
	}

	got := r.Titles(ctx)
	if len(got) != 2 || got[0] != "Read" || got[1] != "Swim" {
		t.Errorf("Titles() = %v, want [Read Swim]", got)
	}
}
