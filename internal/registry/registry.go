// Package registry implements create, update, delete and completion
// operations over the week dataset. Every mutation re-reads the current
// dataset from the store before modifying it.
package registry

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/weekly/internal/clock"
	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/validation"
)

// Store is the persistence surface the registry needs.
type Store interface {
	LoadOrInit(ctx context.Context) *models.WeekDataset
	Save(ds *models.WeekDataset)
}

// Observer is told about entries whose schedule may have changed.
type Observer interface {
	EntrySaved(day models.Day, entry models.ScheduleEntry)
	EntryRemoved(id string)
}

type Registry struct {
	mu       sync.Mutex
	store    Store
	clock    clock.Clock
	observer Observer
	newID    func() string
}

func New(store Store, clk clock.Clock) *Registry {
	if clk == nil {
		clk = clock.Real{}
	}
	return &Registry{
		store: store,
		clock: clk,
		newID: uuid.NewString,
	}
}

// SetObserver registers the component notified after each mutation.
func (r *Registry) SetObserver(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = o
}

func (r *Registry) now() string {
	return r.clock.Now().UTC().Format(time.RFC3339)
}

func (r *Registry) notifySaved(o Observer, day models.Day, e models.ScheduleEntry) {
	if o != nil {
		o.EntrySaved(day, e)
	}
}

// AddEntry creates an entry on day and returns it.
func (r *Registry) AddEntry(ctx context.Context, day models.Day, fields models.EntryFields) (models.ScheduleEntry, error) {
	entries, err := r.AddEntries(ctx, []models.Day{day}, fields)
	if err != nil {
		return models.ScheduleEntry{}, err
	}
	return entries[0], nil
}

// AddEntries creates one entry per day with the same fields. Each entry
// gets its own id.
func (r *Registry) AddEntries(ctx context.Context, days []models.Day, fields models.EntryFields) ([]models.ScheduleEntry, error) {
	if len(days) == 0 {
		return nil, apperrors.Invalid("day", "select at least one day")
	}
	for _, d := range days {
		if !d.Valid() {
			return nil, apperrors.Invalid("day", "unknown day "+string(d))
		}
	}
	fields = validation.NormalizeFields(fields)
	if err := validation.ValidateFields(fields); err != nil {
		return nil, err
	}

	r.mu.Lock()
	ds := r.store.LoadOrInit(ctx)
	now := r.now()
	created := make([]models.ScheduleEntry, 0, len(days))
	for _, d := range days {
		entry := models.ScheduleEntry{
			ID:                  r.uniqueID(ds),
			Day:                 d,
			Time:                fields.Time,
			Title:               fields.Title,
			Description:         fields.Description,
			NotificationEnabled: fields.NotificationEnabled,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		ds.Schedules[d] = append(ds.Schedules[d], entry)
		models.SortEntries(ds.Schedules[d])
		ds.Stats.TotalSchedules++
		created = append(created, entry)
	}
	r.store.Save(ds)
	obs := r.observer
	r.mu.Unlock()

	logger.Debug("Added entries", "title", fields.Title, "days", len(days))
	for _, e := range created {
		r.notifySaved(obs, e.Day, e)
	}
	return created, nil
}

func (r *Registry) uniqueID(ds *models.WeekDataset) string {
	for {
		id := r.newID()
		if _, _, exists := ds.Find(id); !exists {
			return id
		}
	}
}

// UpdateEntry merges patch into the entry id on day. A non-nil patch.Day
// moves the entry to that day.
func (r *Registry) UpdateEntry(ctx context.Context, day models.Day, id string, patch models.EntryPatch) (models.ScheduleEntry, error) {
	patch, err := normalizePatch(patch)
	if err != nil {
		return models.ScheduleEntry{}, err
	}

	r.mu.Lock()
	ds := r.store.LoadOrInit(ctx)
	idx := ds.IndexOf(day, id)
	if idx < 0 {
		r.mu.Unlock()
		return models.ScheduleEntry{}, &apperrors.NotFoundError{Day: string(day), ID: id}
	}

	entry := ds.Schedules[day][idx]
	patch.Apply(&entry)
	entry.UpdatedAt = r.now()

	target := day
	if patch.Day != nil && *patch.Day != day {
		target = *patch.Day
		bucket := ds.Schedules[day]
		ds.Schedules[day] = append(bucket[:idx:idx], bucket[idx+1:]...)
		entry.Day = target
		ds.Schedules[target] = append(ds.Schedules[target], entry)
	} else {
		ds.Schedules[day][idx] = entry
	}
	models.SortEntries(ds.Schedules[target])
	r.store.Save(ds)
	obs := r.observer
	r.mu.Unlock()

	r.notifySaved(obs, target, entry)
	return entry, nil
}

// UpdateByTitle applies patch to every entry whose title equals
// originalTitle and returns how many entries changed.
func (r *Registry) UpdateByTitle(ctx context.Context, originalTitle string, patch models.EntryPatch) (int, error) {
	if patch.Day != nil {
		return 0, apperrors.Invalid("day", "cannot move entries when editing by title")
	}
	patch, err := normalizePatch(patch)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	ds := r.store.LoadOrInit(ctx)
	now := r.now()
	var touched []models.ScheduleEntry
	for _, d := range models.Days {
		bucket := ds.Schedules[d]
		for i := range bucket {
			if bucket[i].Title != originalTitle {
				continue
			}
			patch.Apply(&bucket[i])
			bucket[i].UpdatedAt = now
			touched = append(touched, bucket[i])
		}
		models.SortEntries(bucket)
	}
	if len(touched) > 0 {
		r.store.Save(ds)
	}
	obs := r.observer
	r.mu.Unlock()

	for _, e := range touched {
		r.notifySaved(obs, e.Day, e)
	}
	return len(touched), nil
}

func normalizePatch(p models.EntryPatch) (models.EntryPatch, error) {
	if p.Day != nil && !p.Day.Valid() {
		return p, apperrors.Invalid("day", "unknown day "+string(*p.Day))
	}
	if p.Time != nil {
		t := validation.NormalizeTime(*p.Time)
		if err := validation.ValidateTime(t); err != nil {
			return p, err
		}
		p.Time = &t
	}
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return p, apperrors.Missing("title")
		}
		p.Title = &t
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}
	return p, nil
}

// DeleteEntry removes the entry and reports whether it existed.
func (r *Registry) DeleteEntry(ctx context.Context, day models.Day, id string) bool {
	r.mu.Lock()
	ds := r.store.LoadOrInit(ctx)
	idx := ds.IndexOf(day, id)
	if idx < 0 {
		r.mu.Unlock()
		return false
	}

	bucket := ds.Schedules[day]
	removed := bucket[idx]
	ds.Schedules[day] = append(bucket[:idx:idx], bucket[idx+1:]...)
	ds.Stats.TotalSchedules = max(ds.Stats.TotalSchedules-1, 0)
	if removed.Completed {
		ds.Stats.CompletedSchedules = max(ds.Stats.CompletedSchedules-1, 0)
	}
	r.store.Save(ds)
	obs := r.observer
	r.mu.Unlock()

	if obs != nil {
		obs.EntryRemoved(id)
	}
	return true
}

// ToggleCompletion flips the completed flag of an entry.
func (r *Registry) ToggleCompletion(ctx context.Context, day models.Day, id string) (models.ScheduleEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds := r.store.LoadOrInit(ctx)
	idx := ds.IndexOf(day, id)
	if idx < 0 {
		return models.ScheduleEntry{}, &apperrors.NotFoundError{Day: string(day), ID: id}
	}

	entry := &ds.Schedules[day][idx]
	entry.Completed = !entry.Completed
	if entry.Completed {
		at := r.now()
		entry.CompletedAt = &at
		ds.Stats.CompletedSchedules++
	} else {
		entry.CompletedAt = nil
		ds.Stats.CompletedSchedules = max(ds.Stats.CompletedSchedules-1, 0)
	}
	r.store.Save(ds)
	return *entry, nil
}

// RecomputeWeeklyStats stores per-day completion for the current ISO week
// and returns it with the week key.
func (r *Registry) RecomputeWeeklyStats(ctx context.Context) (map[models.Day]models.DayStat, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ds := r.store.LoadOrInit(ctx)
	key := models.ISOWeekKey(r.clock.Now())
	week := make(map[models.Day]models.DayStat, len(models.Days))
	for _, d := range models.Days {
		stat := models.DayStat{Total: len(ds.Schedules[d])}
		for _, e := range ds.Schedules[d] {
			if e.Completed {
				stat.Completed++
			}
		}
		if stat.Total > 0 {
			stat.Percentage = int(math.Round(100 * float64(stat.Completed) / float64(stat.Total)))
		}
		week[d] = stat
	}
	ds.Stats.WeeklyStats[key] = week
	r.store.Save(ds)

	out := make(map[models.Day]models.DayStat, len(week))
	for d, s := range week {
		out[d] = s
	}
	return out, key
}

// Entries returns the sorted bucket for day.
func (r *Registry) Entries(ctx context.Context, day models.Day) []models.ScheduleEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.LoadOrInit(ctx).Schedules[day]
}

// Entry returns a single entry.
func (r *Registry) Entry(ctx context.Context, day models.Day, id string) (models.ScheduleEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ds := r.store.LoadOrInit(ctx)
	idx := ds.IndexOf(day, id)
	if idx < 0 {
		return models.ScheduleEntry{}, &apperrors.NotFoundError{Day: string(day), ID: id}
	}
	return ds.Schedules[day][idx], nil
}

// Dataset returns a copy of the whole dataset.
func (r *Registry) Dataset(ctx context.Context) *models.WeekDataset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.LoadOrInit(ctx)
}

func (r *Registry) Settings(ctx context.Context) models.Settings {
	return r.Dataset(ctx).Settings
}

// UpdateSettings merges patch into the dataset settings.
func (r *Registry) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.Settings, error) {
	if patch.Theme != nil && !models.ValidTheme(*patch.Theme) {
		return models.Settings{}, apperrors.Invalid("theme", "theme must be light, dark or auto")
	}
	if patch.DefaultLeadMinutes != nil && *patch.DefaultLeadMinutes < 0 {
		return models.Settings{}, apperrors.Invalid("defaultLeadMinutes", "lead minutes cannot be negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	ds := r.store.LoadOrInit(ctx)
	patch.Apply(&ds.Settings)
	r.store.Save(ds)
	return ds.Settings, nil
}

func (r *Registry) Stats(ctx context.Context) models.Stats {
	return r.Dataset(ctx).Stats
}

// Titles returns the distinct entry titles in display order.
func (r *Registry) Titles(ctx context.Context) []string {
	seen := map[string]bool{}
	var titles []string
	r.Dataset(ctx).Each(func(_ models.Day, e models.ScheduleEntry) {
		if !seen[e.Title] {
			seen[e.Title] = true
			titles = append(titles, e.Title)
		}
	})
	return titles
}
