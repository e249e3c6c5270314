// Package scheduler arms one reminder timer per enabled entry and keeps the
// set of armed timers in step with the persisted dataset.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/weekly/internal/clock"
	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/logger"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/notifier"
)

// Reader is the read side of the dataset store.
type Reader interface {
	Load(ctx context.Context) (*models.WeekDataset, bool)
	Refresh() bool
}

// Permission reports whether reminders may be delivered.
type Permission interface {
	Granted() bool
}

// Reloader is implemented by a Permission whose state can be changed by
// another process. Reconcile calls it before every pass.
type Reloader interface {
	Reload(ctx context.Context) bool
}

// BodyFormatter renders the reminder sentence for an entry.
type BodyFormatter interface {
	NotificationBody(day models.Day, hhmm string) string
}

// ArmedNotification is a pending reminder. It is never persisted.
type ArmedNotification struct {
	EntryID      string
	Day          models.Day
	Time         string
	Title        string
	Target       time.Time
	FiresAt      time.Time
	Lead         time.Duration
	Notification models.Notification

	timer clock.Timer
	seq   uint64
}

type Config struct {
	Store      Reader
	Permission Permission
	Deliverer  notifier.Deliverer
	// Fallback receives notifications the Deliverer rejects.
	Fallback  notifier.Deliverer
	Formatter BodyFormatter
	Clock     clock.Clock
	Policy    Policy
	Interval  time.Duration
}

// ReconcileResult counts what one reconciliation pass did.
type ReconcileResult struct {
	Delivered int
	Pruned    int
	Armed     int
}

type Scheduler struct {
	mu       sync.Mutex
	store    Reader
	perm     Permission
	deliver  *notifier.Fallback
	format   BodyFormatter
	clock    clock.Clock
	base     Policy
	policy   Policy
	interval time.Duration
	ctx      context.Context

	armed map[string]*ArmedNotification
	// fired maps entry id to the occurrence already delivered
	fired map[string]time.Time
	seq   uint64
}

func New(cfg Config) *Scheduler {
	if cfg.Clock == nil {
		cfg.Clock = clock.Real{}
	}
	if cfg.Policy == (Policy{}) {
		cfg.Policy = DefaultPolicy()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = constants.ReconcileInterval
	}
	if cfg.Deliverer == nil {
		cfg.Deliverer = notifier.NewInbox(0)
	}
	return &Scheduler{
		store:    cfg.Store,
		perm:     cfg.Permission,
		deliver:  notifier.NewFallback(cfg.Deliverer, cfg.Fallback),
		format:   cfg.Formatter,
		clock:    cfg.Clock,
		base:     cfg.Policy,
		policy:   cfg.Policy,
		interval: cfg.Interval,
		ctx:      context.Background(),
		armed:    make(map[string]*ArmedNotification),
		fired:    make(map[string]time.Time),
	}
}

func (s *Scheduler) granted() bool {
	return s.perm != nil && s.perm.Granted()
}

// Schedule arms a reminder for entry and reports whether one was armed. It
// does nothing without permission, for disabled entries, or when the entry
// has no future fire time.
func (s *Scheduler) Schedule(day models.Day, entry models.ScheduleEntry) bool {
	if !s.granted() || !entry.NotificationEnabled {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduleLocked(day, entry)
}

func (s *Scheduler) scheduleLocked(day models.Day, entry models.ScheduleEntry) bool {
	now := s.clock.Now()
	fireAt, target, ok := s.policy.fireTime(day, entry.Time, now)
	if !ok {
		return false
	}
	if done, seen := s.fired[entry.ID]; seen && done.Equal(target) {
		return false
	}

	s.cancelLocked(entry.ID)

	s.seq++
	a := &ArmedNotification{
		EntryID:      entry.ID,
		Day:          day,
		Time:         entry.Time,
		Title:        entry.Title,
		Target:       target,
		FiresAt:      fireAt,
		Lead:         s.policy.Lead,
		Notification: s.payload(day, entry),
		seq:          s.seq,
	}
	id, seq := entry.ID, a.seq
	a.timer = s.clock.AfterFunc(fireAt.Sub(now), func() { s.fire(id, seq) })
	s.armed[entry.ID] = a

	logger.Debug("Armed reminder", "entry", entry.ID, "title", entry.Title, "fires_at", fireAt.Format(time.RFC3339))
	return true
}

func (s *Scheduler) payload(day models.Day, entry models.ScheduleEntry) models.Notification {
	body := string(day) + " " + entry.Time
	if s.format != nil {
		body = s.format.NotificationBody(day, entry.Time)
	}
	return models.Notification{
		Title: "🔔 " + entry.Title,
		Body:  body,
		Icon:  constants.NotificationIcon,
		Tag:   entry.ID,
		Data: models.NotificationData{
			EntryID: entry.ID,
			Day:     day,
			Time:    entry.Time,
		},
	}
}

func (s *Scheduler) fire(id string, seq uint64) {
	s.mu.Lock()
	a, ok := s.armed[id]
	if !ok || a.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.armed, id)
	s.fired[id] = a.Target
	ctx := s.ctx
	s.mu.Unlock()

	s.deliver.Deliver(ctx, a.Notification)
}

// Cancel disarms the reminder for id, if any.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelLocked(id)
}

func (s *Scheduler) cancelLocked(id string) bool {
	a, ok := s.armed[id]
	if !ok {
		return false
	}
	a.timer.Stop()
	delete(s.armed, id)
	return true
}

// CancelAll disarms every reminder.
func (s *Scheduler) CancelAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.armed)
	for id := range s.armed {
		s.cancelLocked(id)
	}
	return n
}

// Armed returns the pending reminders ordered by fire time.
func (s *Scheduler) Armed() []ArmedNotification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ArmedNotification, 0, len(s.armed))
	for _, a := range s.armed {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FiresAt.Equal(out[j].FiresAt) {
			return out[i].EntryID < out[j].EntryID
		}
		return out[i].FiresAt.Before(out[j].FiresAt)
	})
	return out
}

func (s *Scheduler) ArmedFor(id string) (ArmedNotification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.armed[id]
	if !ok {
		return ArmedNotification{}, false
	}
	return *a, true
}

// EntrySaved re-arms an entry after it was created or edited.
func (s *Scheduler) EntrySaved(day models.Day, entry models.ScheduleEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(entry.ID)
	if s.granted() && entry.NotificationEnabled {
		s.scheduleLocked(day, entry)
	}
}

// EntryRemoved disarms a deleted entry.
func (s *Scheduler) EntryRemoved(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
	delete(s.fired, id)
}

// PermissionChanged arms everything on grant and disarms everything
// otherwise.
func (s *Scheduler) PermissionChanged(ctx context.Context, granted bool) {
	if granted {
		s.Reconcile(ctx)
		return
	}
	if n := s.CancelAll(); n > 0 {
		logger.Info("Cancelled reminders after permission was withdrawn", "count", n)
	}
}

// Reconcile delivers overdue reminders, drops reminders whose entry no
// longer matches the stored dataset, and arms every enabled entry that has
// none.
func (s *Scheduler) Reconcile(ctx context.Context) ReconcileResult {
	var res ReconcileResult

	if r, ok := s.perm.(Reloader); ok {
		r.Reload(ctx)
	}

	overdue := s.sweepOverdue()
	for _, n := range overdue {
		s.deliver.Deliver(ctx, n)
	}
	res.Delivered = len(overdue)

	if !s.granted() {
		res.Pruned = s.CancelAll()
		return res
	}

	s.store.Refresh()
	ds, ok := s.store.Load(ctx)
	if !ok {
		return res
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.policy = s.base.WithLeadMinutes(ds.Settings.DefaultLeadMinutes)
	now := s.clock.Now()
	for id, target := range s.fired {
		if !target.After(now) {
			delete(s.fired, id)
		}
	}

	for id, a := range s.armed {
		day, idx, found := ds.Find(id)
		if !found {
			s.cancelLocked(id)
			res.Pruned++
			continue
		}
		e := ds.Schedules[day][idx]
		if !e.NotificationEnabled || day != a.Day || e.Time != a.Time || e.Title != a.Title || a.Lead != s.policy.Lead {
			s.cancelLocked(id)
			res.Pruned++
		}
	}

	ds.Each(func(day models.Day, e models.ScheduleEntry) {
		if !e.NotificationEnabled {
			return
		}
		if _, armed := s.armed[e.ID]; armed {
			return
		}
		if s.scheduleLocked(day, e) {
			res.Armed++
		}
	})

	if res.Delivered+res.Pruned+res.Armed > 0 {
		logger.Debug("Reconciled reminders", "delivered", res.Delivered, "pruned", res.Pruned, "armed", res.Armed)
	}
	return res
}

func (s *Scheduler) sweepOverdue() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var due []*ArmedNotification
	for _, a := range s.armed {
		if !a.FiresAt.After(now) {
			due = append(due, a)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].FiresAt.Before(due[j].FiresAt) })

	out := make([]models.Notification, 0, len(due))
	for _, a := range due {
		a.timer.Stop()
		delete(s.armed, a.EntryID)
		s.fired[a.EntryID] = a.Target
		out = append(out, a.Notification)
	}
	return out
}

// Focus reconciles immediately. Called when the terminal regains focus.
func (s *Scheduler) Focus(ctx context.Context) ReconcileResult {
	return s.Reconcile(ctx)
}

// Run reconciles now and then on every interval until ctx is done. All
// reminders are disarmed on return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.Reconcile(ctx)

	tick := make(chan struct{}, 1)
	for {
		t := s.clock.AfterFunc(s.interval, func() {
			select {
			case tick <- struct{}{}:
			default:
			}
		})
		select {
		case <-ctx.Done():
			t.Stop()
			s.CancelAll()
			s.mu.Lock()
			s.ctx = context.Background()
			s.mu.Unlock()
			return nil
		case <-tick:
			s.Reconcile(ctx)
		}
	}
}
