package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"myka/internal/http-api/models"
	"myka/internal/shared"
)

// State of a single notification id.
type State string

const (
	StateUnarmed State = "unarmed"
	StateArmed   State = "armed"
	StateSnoozed State = "snoozed"
)

// Store is the subset of the notification repository the scheduler needs for
// the startup sweep.
type Store interface {
	ListEnabled(ctx context.Context) ([]models.ScheduledNotification, error)
}

// Displayer delivers a fired notification to the user's device.
// notify.Hub implements this.
type Displayer interface {
	Show(userID string, msg shared.PushMessage) error
}

type entry struct {
	timer  Timer
	fireAt time.Time
	state  State
	gen    uint64
}

// Scheduler arms one timer per enabled notification at the next occurrence of
// its configured time of day. Arming always supersedes (cancel-then-set) any
// prior timer for the same id, so at most one live timer exists per id.
type Scheduler struct {
	store   Store
	display Displayer
	clock   Clock
	log     *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry
	nextGen uint64
}

func New(store Store, display Displayer, clock Clock, log *zap.Logger) *Scheduler {
	return &Scheduler{
		store:   store,
		display: display,
		clock:   clock,
		log:     log,
		entries: make(map[string]*entry),
	}
}

// RearmAll recomputes and re-arms every enabled notification. Timers do not
// survive a restart, so this must run at startup before traffic is served.
// Safe to call repeatedly; arming supersedes prior timers. A bad record only
// skips itself.
func (s *Scheduler) RearmAll(ctx context.Context) error {
	notifications, err := s.store.ListEnabled(ctx)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if err := s.Arm(n); err != nil {
			s.log.Error("re-arm failed", zap.Error(err), zap.String("notification_id", n.ID))
			continue
		}
	}
	s.log.Info("re-arm sweep complete", zap.Int("enabled", len(notifications)))
	return nil
}

// Arm schedules the next firing of n. Disabled notifications are cancelled
// instead of armed.
func (s *Scheduler) Arm(n models.ScheduledNotification) error {
	if !n.Enabled {
		s.Cancel(n.ID)
		return nil
	}
	fireAt, err := NextFire(s.clock.Now(), n.Time)
	if err != nil {
		return err
	}
	s.armAt(n, fireAt, StateArmed)
	return nil
}

// Snooze re-arms a fired notification at now + its snooze duration.
func (s *Scheduler) Snooze(n models.ScheduledNotification) {
	minutes := n.SnoozeDuration
	if minutes <= 0 {
		minutes = 10
	}
	fireAt := s.clock.Now().Add(time.Duration(minutes) * time.Minute)
	s.armAt(n, fireAt, StateSnoozed)
}

// Cancel stops any pending timer for id. Idempotent.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(s.entries, id)
	}
}

// State reports the current state for id.
func (s *Scheduler) State(id string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		return e.state
	}
	return StateUnarmed
}

// FireAt returns the pending fire instant for id, if any.
func (s *Scheduler) FireAt(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		return e.fireAt, true
	}
	return time.Time{}, false
}

// armAt cancels any prior timer for n.ID and sets a new one. The generation
// counter guards against a superseded timer's callback racing the swap: a
// callback whose generation no longer matches is stale and must not fire.
func (s *Scheduler) armAt(n models.ScheduledNotification, fireAt time.Time, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.entries[n.ID]; ok && prev.timer != nil {
		prev.timer.Stop()
	}
	s.nextGen++
	gen := s.nextGen

	e := &entry{fireAt: fireAt, state: state, gen: gen}
	e.timer = s.clock.AfterFunc(fireAt.Sub(s.clock.Now()), func() {
		s.fire(n, gen)
	})
	s.entries[n.ID] = e

	s.log.Debug("armed",
		zap.String("notification_id", n.ID),
		zap.Time("fire_at", fireAt),
		zap.String("state", string(state)))
}

func (s *Scheduler) fire(n models.ScheduledNotification, gen uint64) {
	s.mu.Lock()
	e, ok := s.entries[n.ID]
	if !ok || e.gen != gen {
		// superseded or cancelled after the timer elapsed
		s.mu.Unlock()
		return
	}
	delete(s.entries, n.ID)
	s.mu.Unlock()

	if err := s.display.Show(n.UserID, buildPush(n)); err != nil {
		s.log.Error("display failed", zap.Error(err),
			zap.String("notification_id", n.ID),
			zap.String("user_id", n.UserID))
	}

	// Daily reminders recur by default; one-shots stay unarmed.
	if n.Recurring {
		if err := s.Arm(n); err != nil {
			s.log.Error("recurring re-arm failed", zap.Error(err),
				zap.String("notification_id", n.ID))
		}
	}
}

func buildPush(n models.ScheduledNotification) shared.PushMessage {
	actions := make([]shared.PushAction, 0, len(n.Actions))
	for _, a := range n.Actions {
		actions = append(actions, shared.PushAction{
			ID:     a.ID,
			Label:  a.Label,
			Icon:   a.Icon,
			Target: ActionTarget(a.ID),
		})
	}
	return shared.PushMessage{
		Kind:           "notification",
		NotificationID: n.ID,
		Title:          n.Title,
		Body:           n.Body,
		Type:           n.Type,
		Actions:        actions,
		SnoozeEnabled:  n.SnoozeEnabled,
	}
}
