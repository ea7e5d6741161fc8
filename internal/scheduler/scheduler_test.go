package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"myka/internal/http-api/models"
	"myka/internal/scheduler"
	"myka/internal/shared"
)

// --- FAKE CLOCK ---

type fakeTimer struct {
	clock   *fakeClock
	fireAt  time.Time
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) scheduler.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, fireAt: c.now.Add(d), fn: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward and runs due timer callbacks in fire order.
// Callbacks may arm new timers; those fire too if they come due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fireAt.After(target) {
				continue
			}
			if next == nil || t.fireAt.Before(next.fireAt) {
				next = t
			}
		}
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		next.stopped = true
		if next.fireAt.After(c.now) {
			c.now = next.fireAt
		}
		fn := next.fn
		c.mu.Unlock()
		fn()
	}
}

func (c *fakeClock) pendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// --- FAKE STORE AND DISPLAY ---

type fakeStore struct {
	notifications []models.ScheduledNotification
	err           error
}

func (s *fakeStore) ListEnabled(ctx context.Context) ([]models.ScheduledNotification, error) {
	return s.notifications, s.err
}

type fakeDisplay struct {
	mu    sync.Mutex
	shown []shared.PushMessage
	users []string
	err   error
}

func (d *fakeDisplay) Show(userID string, msg shared.PushMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append(d.users, userID)
	d.shown = append(d.shown, msg)
	return d.err
}

func (d *fakeDisplay) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.shown)
}

func (d *fakeDisplay) last() shared.PushMessage {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown[len(d.shown)-1]
}

// --- HELPERS ---

func testNotification(id, timeOfDay string) models.ScheduledNotification {
	return models.ScheduledNotification{
		ID:      id,
		UserID:  "user-1",
		Time:    timeOfDay,
		Title:   "Good Morning",
		Body:    "Step on the scale before breakfast.",
		Type:    models.NotificationTypeWeight,
		Enabled: true,
		Actions: []models.NotificationAction{
			{ID: "log-weight", Label: "Log weight", Icon: "scale"},
		},
		SnoozeEnabled:  true,
		SnoozeDuration: 10,
	}
}

func newScheduler(clock *fakeClock, store *fakeStore, display *fakeDisplay) *scheduler.Scheduler {
	return scheduler.New(store, display, clock, zap.NewNop())
}

// --- TESTS ---

func TestArmSetsNextOccurrence(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	require.NoError(t, s.Arm(n))

	assert.Equal(t, scheduler.StateArmed, s.State("n1"))
	fireAt, ok := s.FireAt("n1")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC), fireAt)

	clock.Advance(time.Hour)
	assert.Equal(t, 1, display.count())
	assert.Equal(t, "Good Morning", display.last().Title)
	assert.Equal(t, "user-1", display.users[0])
}

func TestArmInvalidTimeReturnsError(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	s := newScheduler(clock, &fakeStore{}, &fakeDisplay{})

	n := testNotification("n1", "25:61")
	err := s.Arm(n)
	assert.ErrorIs(t, err, scheduler.ErrInvalidTimeOfDay)
	assert.Equal(t, scheduler.StateUnarmed, s.State("n1"))
}

func TestArmDisabledCancelsPendingTimer(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	require.NoError(t, s.Arm(n))

	n.Enabled = false
	require.NoError(t, s.Arm(n))
	assert.Equal(t, scheduler.StateUnarmed, s.State("n1"))

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 0, display.count(), "disabled notification must not fire")
}

func TestRearmSupersedesPriorTimer(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	require.NoError(t, s.Arm(n))

	// Move the reminder later; the 07:00 timer must not fire.
	n.Time = "09:00"
	n.Recurring = false
	require.NoError(t, s.Arm(n))

	clock.Advance(90 * time.Minute) // past 07:00
	assert.Equal(t, 0, display.count())

	clock.Advance(2 * time.Hour) // past 09:00
	assert.Equal(t, 1, display.count())
}

func TestCancelIsIdempotent(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	require.NoError(t, s.Arm(n))

	s.Cancel("n1")
	s.Cancel("n1")
	s.Cancel("never-armed")

	clock.Advance(2 * time.Hour)
	assert.Equal(t, 0, display.count())
}

func TestSnoozeFiresAfterDurationWithSameContent(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	n.Recurring = false
	n.SnoozeDuration = 15

	s.Snooze(n)
	assert.Equal(t, scheduler.StateSnoozed, s.State("n1"))
	fireAt, ok := s.FireAt("n1")
	require.True(t, ok)
	assert.Equal(t, clock.Now().Add(15*time.Minute), fireAt)

	clock.Advance(14 * time.Minute)
	assert.Equal(t, 0, display.count())

	clock.Advance(time.Minute)
	require.Equal(t, 1, display.count())
	assert.Equal(t, "Good Morning", display.last().Title)
	assert.Equal(t, "Step on the scale before breakfast.", display.last().Body)
}

func TestSnoozeDefaultsToTenMinutes(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 7, 0, 0, 0, time.UTC))
	s := newScheduler(clock, &fakeStore{}, &fakeDisplay{})

	n := testNotification("n1", "07:00")
	n.SnoozeDuration = 0

	s.Snooze(n)
	fireAt, ok := s.FireAt("n1")
	require.True(t, ok)
	assert.Equal(t, clock.Now().Add(10*time.Minute), fireAt)
}

func TestRecurringRearmsForNextDay(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	n.Recurring = true
	require.NoError(t, s.Arm(n))

	clock.Advance(time.Hour)
	require.Equal(t, 1, display.count())

	// Fired and immediately re-armed for tomorrow.
	assert.Equal(t, scheduler.StateArmed, s.State("n1"))
	fireAt, ok := s.FireAt("n1")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 16, 7, 0, 0, 0, time.UTC), fireAt)

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 2, display.count())
}

func TestOneShotStaysUnarmedAfterFiring(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	n.Recurring = false
	require.NoError(t, s.Arm(n))

	clock.Advance(48 * time.Hour)
	assert.Equal(t, 1, display.count())
	assert.Equal(t, scheduler.StateUnarmed, s.State("n1"))
}

func TestRearmAllSweep(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	store := &fakeStore{notifications: []models.ScheduledNotification{
		testNotification("n1", "07:00"),
		testNotification("n2", "08:00"),
	}}
	s := newScheduler(clock, store, display)

	require.NoError(t, s.RearmAll(context.Background()))
	assert.Equal(t, scheduler.StateArmed, s.State("n1"))
	assert.Equal(t, scheduler.StateArmed, s.State("n2"))

	// Running the sweep again must not duplicate timers.
	require.NoError(t, s.RearmAll(context.Background()))
	assert.Equal(t, 2, clock.pendingCount())

	clock.Advance(90 * time.Minute)
	assert.Equal(t, 1, display.count())
}

func TestRearmAllSkipsBadRecords(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	bad := testNotification("bad", "not-a-time")
	store := &fakeStore{notifications: []models.ScheduledNotification{
		bad,
		testNotification("good", "07:00"),
	}}
	s := newScheduler(clock, store, display)

	require.NoError(t, s.RearmAll(context.Background()))
	assert.Equal(t, scheduler.StateUnarmed, s.State("bad"))
	assert.Equal(t, scheduler.StateArmed, s.State("good"))
}

func TestRearmAllPropagatesStoreError(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	store := &fakeStore{err: errors.New("db down")}
	s := newScheduler(clock, store, &fakeDisplay{})

	err := s.RearmAll(context.Background())
	assert.Error(t, err)
}

func TestDisplayErrorDoesNotStopRecurrence(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{err: errors.New("no client connected")}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	require.NoError(t, s.Arm(n))

	clock.Advance(time.Hour)
	assert.Equal(t, 1, display.count())
	assert.Equal(t, scheduler.StateArmed, s.State("n1"))
}

func TestPushMessageCarriesResolvedActionTargets(t *testing.T) {
	clock := newFakeClock(time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC))
	display := &fakeDisplay{}
	s := newScheduler(clock, &fakeStore{}, display)

	n := testNotification("n1", "07:00")
	n.Recurring = false
	require.NoError(t, s.Arm(n))

	clock.Advance(time.Hour)
	require.Equal(t, 1, display.count())

	msg := display.last()
	assert.Equal(t, "notification", msg.Kind)
	assert.Equal(t, "n1", msg.NotificationID)
	assert.True(t, msg.SnoozeEnabled)
	require.Len(t, msg.Actions, 1)
	assert.Equal(t, "log-weight", msg.Actions[0].ID)
	assert.Equal(t, "/weight", msg.Actions[0].Target)
}
