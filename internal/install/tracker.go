package install

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"myka/internal/http-api/models"
	"myka/internal/http-api/repository"
)

// Signals are the platform install-eligibility signals a client reports:
// whether a deferred install prompt is available, whether the app runs in
// standalone display mode, and the raw platform string.
type Signals struct {
	CanInstall  bool   `json:"can_install"`
	IsInstalled bool   `json:"is_installed"`
	Platform    string `json:"platform"`
}

// Prompter shows the native install prompt on the user's device.
// notify.Hub implements this.
type Prompter interface {
	PromptInstall(ctx context.Context, userID string) (accepted bool, err error)
}

// Tracker maintains per-user install state. PromptShown persists across
// restarts until explicitly reset: the contract is "ask at most once", not
// "ask until accepted".
type Tracker struct {
	repo     repository.InstallRepository
	prompter Prompter
	log      *zap.Logger

	mu       sync.Mutex
	onChange func(models.InstallState)
}

func NewTracker(repo repository.InstallRepository, prompter Prompter, log *zap.Logger) *Tracker {
	return &Tracker{repo: repo, prompter: prompter, log: log}
}

// OnChange registers the callback fired after every state recomputation.
// Only one subscriber is supported at a time; registering a new callback
// replaces the previous one.
func (t *Tracker) OnChange(cb func(models.InstallState)) {
	t.mu.Lock()
	t.onChange = cb
	t.mu.Unlock()
}

func (t *Tracker) notifyChange(state models.InstallState) {
	t.mu.Lock()
	cb := t.onChange
	t.mu.Unlock()
	if cb != nil {
		cb(state)
	}
}

// Track recomputes the state from the reported signals and persists it.
// PromptShown is carried over untouched. Idempotent, safe to call on every
// page load.
func (t *Tracker) Track(ctx context.Context, userID string, signals Signals) (*models.InstallState, error) {
	state, err := t.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	state.CanInstall = signals.CanInstall
	state.IsInstalled = signals.IsInstalled
	state.Platform = normalizePlatform(signals.Platform)

	if err := t.repo.Save(ctx, state); err != nil {
		return nil, err
	}

	t.notifyChange(*state)
	return state, nil
}

// Get returns the persisted state without recomputing.
func (t *Tracker) Get(ctx context.Context, userID string) (*models.InstallState, error) {
	return t.repo.Get(ctx, userID)
}

// ShouldShowPrompt is true only while the prompt is available, the app is not
// installed, and the user has never been asked.
func (t *Tracker) ShouldShowPrompt(ctx context.Context, userID string) (bool, error) {
	state, err := t.repo.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return state.CanInstall && !state.IsInstalled && !state.PromptShown, nil
}

// ShowPrompt invokes the platform prompt and marks it shown regardless of
// whether the user accepted or dismissed it.
func (t *Tracker) ShowPrompt(ctx context.Context, userID string) (accepted bool, err error) {
	state, err := t.repo.Get(ctx, userID)
	if err != nil {
		return false, err
	}

	accepted, promptErr := t.prompter.PromptInstall(ctx, userID)
	if promptErr != nil {
		t.log.Warn("install prompt failed", zap.Error(promptErr), zap.String("user_id", userID))
	}

	state.PromptShown = true
	if accepted {
		state.IsInstalled = true
	}
	if err := t.repo.Save(ctx, state); err != nil {
		return accepted, err
	}

	t.notifyChange(*state)
	return accepted, nil
}

// Reset clears PromptShown, for testing/support flows.
func (t *Tracker) Reset(ctx context.Context, userID string) error {
	state, err := t.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	state.PromptShown = false
	if err := t.repo.Save(ctx, state); err != nil {
		return err
	}
	t.notifyChange(*state)
	return nil
}

func normalizePlatform(raw string) string {
	switch raw {
	case models.PlatformAndroid, models.PlatformIOS, models.PlatformDesktop:
		return raw
	default:
		return models.PlatformUnknown
	}
}
