package dashboard

import (
	"context"
	"time"

	"github.com/claudewatch/claudewatch/internal/core/model"
)

// RefreshController drives recomputation for live mode with explicit
// ticks. The engine itself issues no timers; this controller owns the
// schedule and calls back into the caller's refresh function, which is
// expected to run one load+compute pass.
type RefreshController struct {
	interval   time.Duration
	fileEvents <-chan model.FileEvent
	force      chan struct{}
}

// NewRefreshController creates a controller ticking at interval, with an
// optional file-event channel that triggers early refreshes.
func NewRefreshController(interval time.Duration, fileEvents <-chan model.FileEvent) *RefreshController {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &RefreshController{
		interval:   interval,
		fileEvents: fileEvents,
		force:      make(chan struct{}, 1),
	}
}

// ForceRefresh requests an immediate refresh. Non-blocking; collapses
// with an already-pending request.
func (rc *RefreshController) ForceRefresh() {
	select {
	case rc.force <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is done, invoking refresh once up front and then
// on every tick, file change, or forced request. File events are
// debounced so a burst of writes produces a single recompute.
func (rc *RefreshController) Run(ctx context.Context, refresh func() error) error {
	if err := refresh(); err != nil {
		return err
	}

	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()

	const debounce = 500 * time.Millisecond
	var debounceTimer *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if err := refresh(); err != nil {
				return err
			}

		case <-rc.force:
			if err := refresh(); err != nil {
				return err
			}

		case _, ok := <-rc.fileEvents:
			if !ok {
				rc.fileEvents = nil
				continue
			}
			if debounceTimer == nil {
				debounceTimer = time.NewTimer(debounce)
			} else {
				if !debounceTimer.Stop() {
					select {
					case <-debounceTimer.C:
					default:
					}
				}
				debounceTimer.Reset(debounce)
			}
			debounceC = debounceTimer.C

		case <-debounceC:
			debounceC = nil
			if err := refresh(); err != nil {
				return err
			}
		}
	}
}
