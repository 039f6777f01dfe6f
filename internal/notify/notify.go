// Package notify dispatches drift findings to external channels. Delivery
// is strictly best-effort: the report is already persisted before any
// channel fires, and a channel failure never changes the run's verdict or
// exit code.
package notify

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/driftguard/driftguard/internal/errors"
	"github.com/driftguard/driftguard/internal/logger"
	"github.com/driftguard/driftguard/pkg/types"
)

// channelTimeout bounds each delivery attempt so a slow endpoint cannot
// stall the run past its verdict.
const channelTimeout = 5 * time.Second

// ErrSkipped is returned by a channel that declines a finding below its
// severity threshold. Not a delivery failure.
var ErrSkipped = stderrors.New("notification skipped by channel policy")

// Channel delivers one finding to one destination
type Channel interface {
	Name() string
	Send(ctx context.Context, r *types.DriftReport, reportPath string) error
}

// Dispatcher fans a finding out to all configured channels
type Dispatcher struct {
	channels []Channel
	timeout  time.Duration
	log      logger.Logger
}

// NewDispatcher creates a dispatcher over the given channels. Channels that
// were not configured should simply not be passed in.
func NewDispatcher(log logger.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{
		channels: channels,
		timeout:  channelTimeout,
		log:      log,
	}
}

// Dispatch sends the finding to every channel concurrently. Reports with
// severity NONE are never dispatched. Failures are logged at warn level and
// returned for inspection, but callers must not treat them as fatal.
func (d *Dispatcher) Dispatch(ctx context.Context, r *types.DriftReport, reportPath string) []error {
	if r.Severity == types.SeverityNone {
		return nil
	}
	if len(d.channels) == 0 {
		d.log.Info("no notification channels configured, skipping dispatch")
		return nil
	}

	var (
		mu     sync.Mutex
		failed []error
		wg     sync.WaitGroup
	)

	for _, ch := range d.channels {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()

			sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()

			if err := ch.Send(sendCtx, r, reportPath); err != nil {
				if stderrors.Is(err, ErrSkipped) {
					d.log.WithField("channel", ch.Name()).Debug("notification skipped by channel policy")
					return
				}
				nerr := errors.New(errors.ErrorTypeNotification, errors.StageNotify,
					"notification delivery failed").WithCause(err)
				d.log.WithField("channel", ch.Name()).Warn("notification delivery failed: " + err.Error())
				mu.Lock()
				failed = append(failed, nerr)
				mu.Unlock()
				return
			}
			d.log.WithField("channel", ch.Name()).Info("notification delivered")
		}(ch)
	}

	wg.Wait()
	return failed
}
