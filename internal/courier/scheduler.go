// Package courier implements the per-order delayed pickup dispatch: sample a
// random wait, then emit a pickup event after it elapses without blocking
// the kitchen's event loop.
package courier

import (
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"dish-dispatcher/internal/order"
)

// Scheduler samples a pickup wait for each order and spawns an independent
// task that delivers the pickup event after that wait elapses. It retains
// no reference to an order once its task has emitted.
type Scheduler struct {
	minWait time.Duration
	maxWait time.Duration
	logger  *zap.Logger
}

// New builds a Scheduler that samples waits uniformly from [minWait,
// maxWait]. minWait must be <= maxWait; callers validate this at config load
// time (see internal/config).
func New(minWait, maxWait time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{minWait: minWait, maxWait: maxWait, logger: logger}
}

// sample draws w = minWait + round(U * (maxWait - minWait)) for U uniform on
// [0,1], using a source with no cross-order correlation.
func (s *Scheduler) sample() time.Duration {
	span := s.maxWait - s.minWait
	if span <= 0 {
		return s.minWait
	}
	u := rand.Float64()
	return s.minWait + time.Duration(math.Round(u*float64(span)))
}

// Schedule spawns a task that, after an independently sampled wait, sends o
// on pickup. The send is best-effort: if pickup is unbuffered or full and no
// one is receiving (e.g. the kitchen machine already stopped), the task
// blocks forever holding no other resources — this mirrors the spec's
// documented behavior for couriers whose timers outlive a forced stop.
func (s *Scheduler) Schedule(o order.Order, pickup chan<- order.Order) {
	w := s.sample()
	s.logger.Debug("courier scheduled",
		zap.String("order_id", o.ID),
		zap.Duration("wait", w),
	)
	go func() {
		time.Sleep(w)
		pickup <- o
	}()
}
