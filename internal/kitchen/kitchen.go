// Package kitchen implements the kitchen machine: the single-writer event
// loop that multiplexes new orders, courier pickups, shutdown, and report
// requests against the pick-up area, scheduling a courier for every cooked
// order and emitting delivered orders downstream.
//
// Kitchen owns the pick-up area, the outstanding-ticket set, and the
// orders-ended flag exclusively. Only the goroutine running Run ever reads
// or writes them, so none of that state needs a lock.
package kitchen

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"dish-dispatcher/internal/config"
	"dish-dispatcher/internal/courier"
	"dish-dispatcher/internal/order"
	shelf "dish-dispatcher/internal/shelves"
)

// channelBuffer sizes the pickup and delivery channels generously enough
// that, under any reasonable in-flight courier count, Schedule's send and
// the event loop's delivery emission never need to block on a slow peer.
const channelBuffer = 4096

// ErrOrdersEnded is returned by Submit once EndOrders has been called.
// Submitting after end-of-orders is a programmer error; detecting it is a
// best-effort courtesy, not a guarantee (spec.md §4.5, §7).
var ErrOrdersEnded = errors.New("kitchen: orders already ended")

// Kitchen is the customer/driver-facing handle: five endpoints backed by a
// single event-loop goroutine.
type Kitchen struct {
	ordersCh    chan order.Order
	endOrdersCh chan struct{}
	stopCh      chan struct{}
	reportCh    chan reportRequest
	pickupCh    chan order.Order
	deliveryCh  chan order.Order
	done        chan struct{}

	// submitGuard is a best-effort, client-side-visible flag set by
	// EndOrders before it signals the loop, so Submit can reject a
	// programmer error early. It is NOT the spec's orders_ended flag: that
	// one (below) is owned exclusively by the loop goroutine.
	submitGuard atomic.Bool

	area    *shelf.Area
	tickets map[string]struct{}

	// discarded holds the ids of orders force-discarded from overflow whose
	// courier has not yet arrived, so that courier's miss is counted once,
	// under Discarded, and not again under Missed.
	discarded map[string]struct{}

	// ordersEnded is read and written only inside Run; it becomes true when
	// the loop itself processes the end-orders event, never before.
	ordersEnded bool

	scheduler *courier.Scheduler
	logger    *zap.Logger

	stats stats

	// final holds the last snapshot taken before Run returned, so Report
	// can still answer after the loop has exited instead of deadlocking.
	// Written once, by Run's goroutine, before done is closed; read only
	// after done is observed closed, so no lock is needed.
	final Report
}

type stats struct {
	delivered int
	missed    int
	moved     int
	discarded int
	rejected  int
}

type reportRequest struct {
	reply chan Report
}

// Report is a point-in-time observation of kitchen state, returned by
// Report() without mutating anything.
type Report struct {
	Shelves            shelf.Snapshot
	OutstandingTickets int
	OrdersEnded        bool
	Delivered          int
	Missed             int
	Moved              int
	Discarded          int
	Rejected           int
}

// New builds a Kitchen wired from cfg: a pick-up area sized per the
// configured shelf capacities and a courier scheduler sampling waits from
// the configured bounds. Run must be called (typically via `go k.Run()`) to
// start processing.
func New(cfg *config.Config, logger *zap.Logger) *Kitchen {
	if logger == nil {
		logger = zap.NewNop()
	}

	hot, cold, frozen, overflow := cfg.ShelfCapacities()
	area := shelf.NewArea(shelf.Capacities{Hot: hot, Cold: cold, Frozen: frozen, Overflow: overflow})
	sched := courier.New(cfg.CourierMinimumWait(), cfg.CourierMaximumWait(), logger.Named("courier"))

	return &Kitchen{
		ordersCh:    make(chan order.Order),
		endOrdersCh: make(chan struct{}),
		stopCh:      make(chan struct{}),
		reportCh:    make(chan reportRequest),
		pickupCh:    make(chan order.Order, channelBuffer),
		deliveryCh:  make(chan order.Order, channelBuffer),
		done:        make(chan struct{}),
		area:        area,
		tickets:     make(map[string]struct{}),
		discarded:   make(map[string]struct{}),
		scheduler:   sched,
		logger:      logger.Named("kitchen"),
	}
}

// Submit enqueues a new order. It blocks until the event loop receives it.
// Calling Submit after EndOrders is a programmer error; Kitchen makes a
// best-effort attempt to detect and report it rather than guaranteeing
// rejection.
func (k *Kitchen) Submit(o order.Order) error {
	if k.submitGuard.Load() {
		return ErrOrdersEnded
	}
	k.ordersCh <- o
	return nil
}

// EndOrders signals that no more orders will arrive. Once every outstanding
// courier ticket has been consumed, the kitchen closes Delivery and Run
// returns.
func (k *Kitchen) EndOrders() {
	k.submitGuard.Store(true)
	k.endOrdersCh <- struct{}{}
}

// Stop forces the event loop to exit immediately without closing Delivery.
// Outstanding courier timers may still fire; their pickup sends are not
// consumed (see package courier).
func (k *Kitchen) Stop() {
	k.stopCh <- struct{}{}
}

// Delivery is the source of successfully picked-up orders. It is closed
// exactly once, on graceful termination; it is never closed on a forced
// Stop.
func (k *Kitchen) Delivery() <-chan order.Order {
	return k.deliveryCh
}

// Report returns a snapshot of current kitchen state without mutating it.
// While the loop is running it blocks until the loop services the request;
// once the loop has terminated it instead returns the last snapshot taken
// before exit, so a caller racing shutdown never deadlocks.
func (k *Kitchen) Report() Report {
	reply := make(chan Report, 1)
	select {
	case k.reportCh <- reportRequest{reply: reply}:
		return <-reply
	case <-k.done:
		return k.final
	}
}

// Run is the kitchen machine's single event loop. It processes exactly one
// event per iteration and returns when the loop terminates, either forced
// (Stop) or graceful (EndOrders plus every ticket consumed). Run must only
// ever be called from one goroutine.
func (k *Kitchen) Run() {
	defer func() {
		k.final = k.snapshot()
		close(k.done)
	}()
	for {
		select {
		case <-k.stopCh:
			k.logger.Info("stopped", zap.Int("outstanding_tickets", len(k.tickets)))
			return

		case req := <-k.reportCh:
			req.reply <- k.snapshot()

		case o := <-k.ordersCh:
			k.handleOrder(o)

		case o := <-k.pickupCh:
			if k.handlePickup(o) {
				return
			}

		case <-k.endOrdersCh:
			k.handleEndOrders()
			if len(k.tickets) == 0 {
				k.closeDelivery()
				return
			}
		}
	}
}

func (k *Kitchen) handleOrder(o order.Order) {
	// K defends its own intake regardless of caller: a malformed temperature
	// must never reach Place, which would otherwise route it onto overflow
	// via kindForTemp's "" fallback (spec.md §7: K MUST NOT accept such an
	// order, independent of whatever validation a driver already did).
	if !o.Temp.Valid() {
		k.stats.rejected++
		k.logger.Warn("rejecting order with invalid temperature",
			zap.String("order_id", o.ID),
			zap.String("temp", string(o.Temp)),
		)
		return
	}

	cooked := o.Cook()
	result := k.area.Place(cooked)
	k.tickets[o.ID] = struct{}{}
	k.scheduler.Schedule(cooked, k.pickupCh)

	switch result.Action {
	case shelf.ActionMoved:
		k.stats.moved++
		k.logger.Info("relocated overflow order",
			zap.String("order_id", o.ID),
			zap.String("affected_order_id", result.AffectedOrder.ID),
		)
	case shelf.ActionDiscarded:
		k.stats.discarded++
		k.discarded[result.AffectedOrder.ID] = struct{}{}
		k.logger.Warn("forced discard",
			zap.String("order_id", o.ID),
			zap.String("discarded_order_id", result.AffectedOrder.ID),
		)
	default:
		k.logger.Debug("order placed",
			zap.String("order_id", o.ID),
			zap.String("shelf", string(result.ShelfPlaced)),
		)
	}
}

// handlePickup processes a pickup event and reports whether the loop should
// terminate (graceful quiescence reached while handling it).
func (k *Kitchen) handlePickup(o order.Order) bool {
	result := k.area.Pickup(o)
	delete(k.tickets, o.ID)

	if result.PickupSuccessful {
		k.stats.delivered++
		select {
		case k.deliveryCh <- result:
		default:
			k.logger.Warn("delivery channel saturated, dropping emission",
				zap.String("order_id", o.ID))
		}
	} else if _, ok := k.discarded[o.ID]; ok {
		delete(k.discarded, o.ID)
		k.logger.Debug("pickup miss for discarded order", zap.String("order_id", o.ID))
	} else {
		k.stats.missed++
		k.logger.Debug("pickup miss", zap.String("order_id", o.ID))
	}

	if k.ordersEnded && len(k.tickets) == 0 {
		k.closeDelivery()
		return true
	}
	return false
}

func (k *Kitchen) handleEndOrders() {
	k.ordersEnded = true
	k.logger.Info("orders ended", zap.Int("outstanding_tickets", len(k.tickets)))
}

func (k *Kitchen) closeDelivery() {
	k.logger.Info("quiescent, closing delivery")
	close(k.deliveryCh)
}

func (k *Kitchen) snapshot() Report {
	return Report{
		Shelves:            k.area.Snapshot(),
		OutstandingTickets: len(k.tickets),
		OrdersEnded:        k.ordersEnded,
		Delivered:          k.stats.delivered,
		Missed:             k.stats.missed,
		Moved:              k.stats.moved,
		Discarded:          k.stats.discarded,
		Rejected:           k.stats.rejected,
	}
}
