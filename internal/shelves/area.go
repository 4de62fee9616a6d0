package shelf

import (
	"math/rand/v2"

	"dish-dispatcher/internal/order"
)

// Action describes a secondary mutation Place had to make to admit a new
// order onto an already-full overflow shelf.
type Action string

const (
	// ActionNone means the new order was placed without disturbing anything
	// else.
	ActionNone Action = ""
	// ActionMoved means an overflow order was relocated onto its own
	// temperature shelf to make room.
	ActionMoved Action = "moved"
	// ActionDiscarded means an overflow order was dropped from the system
	// permanently to make room.
	ActionDiscarded Action = "discarded"
)

// PlaceResult reports where a newly placed order ended up and, if
// applicable, which other order was disturbed to make room for it.
type PlaceResult struct {
	ShelfPlaced   Kind
	Action        Action
	AffectedOrder *order.Order
}

// Area is the tuple of the four shelves that make up the pick-up area.
// Area is owned exclusively by the kitchen machine: callers must not share
// an Area across goroutines.
type Area struct {
	shelves map[Kind]*Shelf
	seq     uint64
}

// Capacities configures each shelf's bound at construction time.
type Capacities struct {
	Hot      int
	Cold     int
	Frozen   int
	Overflow int
}

// NewArea builds an empty pick-up area with the given per-shelf capacities.
func NewArea(c Capacities) *Area {
	return &Area{
		shelves: map[Kind]*Shelf{
			Hot:      newShelf(Hot, c.Hot),
			Cold:     newShelf(Cold, c.Cold),
			Frozen:   newShelf(Frozen, c.Frozen),
			Overflow: newShelf(Overflow, c.Overflow),
		},
	}
}

// Shelf returns the named shelf for inspection (reporting, tests). Callers
// must not mutate the returned shelf directly.
func (a *Area) Shelf(k Kind) *Shelf {
	return a.shelves[k]
}

func (a *Area) nextSeq() uint64 {
	a.seq++
	return a.seq
}

// Place admits o into the pick-up area, following the decision tree: direct
// placement on its own shelf, else the overflow shelf, else relocating the
// oldest overflow order that now fits its own shelf, else discarding a
// random overflow order to make room. Place always succeeds; it mutates a
// in place and returns the outcome.
func (a *Area) Place(o order.Order) PlaceResult {
	home := a.shelves[kindForTemp(o.Temp)]
	overflow := a.shelves[Overflow]

	// 1. Direct placement on the order's own shelf.
	if home != nil && home.Avail() > 0 {
		home.insert(o, a.nextSeq())
		return PlaceResult{ShelfPlaced: home.Kind}
	}

	// 2. Overflow has room outright.
	if overflow.Avail() > 0 {
		overflow.insert(o, a.nextSeq())
		return PlaceResult{ShelfPlaced: Overflow}
	}

	// 3. Relocate the oldest overflow order whose own shelf now has room.
	if id, ok := overflow.oldest(func(candidate order.Order) bool {
		dest := a.shelves[kindForTemp(candidate.Temp)]
		return dest != nil && dest.Avail() > 0
	}); ok {
		moved, _ := overflow.remove(id)
		dest := a.shelves[kindForTemp(moved.Temp)]
		dest.insert(moved, a.nextSeq())
		overflow.insert(o, a.nextSeq())
		return PlaceResult{ShelfPlaced: Overflow, Action: ActionMoved, AffectedOrder: &moved}
	}

	// 4. Forced discard: drop a uniformly random overflow order to make
	// room. This is a declared policy choice (spec leaves the selection
	// unspecified beyond "uniform random"), not an error.
	discarded := a.discardRandom(overflow)
	overflow.insert(o, a.nextSeq())
	return PlaceResult{ShelfPlaced: Overflow, Action: ActionDiscarded, AffectedOrder: discarded}
}

func (a *Area) discardRandom(overflow *Shelf) *order.Order {
	ids := make([]string, 0, len(overflow.orders))
	for id := range overflow.orders {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}
	victim := ids[rand.IntN(len(ids))]
	removed, _ := overflow.remove(victim)
	return &removed
}

// Pickup attempts to retrieve the order identified by o.ID and o.Temp. If
// found on its own shelf or on overflow, it is removed and returned with
// PickupSuccessful set. If not found anywhere, Pickup never errors: it
// returns o unchanged with PickupSuccessful left false.
func (a *Area) Pickup(o order.Order) order.Order {
	if home := a.shelves[kindForTemp(o.Temp)]; home != nil {
		if found, ok := home.remove(o.ID); ok {
			found.PickupSuccessful = true
			return found
		}
	}
	if found, ok := a.shelves[Overflow].remove(o.ID); ok {
		found.PickupSuccessful = true
		return found
	}
	o.PickupSuccessful = false
	return o
}

// Snapshot is a read-only view of the pick-up area's contents, used for
// report requests and invariant checks. It never exposes the live maps.
type Snapshot struct {
	Hot      []order.Order
	Cold     []order.Order
	Frozen   []order.Order
	Overflow []order.Order
}

// Snapshot copies the current contents of every shelf.
func (a *Area) Snapshot() Snapshot {
	return Snapshot{
		Hot:      a.shelves[Hot].Orders(),
		Cold:     a.shelves[Cold].Orders(),
		Frozen:   a.shelves[Frozen].Orders(),
		Overflow: a.shelves[Overflow].Orders(),
	}
}
