package order

import "fmt"

// Temperature type for order temperature
type Temperature string

// Temperature constants
const (
	Hot    Temperature = "hot"
	Cold   Temperature = "cold"
	Frozen Temperature = "frozen"
)

// Valid reports whether t is one of the three temperatures a customer order
// may declare. The overflow shelf is not a temperature and never a valid
// value here.
func (t Temperature) Valid() bool {
	switch t {
	case Hot, Cold, Frozen:
		return true
	default:
		return false
	}
}

// Order is a customer order as it flows through the pipeline. ID is assumed
// globally unique and opaque. Attrs carries whatever additional fields the
// intake record held, passed through end to end without the kitchen
// interpreting them.
type Order struct {
	ID   string
	Name string
	Temp Temperature

	Attrs map[string]any

	// Cooked and PickupSuccessful are set only by the kitchen machine.
	Cooked           bool
	PickupSuccessful bool
}

// NewOrder builds an order in its as-submitted state: not yet cooked, not
// yet picked up.
func NewOrder(id, name string, temp Temperature) Order {
	return Order{ID: id, Name: name, Temp: temp}
}

// Cook returns a copy of o with Cooked set. Cooking is a pure label: it
// never blocks and never fails.
func (o Order) Cook() Order {
	o.Cooked = true
	return o
}

func (o Order) String() string {
	return fmt.Sprintf("Order{ID: %s, Name: %s, Temp: %s, Cooked: %t, PickupSuccessful: %t}",
		o.ID, o.Name, o.Temp, o.Cooked, o.PickupSuccessful)
}
