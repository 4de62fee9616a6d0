package order

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Record is the wire shape of an order as read from the orders source: an
// id, a temperature, and whatever opaque attributes the producer included.
// Record preserves those opaque attributes so they can be carried through to
// Order.Attrs unchanged.
type Record struct {
	ID   string `json:"id" validate:"omitempty"`
	Temp string `json:"temp" validate:"required,oneof=hot cold frozen"`
	Name string `json:"name,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

var validate = validator.New()

// UnmarshalJSON captures id/temp/name into named fields and keeps every
// other key in Extra, so additional attributes survive round-tripping
// without Record needing to know their shape.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	type alias Record
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = Record(a)

	r.Extra = make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		switch k {
		case "id", "temp", "name":
			continue
		default:
			r.Extra[k] = v
		}
	}
	return nil
}

// Validate checks the record against the allowed temperature set and
// required-field invariants from the intake contract. A record missing temp,
// or whose temp is outside {hot, cold, frozen}, is OrderMalformed. A missing
// id passes validation; ToOrder mints one.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	return nil
}

// ToOrder converts a validated record into the kitchen's Order type, minting
// an id via uuid when the source record omitted one.
func (r Record) ToOrder() Order {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	var attrs map[string]any
	if len(r.Extra) > 0 {
		attrs = make(map[string]any, len(r.Extra))
		for k, v := range r.Extra {
			var decoded any
			if err := json.Unmarshal(v, &decoded); err == nil {
				attrs[k] = decoded
			}
		}
	}

	return Order{
		ID:    id,
		Name:  r.Name,
		Temp:  Temperature(r.Temp),
		Attrs: attrs,
	}
}
