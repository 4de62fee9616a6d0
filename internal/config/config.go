// Package config loads and validates the frozen, read-once parameters that
// govern a simulation run: shelf capacities, courier wait bounds, and
// customer pacing.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
)

// shelfCapacityKeys are the four temperature/overflow keys spec.md §6
// requires the shelf-capacity mapping to carry.
var shelfCapacityKeys = []string{"hot", "cold", "frozen", "overflow"}

// Config contains every configuration parameter the pipeline reads once at
// startup. ShelfCapacity is a mapping {hot,cold,frozen,overflow -> int}, per
// spec.md §6's documented `shelf-capacity` key, rather than four independent
// flat fields.
type Config struct {
	OrdersSource string `json:"orders-source" validate:"required"`

	CustomerWaitBetweenOrdersMS int `json:"customer-wait-between-orders" validate:"gte=0"`
	CourierMinimumWaitTimeMS    int `json:"courier-minimum-wait-time" validate:"gte=0"`
	CourierMaximumWaitTimeMS    int `json:"courier-maximum-wait-time" validate:"gtefield=CourierMinimumWaitTimeMS"`

	ShelfCapacity map[string]int `json:"shelf-capacity" validate:"required"`
}

var validate = validator.New()

// DefaultConfig returns a configuration suitable for a quick local run: an
// orders source of "orders.json" in the working directory, generous shelf
// capacities, and courier waits in the 2-6 second range the take-home
// scenarios in spec.md §8 commonly use.
func DefaultConfig() *Config {
	return &Config{
		OrdersSource:                "orders.json",
		CustomerWaitBetweenOrdersMS: 500,
		CourierMinimumWaitTimeMS:    2000,
		CourierMaximumWaitTimeMS:    6000,
		ShelfCapacity: map[string]int{
			"hot":      10,
			"cold":     10,
			"frozen":   10,
			"overflow": 15,
		},
	}
}

// LoadConfig reads and validates configuration from a JSON file at path. A
// missing file is not an error: DefaultConfig is returned instead, matching
// the teacher's behavior of falling back to sane defaults for local runs.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &InvalidError{cause: err}
		}
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate enforces the invariants spec.md §6 requires of configuration:
// capacities are non-negative, all four temperature keys are present in
// shelf-capacity, and the courier wait bounds are ordered (min <= max). A
// violation is InvalidError, fatal at startup. Every problem found is
// aggregated with go.uber.org/multierr rather than reporting only the
// first, since shelf-capacity's map shape means more than one key can be
// missing or invalid at once.
func (c *Config) Validate() error {
	var errs error
	if err := validate.Struct(c); err != nil {
		errs = multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, c.validateShelfCapacity())

	if errs != nil {
		return &InvalidError{cause: errs}
	}
	return nil
}

// validateShelfCapacity checks that shelf-capacity carries all four
// required keys, each non-negative.
func (c *Config) validateShelfCapacity() error {
	var errs error
	for _, key := range shelfCapacityKeys {
		v, ok := c.ShelfCapacity[key]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("shelf-capacity: missing key %q", key))
			continue
		}
		if v < 0 {
			errs = multierr.Append(errs, fmt.Errorf("shelf-capacity: key %q must be >= 0, got %d", key, v))
		}
	}
	return errs
}

// CourierMinimumWait and CourierMaximumWait convert the millisecond config
// fields into time.Duration for the scheduler.
func (c *Config) CourierMinimumWait() time.Duration {
	return time.Duration(c.CourierMinimumWaitTimeMS) * time.Millisecond
}

func (c *Config) CourierMaximumWait() time.Duration {
	return time.Duration(c.CourierMaximumWaitTimeMS) * time.Millisecond
}

// CustomerWaitBetweenOrders converts the millisecond pacing field into a
// time.Duration for the driver.
func (c *Config) CustomerWaitBetweenOrders() time.Duration {
	return time.Duration(c.CustomerWaitBetweenOrdersMS) * time.Millisecond
}

// ShelfCapacities adapts the shelf-capacity mapping into the shape the
// pick-up area constructor expects.
func (c *Config) ShelfCapacities() (hot, cold, frozen, overflow int) {
	return c.ShelfCapacity["hot"], c.ShelfCapacity["cold"], c.ShelfCapacity["frozen"], c.ShelfCapacity["overflow"]
}
