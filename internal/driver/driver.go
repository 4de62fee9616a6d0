// Package driver implements the customer/driver component spec.md §4.5
// leaves external: it reads order records from a JSON file, paces their
// submission to a Kitchen, and logs whatever the kitchen eventually
// delivers. It is the teacher's order-file-driven simulation loop
// (internal/simulator's loadOrdersFromFile/generateOrders) rebuilt against
// the kitchen package's Submit/EndOrders/Delivery contract instead of the
// teacher's ShelfManager.
package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dish-dispatcher/internal/kitchen"
	"dish-dispatcher/internal/order"
)

// Driver reads order.Records from a file, submits them to a Kitchen at a
// fixed pace, and logs deliveries as they arrive. It owns neither the
// Kitchen's event loop nor its channels; it only calls the public methods.
type Driver struct {
	kitchen     *kitchen.Kitchen
	waitBetween time.Duration
	logger      *zap.Logger
}

// New builds a Driver that submits to k, pacing consecutive submissions by
// waitBetween (spec.md's customer-wait-between-orders).
func New(k *kitchen.Kitchen, waitBetween time.Duration, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{kitchen: k, waitBetween: waitBetween, logger: logger.Named("driver")}
}

// LoadRecords reads a JSON array of order records from path, in the
// teacher's loadOrdersFromFile idiom. An unreadable or undecodable orders
// source is fatal per spec.md §7 ("fatal errors surface from the driver's
// startup path and terminate the process before the loop starts"): callers
// are expected to check this error and exit before ever constructing a
// Kitchen, rather than let a bad orders source surface only as a log line
// after the event loop is already running.
func LoadRecords(path string) ([]order.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("driver: failed to open orders source: %w", err)
	}
	defer file.Close()

	var records []order.Record
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		return nil, fmt.Errorf("driver: failed to decode orders source: %w", err)
	}
	return records, nil
}

// SubmitAll validates and submits each of records in turn, paced by
// waitBetween, skipping any malformed record rather than aborting the run,
// then calls EndOrders once every record has been tried. SubmitAll returns
// once submission is complete; it does not wait for the kitchen's event
// loop to finish draining outstanding tickets.
//
// Every skipped or rejected record contributes its error to the result
// rather than being silently swallowed; errs aggregates them with
// go.uber.org/multierr so a caller can inspect each one via
// multierr.Errors. Unlike LoadRecords' error, this one is never fatal: it
// mirrors the teacher's "skip and report" handling of a bad individual
// order, not a bad orders source.
func (d *Driver) SubmitAll(records []order.Record) error {
	d.logger.Info("orders loaded", zap.Int("count", len(records)))

	var errs error
	first := true
	for _, rec := range records {
		if !first {
			time.Sleep(d.waitBetween)
		}
		first = false

		if err := rec.Validate(); err != nil {
			d.logger.Warn("skipping malformed order record", zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}

		o := rec.ToOrder()
		if err := d.kitchen.Submit(o); err != nil {
			d.logger.Error("submit failed", zap.String("order_id", o.ID), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", o.ID, err))
			continue
		}
		d.logger.Debug("order submitted", zap.String("order_id", o.ID), zap.String("temp", string(o.Temp)))
	}

	d.logger.Info("orders exhausted, signaling end of orders")
	d.kitchen.EndOrders()
	return errs
}

// Run loads records from ordersSource and submits them via SubmitAll. It is
// a convenience wrapper for callers that don't need LoadRecords' fatal
// error separated from SubmitAll's per-record one, such as tests;
// cmd/server calls LoadRecords and SubmitAll directly
// so it can exit non-zero on a bad orders source before starting the
// kitchen.
func (d *Driver) Run(ordersSource string) error {
	records, err := LoadRecords(ordersSource)
	if err != nil {
		return err
	}
	return d.SubmitAll(records)
}

// WatchDeliveries logs every order the kitchen emits as delivered, until
// Delivery closes. It is meant to run on its own goroutine alongside Run.
func (d *Driver) WatchDeliveries() {
	for o := range d.kitchen.Delivery() {
		d.logger.Info("order delivered", zap.String("order_id", o.ID), zap.String("name", o.Name))
	}
	d.logger.Info("delivery stream closed")
}
