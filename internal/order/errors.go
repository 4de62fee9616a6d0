package order

import "errors"

// ErrMalformed marks an intake record missing temp or carrying a temp
// outside {hot, cold, frozen}. A record without an id is not rejected:
// Record.ToOrder mints one. The driver may skip and report a malformed
// record; the kitchen machine never accepts an order with such a temp.
var ErrMalformed = errors.New("order: malformed record")
