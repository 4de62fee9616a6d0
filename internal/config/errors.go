package config

import "fmt"

// InvalidError wraps one or more configuration validation failures: missing
// keys, bad types, out-of-range capacities, or an inverted courier wait
// range. It is always fatal at startup.
type InvalidError struct {
	cause error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("config: invalid configuration: %v", e.cause)
}

func (e *InvalidError) Unwrap() error {
	return e.cause
}
