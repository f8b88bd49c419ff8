//go:build !tinygo && !cgo

package hal

import "fmt"

func RunWindow(_ HostOptions, _ func(h HAL) func() error) error {
	return fmt.Errorf("window mode requires cgo (build/run with CGO_ENABLED=1): %w", ErrNotImplemented)
}
