package common

import "errors"

// ErrModulePaused is returned when the governance circuit breaker has halted a
// native module outright, independent of any per-asset pause flag the module
// keeps for finer-grained control.
var ErrModulePaused = errors.New("module paused")

// PauseView reports whether a native module is currently halted.
type PauseView interface {
	IsPaused(module string) bool
}

// Guard rejects the operation when the module is paused. A nil view or empty
// module name leaves the operation ungated.
func Guard(p PauseView, module string) error {
	if p == nil || module == "" {
		return nil
	}
	if p.IsPaused(module) {
		return ErrModulePaused
	}
	return nil
}
