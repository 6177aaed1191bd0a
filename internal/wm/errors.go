package wm

import (
	"errors"
	"fmt"

	"github.com/1broseidon/parentwm/internal/platform"
)

var (
	// ErrCannotConnect wraps any failure to open the display connection.
	ErrCannotConnect = errors.New("cannot connect to display")
	// ErrAlreadyManaging is returned by a second Manage call.
	ErrAlreadyManaging = errors.New("already managing a display")
	// ErrNotManaging is returned by operations that need Manage first.
	ErrNotManaging = errors.New("not managing a display")
)

// AdoptionStep names one side effect of the adoption sequence.
type AdoptionStep string

const (
	StepRaise    AdoptionStep = "raise"
	StepSaveSet  AdoptionStep = "save-set"
	StepReparent AdoptionStep = "reparent"
	StepMap      AdoptionStep = "map"
)

// AdoptionStepError reports a display request that failed while adopting.
// Earlier steps are not rolled back.
type AdoptionStepError struct {
	Step   AdoptionStep
	Window platform.WindowID
	Err    error
}

func (e *AdoptionStepError) Error() string {
	return fmt.Sprintf("adopt 0x%x: %s: %v", uint32(e.Window), e.Step, e.Err)
}

func (e *AdoptionStepError) Unwrap() error {
	return e.Err
}
