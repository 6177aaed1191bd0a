package wm

import "github.com/1broseidon/parentwm/internal/platform"

// Observer receives notifications about management decisions. Calls happen
// on the goroutine driving the Manager and must not block.
type Observer interface {
	WindowAdopted(w ManagedWindow)
	WindowIgnored(id platform.WindowID, reason IgnoreReason)
	WindowForgotten(id platform.WindowID)
	EventHandled(kind platform.EventKind)
	AdoptionStepFailed(step AdoptionStep, id platform.WindowID, err error)
}

type nopObserver struct{}

func (nopObserver) WindowAdopted(ManagedWindow)                                {}
func (nopObserver) WindowIgnored(platform.WindowID, IgnoreReason)              {}
func (nopObserver) WindowForgotten(platform.WindowID)                          {}
func (nopObserver) EventHandled(platform.EventKind)                            {}
func (nopObserver) AdoptionStepFailed(AdoptionStep, platform.WindowID, error) {}
