package wm

import "github.com/1broseidon/parentwm/internal/platform"

// Adopted windows are reparented at the container's origin.
const (
	reparentX = 0
	reparentY = 0
)

// adopt brings a classified window under management. The order matters: the
// window is registered before any request that can produce events about it,
// and is in the save-set before it is reparented. Failed steps are reported
// and the sequence goes on; nothing is rolled back.
func (m *Manager) adopt(id platform.WindowID, floating bool) []error {
	m.registry.Add(id, floating)
	m.stats.Adopted++

	var errs []error
	step := func(name AdoptionStep, err error) {
		if err == nil {
			return
		}
		stepErr := &AdoptionStepError{Step: name, Window: id, Err: err}
		m.stats.StepErrors++
		m.observer.AdoptionStepFailed(name, id, err)
		m.logger.Warn("adoption step failed",
			"window_id", uint32(id),
			"step", string(name),
			"error", err)
		errs = append(errs, stepErr)
	}

	if floating {
		step(StepRaise, m.display.RaiseWindow(id))
	}
	step(StepSaveSet, m.display.AddToSaveSet(id))
	step(StepReparent, m.display.ReparentWindow(id, m.root, reparentX, reparentY))
	step(StepMap, m.display.MapWindow(id))

	w := ManagedWindow{ID: id, Floating: floating}
	m.observer.WindowAdopted(w)
	m.logger.Info("window adopted", "window_id", uint32(id), "floating", floating)
	return errs
}
