package wm

import "github.com/1broseidon/parentwm/internal/platform"

// scan adopts the root's existing children. Normal windows go first so that
// transients are layered on top of the windows they belong to.
func (m *Manager) scan() {
	children, err := m.display.QueryTree(m.root)
	if err != nil {
		m.logger.Warn("scan: failed to query root children", "error", err)
		return
	}

	reported := make(map[platform.WindowID]bool)
	for _, pass := range []scanPass{passNormal, passTransient} {
		adopted := 0
		for _, id := range children {
			info, err := m.windowInfo(id)
			d := classifyExisting(pass, info, err, m.registry.Contains(id))
			if !d.Adopt {
				// Deferred windows belong to the other pass.
				if d.Reason != ReasonTransientDeferred && d.Reason != ReasonNotTransient && !reported[id] {
					reported[id] = true
					m.ignored(id, d.Reason)
				}
				continue
			}
			m.adopt(id, d.Floating)
			adopted++
		}
		m.logger.Debug("scan pass complete", "pass", pass.String(), "children", len(children), "adopted", adopted)
	}
}
