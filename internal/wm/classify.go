package wm

import "github.com/1broseidon/parentwm/internal/platform"

// IgnoreReason says why a window was not adopted.
type IgnoreReason string

const (
	ReasonQueryFailed       IgnoreReason = "query-failed"
	ReasonOverrideRedirect  IgnoreReason = "override-redirect"
	ReasonAlreadyManaged    IgnoreReason = "already-managed"
	ReasonNotViewable       IgnoreReason = "not-viewable"
	ReasonTransientDeferred IgnoreReason = "transient-deferred"
	ReasonNotTransient      IgnoreReason = "not-transient"
)

// WindowInfo is everything the classifier looks at for one window.
type WindowInfo struct {
	Attributes platform.Attributes
	// TransientFor is the owner named by WM_TRANSIENT_FOR, valid when
	// HasTransientFor is set.
	TransientFor    platform.WindowID
	HasTransientFor bool
}

// Decision is the classifier's verdict for one window.
type Decision struct {
	Adopt    bool
	Floating bool
	Reason   IgnoreReason
}

func ignore(reason IgnoreReason) Decision {
	return Decision{Reason: reason}
}

// Classify decides whether a window asking to be mapped should be adopted.
// queryErr is the error from reading its attributes, if any. Map state is not
// consulted: a window requesting a map is legitimately unmapped.
func Classify(info WindowInfo, queryErr error, alreadyManaged bool) Decision {
	switch {
	case queryErr != nil:
		return ignore(ReasonQueryFailed)
	case info.Attributes.OverrideRedirect:
		return ignore(ReasonOverrideRedirect)
	case alreadyManaged:
		return ignore(ReasonAlreadyManaged)
	}
	return Decision{Adopt: true, Floating: info.HasTransientFor}
}

// scanPass is one of the two discovery passes.
type scanPass int

const (
	passNormal scanPass = iota + 1
	passTransient
)

func (p scanPass) String() string {
	if p == passTransient {
		return "transient"
	}
	return "normal"
}

// classifyExisting applies the discovery filters for pass on top of Classify.
// The normal pass takes only viewable windows without a transient hint; the
// transient pass takes only viewable windows with one.
func classifyExisting(pass scanPass, info WindowInfo, queryErr error, alreadyManaged bool) Decision {
	if queryErr != nil {
		return ignore(ReasonQueryFailed)
	}
	if info.Attributes.OverrideRedirect {
		return ignore(ReasonOverrideRedirect)
	}
	switch pass {
	case passNormal:
		if info.HasTransientFor {
			return ignore(ReasonTransientDeferred)
		}
	case passTransient:
		if !info.HasTransientFor {
			return ignore(ReasonNotTransient)
		}
	}
	if info.Attributes.MapState != platform.MapStateViewable {
		return ignore(ReasonNotViewable)
	}
	return Classify(info, nil, alreadyManaged)
}
