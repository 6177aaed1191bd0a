package wm

import (
	"errors"
	"fmt"

	"github.com/1broseidon/parentwm/internal/platform"
)

var errGone = fmt.Errorf("%w: resource gone", platform.ErrBadWindow)

type fakeWindow struct {
	attrs        platform.Attributes
	transientFor platform.WindowID
	gone         bool
}

type call struct {
	op     string
	window platform.WindowID
	parent platform.WindowID
	x, y   int
}

type fakeItem struct {
	ev  platform.Event
	err error
}

// fakeDisplay is an in-memory display that records every mutating request.
type fakeDisplay struct {
	root     platform.WindowID
	windows  map[platform.WindowID]*fakeWindow
	children []platform.WindowID

	selectErr    error
	queryTreeErr error
	syncErr      error
	stepErrs     map[string]error

	// beforeMutation runs before each mutating request is recorded.
	beforeMutation func(op string, id platform.WindowID)

	calls       []call
	selected    []platform.EventMask
	queue       []fakeItem
	ready       chan struct{}
	syncs       int
	queryTrees  int
	closed      bool
	advertised  []string
	clientLists [][]platform.WindowID
	// attrErr, when set, fails every attribute query.
	attrErr error
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		root:     1,
		windows:  make(map[platform.WindowID]*fakeWindow),
		stepErrs: make(map[string]error),
		ready:    make(chan struct{}, 1),
	}
}

// addChild registers an existing top-level window.
func (f *fakeDisplay) addChild(id platform.WindowID, w fakeWindow) {
	f.putWindow(id, w)
	f.children = append(f.children, id)
}

// putWindow registers a window without making it a root child (for example a
// window that only exists as the subject of a map request).
func (f *fakeDisplay) putWindow(id platform.WindowID, w fakeWindow) {
	cp := w
	f.windows[id] = &cp
}

func (f *fakeDisplay) enqueue(events ...platform.Event) {
	for _, ev := range events {
		f.queue = append(f.queue, fakeItem{ev: ev})
	}
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

func (f *fakeDisplay) enqueueErr(err error) {
	f.queue = append(f.queue, fakeItem{err: err})
}

func (f *fakeDisplay) mutation(op string, id, parent platform.WindowID, x, y int) error {
	if f.beforeMutation != nil {
		f.beforeMutation(op, id)
	}
	f.calls = append(f.calls, call{op: op, window: id, parent: parent, x: x, y: y})
	if err := f.stepErrs[op]; err != nil {
		return err
	}
	if w, ok := f.windows[id]; !ok || w.gone {
		return errGone
	}
	return nil
}

func (f *fakeDisplay) callsFor(id platform.WindowID) []string {
	var ops []string
	for _, c := range f.calls {
		if c.window == id {
			ops = append(ops, c.op)
		}
	}
	return ops
}

func (f *fakeDisplay) Root() platform.WindowID { return f.root }

func (f *fakeDisplay) SelectInput(window platform.WindowID, mask platform.EventMask) error {
	if f.selectErr != nil {
		return f.selectErr
	}
	f.selected = append(f.selected, mask)
	return nil
}

func (f *fakeDisplay) QueryTree(window platform.WindowID) ([]platform.WindowID, error) {
	f.queryTrees++
	if f.queryTreeErr != nil {
		return nil, f.queryTreeErr
	}
	out := make([]platform.WindowID, len(f.children))
	copy(out, f.children)
	return out, nil
}

func (f *fakeDisplay) WindowAttributes(window platform.WindowID) (platform.Attributes, error) {
	if f.attrErr != nil {
		return platform.Attributes{}, f.attrErr
	}
	w, ok := f.windows[window]
	if !ok || w.gone {
		return platform.Attributes{}, errGone
	}
	return w.attrs, nil
}

func (f *fakeDisplay) TransientFor(window platform.WindowID) (platform.WindowID, bool) {
	w, ok := f.windows[window]
	if !ok || w.transientFor == 0 {
		return 0, false
	}
	return w.transientFor, true
}

func (f *fakeDisplay) RaiseWindow(window platform.WindowID) error {
	return f.mutation("raise", window, 0, 0, 0)
}

func (f *fakeDisplay) AddToSaveSet(window platform.WindowID) error {
	return f.mutation("save-set", window, 0, 0, 0)
}

func (f *fakeDisplay) ReparentWindow(window, parent platform.WindowID, x, y int) error {
	return f.mutation("reparent", window, parent, x, y)
}

func (f *fakeDisplay) MapWindow(window platform.WindowID) error {
	if err := f.mutation("map", window, 0, 0, 0); err != nil {
		return err
	}
	f.windows[window].attrs.MapState = platform.MapStateViewable
	return nil
}

func (f *fakeDisplay) Pending() int { return len(f.queue) }

func (f *fakeDisplay) NextEvent() (platform.Event, error) {
	if len(f.queue) == 0 {
		return platform.Event{}, errors.New("no pending events")
	}
	item := f.queue[0]
	f.queue = f.queue[1:]
	return item.ev, item.err
}

func (f *fakeDisplay) Ready() <-chan struct{} { return f.ready }

func (f *fakeDisplay) Sync() error {
	f.syncs++
	return f.syncErr
}

func (f *fakeDisplay) Close() error {
	f.closed = true
	return nil
}

func (f *fakeDisplay) AdvertiseSupport(name string) error {
	f.advertised = append(f.advertised, name)
	return nil
}

func (f *fakeDisplay) PublishClientList(windows []platform.WindowID) error {
	f.clientLists = append(f.clientLists, windows)
	return nil
}

func (f *fakeDisplay) lastClientList() []platform.WindowID {
	if len(f.clientLists) == 0 {
		return nil
	}
	return f.clientLists[len(f.clientLists)-1]
}

// bareDisplay hides the optional interfaces of the wrapped display.
type bareDisplay struct {
	platform.Display
}

// recordingObserver collects observer callbacks.
type recordingObserver struct {
	adopted   []ManagedWindow
	ignored   map[platform.WindowID]IgnoreReason
	forgotten []platform.WindowID
	events    []platform.EventKind
	stepFails []AdoptionStep
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{ignored: make(map[platform.WindowID]IgnoreReason)}
}

func (r *recordingObserver) WindowAdopted(w ManagedWindow) { r.adopted = append(r.adopted, w) }
func (r *recordingObserver) WindowIgnored(id platform.WindowID, reason IgnoreReason) {
	r.ignored[id] = reason
}
func (r *recordingObserver) WindowForgotten(id platform.WindowID) {
	r.forgotten = append(r.forgotten, id)
}
func (r *recordingObserver) EventHandled(kind platform.EventKind) { r.events = append(r.events, kind) }
func (r *recordingObserver) AdoptionStepFailed(step AdoptionStep, id platform.WindowID, err error) {
	r.stepFails = append(r.stepFails, step)
}

func viewable() fakeWindow {
	return fakeWindow{attrs: platform.Attributes{MapState: platform.MapStateViewable}}
}

// newManaged returns a manager that has completed Manage against display.
func newManaged(display platform.Display, obs Observer) (*Manager, error) {
	m := New(func() (platform.Display, error) { return display, nil }, Config{Observer: obs, WMName: "parentwm"})
	if _, err := m.Manage(); err != nil {
		return nil, err
	}
	return m, nil
}
