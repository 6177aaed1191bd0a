package daemon

import (
	"errors"
	"fmt"
	"sync"

	"github.com/1broseidon/parentwm/internal/platform"
)

var errGone = fmt.Errorf("%w: resource gone", platform.ErrBadWindow)

type fakeItem struct {
	ev  platform.Event
	err error
}

// fakeDisplay is safe for use from the loop goroutine and the test at once.
type fakeDisplay struct {
	mu        sync.Mutex
	windows   map[platform.WindowID]platform.Attributes
	transient map[platform.WindowID]platform.WindowID
	children  []platform.WindowID
	selectErr error
	queue     []fakeItem
	ready     chan struct{}
	closed    bool
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		windows:   make(map[platform.WindowID]platform.Attributes),
		transient: make(map[platform.WindowID]platform.WindowID),
		ready:     make(chan struct{}, 1),
	}
}

func (f *fakeDisplay) addChild(id platform.WindowID, owner platform.WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows[id] = platform.Attributes{MapState: platform.MapStateViewable}
	if owner != 0 {
		f.transient[id] = owner
	}
	f.children = append(f.children, id)
}

func (f *fakeDisplay) createWindow(id platform.WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.windows[id] = platform.Attributes{}
}

func (f *fakeDisplay) destroyWindow(id platform.WindowID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.windows, id)
}

func (f *fakeDisplay) push(item fakeItem) {
	f.mu.Lock()
	f.queue = append(f.queue, item)
	f.mu.Unlock()
	select {
	case f.ready <- struct{}{}:
	default:
	}
}

func (f *fakeDisplay) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeDisplay) Root() platform.WindowID { return 1 }

func (f *fakeDisplay) SelectInput(platform.WindowID, platform.EventMask) error {
	return f.selectErr
}

func (f *fakeDisplay) QueryTree(platform.WindowID) ([]platform.WindowID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.WindowID(nil), f.children...), nil
}

func (f *fakeDisplay) WindowAttributes(id platform.WindowID) (platform.Attributes, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attrs, ok := f.windows[id]
	if !ok {
		return platform.Attributes{}, errGone
	}
	return attrs, nil
}

func (f *fakeDisplay) TransientFor(id platform.WindowID) (platform.WindowID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, ok := f.transient[id]
	return owner, ok
}

func (f *fakeDisplay) exists(id platform.WindowID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.windows[id]; !ok {
		return errGone
	}
	return nil
}

func (f *fakeDisplay) RaiseWindow(id platform.WindowID) error  { return f.exists(id) }
func (f *fakeDisplay) AddToSaveSet(id platform.WindowID) error { return f.exists(id) }
func (f *fakeDisplay) ReparentWindow(id, parent platform.WindowID, x, y int) error {
	return f.exists(id)
}
func (f *fakeDisplay) MapWindow(id platform.WindowID) error { return f.exists(id) }

func (f *fakeDisplay) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

func (f *fakeDisplay) NextEvent() (platform.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queue) == 0 {
		return platform.Event{}, errors.New("no pending events")
	}
	item := f.queue[0]
	f.queue = f.queue[1:]
	return item.ev, item.err
}

func (f *fakeDisplay) Ready() <-chan struct{} { return f.ready }
func (f *fakeDisplay) Sync() error            { return nil }

func (f *fakeDisplay) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
