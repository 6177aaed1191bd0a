//go:build linux

package platform

import (
	"errors"
	"testing"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

func TestTranslateEvent_SubstructureEventsNameTheChild(t *testing.T) {
	tests := []struct {
		name string
		in   xgb.Event
		want Event
	}{
		{
			name: "map request",
			in:   xproto.MapRequestEvent{Parent: 1, Window: 0x200},
			want: Event{Kind: EventMapRequest, Window: 0x200, Code: xproto.MapRequest},
		},
		{
			name: "destroy notify",
			in:   xproto.DestroyNotifyEvent{Event: 1, Window: 0x300},
			want: Event{Kind: EventDestroyNotify, Window: 0x300, Code: xproto.DestroyNotify},
		},
		{
			name: "unmap notify",
			in:   xproto.UnmapNotifyEvent{Event: 1, Window: 0x400},
			want: Event{Kind: EventUnmapNotify, Window: 0x400, Code: xproto.UnmapNotify},
		},
		{
			name: "enter notify",
			in:   xproto.EnterNotifyEvent{Event: 0x500, Child: 0x501},
			want: Event{Kind: EventEnterNotify, Window: 0x500, Code: xproto.EnterNotify},
		},
		{
			name: "mapping notify",
			in:   xproto.MappingNotifyEvent{},
			want: Event{Kind: EventMappingNotify, Code: xproto.MappingNotify},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateEvent(tt.in)
			if got != tt.want {
				t.Fatalf("translateEvent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestXMask_RootSelection(t *testing.T) {
	mask := MaskSubstructureRedirect | MaskSubstructureNotify | MaskButtonPress |
		MaskEnterWindow | MaskLeaveWindow | MaskStructureNotify | MaskPropertyChange
	want := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify |
		xproto.EventMaskButtonPress | xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow |
		xproto.EventMaskStructureNotify | xproto.EventMaskPropertyChange)
	if got := xMask(mask); got != want {
		t.Fatalf("xMask() = 0x%x, want 0x%x", got, want)
	}
	if got := xMask(0); got != 0 {
		t.Fatalf("xMask(0) = 0x%x, want 0", got)
	}
}

func TestMapState_FromProtocol(t *testing.T) {
	if mapState(xproto.MapStateViewable) != MapStateViewable {
		t.Fatal("viewable not mapped")
	}
	if mapState(xproto.MapStateUnviewable) != MapStateUnviewable {
		t.Fatal("unviewable not mapped")
	}
	if mapState(xproto.MapStateUnmapped) != MapStateUnmapped {
		t.Fatal("unmapped not mapped")
	}
}

func TestWrapWindowError(t *testing.T) {
	if wrapWindowError(nil) != nil {
		t.Fatal("nil should stay nil")
	}
	err := wrapWindowError(xproto.WindowError{BadValue: 7})
	if !errors.Is(err, ErrBadWindow) {
		t.Fatalf("expected ErrBadWindow, got %v", err)
	}
	other := errors.New("boom")
	if got := wrapWindowError(other); got != other {
		t.Fatalf("unexpected wrap of non-window error: %v", got)
	}
}
