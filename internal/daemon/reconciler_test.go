package daemon

import (
	"testing"
	"time"
)

func TestReconciler_Ticker(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     time.Duration
		disabled bool
	}{
		{"disabled", 0, 0, true},
		{"negative uses default", -1, defaultReconcileInterval, false},
		{"explicit", 5 * time.Second, 5 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReconciler(tt.interval, nil, nil)
			if r.interval != tt.want {
				t.Fatalf("interval = %v, want %v", r.interval, tt.want)
			}
			ch, stop := r.ticker()
			defer stop()
			if (ch == nil) != tt.disabled {
				t.Fatalf("ticker channel nil = %v, want %v", ch == nil, tt.disabled)
			}
		})
	}
}
