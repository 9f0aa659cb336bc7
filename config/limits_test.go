package config

import (
	"strings"
	"testing"
)

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()
	if l.MaxActivations != 1024 {
		t.Errorf("MaxActivations = %d, want 1024", l.MaxActivations)
	}
	if l.MaxDispatches != 100_000 {
		t.Errorf("MaxDispatches = %d, want 100000", l.MaxDispatches)
	}
	if l.DebugEnabled {
		t.Error("DebugEnabled = true, want false")
	}
}

func TestLoadLimits(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "valid document",
			doc:  `{"max_activations": 500, "max_dispatches": 50000, "debug_enabled": true}`,
		},
		{
			name:    "missing required field",
			doc:     `{"max_activations": 500}`,
			wantErr: true,
		},
		{
			name:    "zero is below minimum",
			doc:     `{"max_activations": 0, "max_dispatches": 1}`,
			wantErr: true,
		},
		{
			name:    "wrong type",
			doc:     `{"max_activations": "many", "max_dispatches": 1}`,
			wantErr: true,
		},
		{
			name:    "unknown field rejected",
			doc:     `{"max_activations": 1, "max_dispatches": 1, "extra": true}`,
			wantErr: true,
		},
		{
			name:    "not json",
			doc:     `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLimits(strings.NewReader(tt.doc))
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLimits() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadLimitsRoundTrip(t *testing.T) {
	limits, err := LoadLimits(strings.NewReader(`{"max_activations": 7, "max_dispatches": 9, "debug_enabled": true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limits.MaxActivations != 7 || limits.MaxDispatches != 9 || !limits.DebugEnabled {
		t.Errorf("got %+v", limits)
	}
}
