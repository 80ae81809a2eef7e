package resilience

import (
	"testing"
	"time"
)

func TestCircuitBreakerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     CircuitBreakerConfig
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultCircuitBreakerConfig()},
		{name: "disabled skips checks", cfg: CircuitBreakerConfig{}},
		{name: "zero threshold", cfg: CircuitBreakerConfig{Enabled: true, OpenTimeout: time.Second, HalfOpenMaxReq: 1}, wantErr: true},
		{name: "zero timeout", cfg: CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, HalfOpenMaxReq: 1}, wantErr: true},
		{name: "zero probes", cfg: CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second}, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestCircuitBreakerConfig_Normalize(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: -1, OpenTimeout: 0, HalfOpenMaxReq: 4}.Normalize()
	if got.FailureThreshold != 3 || got.OpenTimeout != 5*time.Minute || got.HalfOpenMaxReq != 4 {
		t.Fatalf("unexpected normalized config: %+v", got)
	}
}
