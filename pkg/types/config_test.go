package types

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "zero config is valid",
			config:  Config{},
			wantErr: nil,
		},
		{
			name:    "json format with debug level",
			config:  Config{LogFormat: LogFormatJSON, LogLevel: "debug"},
			wantErr: nil,
		},
		{
			name:    "unknown format returns ErrLogFormatUnknown",
			config:  Config{LogFormat: "xml"},
			wantErr: ErrLogFormatUnknown,
		},
		{
			name:    "unknown level returns ErrLogLevelUnknown",
			config:  Config{LogLevel: "trace"},
			wantErr: ErrLogLevelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %v, got nil", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
