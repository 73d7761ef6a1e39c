package errors

import (
	"math"
	"testing"
)

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"positive", 10, false},
		{"small positive", 1e-9, false},

		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("tmin", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateOpenUnit(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"middle", 0.9, false},
		{"zero", 0, true},
		{"one", 1, true},
		{"above", 1.5, true},
		{"nan", math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOpenUnit("cooling", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOpenUnit(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateUnit(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"middle", 0.6, false},
		{"negative", -0.1, true},
		{"above", 1.01, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUnit("perturbation", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUnit(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateMinInt(t *testing.T) {
	if err := ValidateMinInt("iterations", 1, 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateMinInt("iterations", 0, 1); err == nil {
		t.Error("expected error for value below minimum")
	}
}
