package pipeline

import (
	"testing"

	"github.com/boardwalk-eda/boardwalk/pkg/place"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"report", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"json", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateForLoad(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"path set", Options{BoardPath: "board.json"}, false},
		{"json set", Options{BoardJSON: []byte("{}")}, false},
		{"neither", Options{}, true},
		{"both", Options{BoardPath: "board.json", BoardJSON: []byte("{}")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLoad()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForLoad() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{BoardPath: "board.json"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Iterations != DefaultIterations {
		t.Errorf("Iterations should be %d, got %d", DefaultIterations, opts.Iterations)
	}
	if opts.Dt != DefaultDt {
		t.Errorf("Dt should be %v, got %v", DefaultDt, opts.Dt)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should default to [json], got %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidationErrors(t *testing.T) {
	opts := Options{BoardPath: "board.json", Iterations: -1}
	if err := opts.ValidateForPlace(); err == nil {
		t.Error("negative iterations should fail")
	}

	opts = Options{BoardPath: "board.json", Dt: -0.01}
	if err := opts.ValidateForPlace(); err == nil {
		t.Error("negative dt should fail")
	}
}

func TestPlacementConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := Options{BoardPath: "board.json"}
		cfg, err := opts.PlacementConfig()
		if err != nil {
			t.Fatalf("PlacementConfig: %v", err)
		}
		if cfg != place.DefaultConfig() {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("explicit config wins", func(t *testing.T) {
		custom := place.DefaultConfig()
		custom.ChargeDensity = 42
		opts := Options{BoardPath: "board.json", Config: &custom}
		cfg, err := opts.PlacementConfig()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.ChargeDensity != 42 {
			t.Errorf("ChargeDensity = %v, want 42", cfg.ChargeDensity)
		}
	})

	t.Run("invalid explicit config", func(t *testing.T) {
		bad := place.Config{}
		opts := Options{BoardPath: "board.json", Config: &bad}
		if _, err := opts.PlacementConfig(); err == nil {
			t.Error("invalid config should fail")
		}
	})
}

func TestPlacementKeyOpts(t *testing.T) {
	opts := Options{Iterations: 500, Dt: 0.02, Snap: true}
	cfg := place.DefaultConfig()

	ko1 := opts.PlacementKeyOpts(cfg)
	if ko1.Iterations != 500 || ko1.Dt != 0.02 || !ko1.Snap {
		t.Errorf("key opts = %+v", ko1)
	}

	// Different tuning changes the config hash.
	cfg2 := cfg
	cfg2.SpringStiffness = 99
	ko2 := opts.PlacementKeyOpts(cfg2)
	if ko1.ConfigHash == ko2.ConfigHash {
		t.Error("config hash should depend on tuning parameters")
	}
}
