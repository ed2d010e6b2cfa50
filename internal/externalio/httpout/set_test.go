package httpout

import (
	"aisfeed/internal/compress"
	"aisfeed/internal/global"
	"aisfeed/internal/setting"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSet(t *testing.T) {
	tests := []struct {
		name     string
		option   string
		arg      string
		wantErr  bool
		contains string
	}{
		{"url", "url", "http://example", false, ""},
		{"interval in range", "INTERVAL", "86400", false, ""},
		{"interval too large", "INTERVAL", "86401", true, "INTERVAL"},
		{"interval zero", "interval", "0", true, "INTERVAL"},
		{"timeout in range", "TIMEOUT", "30", false, ""},
		{"timeout too large", "TIMEOUT", "31", true, "TIMEOUT"},
		{"switch", "RESPONSE", "on", false, ""},
		{"bad switch", "TEST", "maybe", true, "TEST"},
		{"unknown protocol", "PROTOCOL", "XML", true, "unknown protocol"},
		{"filter pass-through", "ALLOW_TYPE", "1,2", false, ""},
		{"bad filter value", "ALLOW_TYPE", "99", true, "ALLOW_TYPE"},
		{"groups mask", "GROUPS_IN", "3", false, ""},
		{"unknown option", "FOO", "1", true, "HTTP output - unknown option: FOO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := New()
			self, err := mod.Set(tt.option, tt.arg)
			if self != mod {
				t.Fatalf("Set should return the module itself")
			}
			if tt.wantErr {
				if !errors.Is(err, setting.ErrConfiguration) {
					t.Fatalf("expected configuration error, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.contains) {
					t.Fatalf("error %q should mention %q", err.Error(), tt.contains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSetProtocolAirframes(t *testing.T) {
	mod := New()
	if _, err := mod.Set("PROTOCOL", "airframes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mod.interval != global.AirframesInterval {
		t.Errorf("expected interval %d, got %d", global.AirframesInterval, mod.interval)
	}
	if !mod.gzip {
		t.Errorf("expected gzip enabled when compression is available")
	}
	if mod.builder.Dictionary().Name != "MINIMAL" {
		t.Errorf("expected minimal dictionary, got %s", mod.builder.Dictionary().Name)
	}

	noZip := New()
	noZip.SetCompressor(compress.Unavailable{})
	noZip.Set("PROTOCOL", "AIRFRAMES")
	if noZip.gzip {
		t.Errorf("gzip must stay off without compression")
	}
}

func TestGzipUnavailable(t *testing.T) {
	mod := New()
	mod.SetCompressor(compress.Unavailable{})
	mod.SetPoster(&mockPoster{})

	_, err := mod.Set("GZIP", "true")
	if !errors.Is(err, setting.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "compression is not available") {
		t.Fatalf("error should describe the missing capability: %v", err)
	}
	if mod.gzip {
		t.Fatalf("gzip must not be enabled")
	}

	// Turning it off is always fine
	if _, err = mod.Set("GZIP", "false"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStartRequiresTransport(t *testing.T) {
	mod := New()
	err := mod.Start(context.Background())
	if !errors.Is(err, setting.ErrStartup) {
		t.Fatalf("expected startup error, got %v", err)
	}

	testMode := New()
	testMode.Set("TEST", "on")
	if err = testMode.Start(context.Background()); err != nil {
		t.Fatalf("test mode should start without transport: %v", err)
	}
	testMode.Stop(context.Background())
}
