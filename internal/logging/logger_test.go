package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     Level
		wantError bool
		wantWarn  bool
		wantInfo  bool
		wantDebug bool
	}{
		{LevelError, true, false, false, false},
		{LevelWarn, true, true, false, false},
		{LevelInfo, true, true, true, false},
		{LevelDebug, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level)

			logger.Errorf("error message")
			logger.Warnf("warn message")
			logger.Infof("info message")
			logger.Debugf("debug message")

			output := buf.String()

			if got := strings.Contains(output, "ERROR "); got != tt.wantError {
				t.Errorf("Error logged: got %v, want %v", got, tt.wantError)
			}
			if got := strings.Contains(output, "WARN "); got != tt.wantWarn {
				t.Errorf("Warn logged: got %v, want %v", got, tt.wantWarn)
			}
			if got := strings.Contains(output, "INFO "); got != tt.wantInfo {
				t.Errorf("Info logged: got %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(output, "DEBUG "); got != tt.wantDebug {
				t.Errorf("Debug logged: got %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestDefaultLogger_Namespaces(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelInfo)

	logger.Infof(NSPopulate+"wrote %d records", 64)
	logger.Infof(NSVerify + "record 0 ok")

	output := buf.String()
	if !strings.Contains(output, "[populate] wrote 64 records") {
		t.Errorf("missing populate namespace line in %q", output)
	}
	if !strings.Contains(output, "[verify] record 0 ok") {
		t.Errorf("missing verify namespace line in %q", output)
	}
}

func TestOrDefault(t *testing.T) {
	if got := OrDefault(nil); IsNil(got) {
		t.Error("OrDefault(nil) returned a nil logger")
	}

	var typedNil *DefaultLogger
	if got := OrDefault(typedNil); IsNil(got) {
		t.Error("OrDefault(typed-nil) returned a nil logger")
	}

	want := Discard
	if got := OrDefault(want); got != want {
		t.Error("OrDefault replaced a valid logger")
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard.Errorf("e %d", 1)
	Discard.Warnf("w %d", 2)
	Discard.Infof("i %d", 3)
	Discard.Debugf("d %d", 4)
}
