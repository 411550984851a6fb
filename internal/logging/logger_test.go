package logging

import "testing"

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud", OutputPaths: []string{"stderr"}}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_Levels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		l, err := New(Config{Level: lvl, OutputPaths: []string{"stderr"}})
		if err != nil {
			t.Fatalf("level %s: %v", lvl, err)
		}
		if l.Logger == nil {
			t.Fatalf("level %s: nil zap logger", lvl)
		}
	}
}

func TestFallbacks(t *testing.T) {
	if NewDefault().Logger == nil {
		t.Error("NewDefault returned nil zap logger")
	}
	if NewDevelopment().Logger == nil {
		t.Error("NewDevelopment returned nil zap logger")
	}
	Nop().Info("discarded")
}
