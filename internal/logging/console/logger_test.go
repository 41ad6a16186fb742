package console_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/logging/console"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestLoggerFormatsEntry(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})

	provider.GetLogger("portfolio.sync").Info("sync.load.ok", "type", "Projects", "count", 3)

	got := strings.TrimSpace(buf.String())
	want := "2025-06-01T12:00:00Z INFO sync.load.ok count=3 logger=portfolio.sync type=Projects"
	if got != want {
		t.Fatalf("entry = %q, want %q", got, want)
	}
}

func TestLoggerHonorsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelWarn
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock, MinLevel: &minLevel})

	logger := provider.GetLogger("portfolio")
	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "WARN kept") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestWithFieldsAccumulates(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, TimeFunc: fixedClock})

	enriched := logging.WithFields(provider.GetLogger("portfolio"), map[string]any{"component": "sync"})
	enriched.Info("tagged", "a", 1)

	got := buf.String()
	if !strings.Contains(got, "component=sync") || !strings.Contains(got, "a=1") {
		t.Fatalf("output = %q", got)
	}
}
