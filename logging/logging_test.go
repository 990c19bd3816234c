package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestLoggerConfig(t *testing.T) {
	cfg := NewLoggerConfig()
	test.That(t, cfg.Level.Level(), test.ShouldEqual, zapcore.InfoLevel)
	test.That(t, cfg.DisableStacktrace, test.ShouldBeTrue)
	test.That(t, cfg.OutputPaths, test.ShouldResemble, []string{"stderr"})
}

func TestLevels(t *testing.T) {
	test.That(t, NewLogger("info").Desugar().Core().Enabled(zapcore.DebugLevel), test.ShouldBeFalse)
	test.That(t, NewLogger("info").Desugar().Core().Enabled(zapcore.InfoLevel), test.ShouldBeTrue)
	test.That(t, NewDebugLogger("debug").Desugar().Core().Enabled(zapcore.DebugLevel), test.ShouldBeTrue)
	test.That(t, NewBlankLogger("blank").Desugar().Core().Enabled(zapcore.ErrorLevel), test.ShouldBeFalse)
}

func TestObservedTestLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("fetching", "path", "/rover/config")
	logger.Infof("battery max voltage %v", 12.0)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	entries := logs.FilterMessageSnippet("fetching").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].ContextMap()["path"], test.ShouldEqual, "/rover/config")
	test.That(t, logs.FilterMessage("battery max voltage 12").Len(), test.ShouldEqual, 1)
}
