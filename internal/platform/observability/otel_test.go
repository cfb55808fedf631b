package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutExporter(t *testing.T) {
	var buf bytes.Buffer
	instruments, shutdown, err := Init(context.Background(), Options{ServiceName: "pizza-test", Exporter: ExporterNone, LogOutput: &buf, LogLevel: "debug"})
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(context.Background())) }()

	instruments.Logger.Debug("ready")
	assert.Contains(t, buf.String(), `"msg":"ready"`)

	_, span := instruments.Tracer("test").Start(context.Background(), "noop")
	span.End()
	assert.NotNil(t, instruments.Meter("test"))
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("chatty", &buf)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
