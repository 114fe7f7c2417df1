package log_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbrit/withdraw-commission/log"
)

func TestLogging_NoPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLogger("info", log.FormatText, buffer)

	assert.Equal(t, "level=INFO msg=test\n", getLogValueWithoutTimestamp(buffer, logger, "test"))
	assert.Equal(t, "level=INFO msg=test key=value foo=bar\n", getLogValueWithoutTimestamp(buffer, logger, "test", "key", "value", "foo", "bar"))

	logger = logger.With("key", "value", "foo", "bar")
	assert.Equal(t, "level=INFO msg=test key=value foo=bar\n", getLogValueWithoutTimestamp(buffer, logger, "test"))
}

func TestLogging_ApplyPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLogger("info", log.FormatText, buffer)

	logger = logger.ApplyPrefix("[PREFIX1]")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1] test\"\n", getLogValueWithoutTimestamp(buffer, logger, "test"))
	assert.Equal(t, "level=INFO msg=\"[PREFIX1] test\" key=value\n", getLogValueWithoutTimestamp(buffer, logger, "test", "key", "value"))

	logger = logger.With("key", "value")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1] test\" key=value\n", getLogValueWithoutTimestamp(buffer, logger, "test"))

	logger = logger.ApplyPrefix("[SECOND]")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1][SECOND] test\" key=value\n", getLogValueWithoutTimestamp(buffer, logger, "test"))
	assert.Equal(t, "level=INFO msg=\"[PREFIX1][SECOND] test\" key=value foo=bar\n", getLogValueWithoutTimestamp(buffer, logger, "test", "foo", "bar"))

	logger = logger.With("foo", "bar")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1][SECOND] test\" key=value foo=bar\n", getLogValueWithoutTimestamp(buffer, logger, "test"))
}

func TestLogging_DefaultPrefix(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLoggerWithPrefixes("info", log.FormatText, buffer, []string{"[PREFIX1]"})

	assert.Equal(t, "level=INFO msg=\"[PREFIX1] test\"\n", getLogValueWithoutTimestamp(buffer, logger, "test"))

	logger = logger.ApplyPrefix("[SECOND]")
	assert.Equal(t, "level=INFO msg=\"[PREFIX1][SECOND] test\"\n", getLogValueWithoutTimestamp(buffer, logger, "test"))
}

func TestLogging_SiblingPrefixesDoNotLeak(t *testing.T) {
	buffer := &bytes.Buffer{}
	root := log.NewLogger("info", log.FormatText, buffer)

	first := root.ApplyPrefix("[A]")
	second := root.ApplyPrefix("[B]")

	assert.Equal(t, "level=INFO msg=\"[A] test\"\n", getLogValueWithoutTimestamp(buffer, first, "test"))
	assert.Equal(t, "level=INFO msg=\"[B] test\"\n", getLogValueWithoutTimestamp(buffer, second, "test"))
	assert.Equal(t, "level=INFO msg=test\n", getLogValueWithoutTimestamp(buffer, root, "test"))
}

func TestLogging_LevelFilters(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLogger("warn", log.FormatText, buffer)

	logger.Info("hidden")
	assert.Empty(t, buffer.String())

	logger.Warn("shown")
	assert.Contains(t, buffer.String(), "msg=shown")
}

func TestLogging_UnknownLevelWarns(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLogger("verbose", log.FormatText, buffer)

	assert.Contains(t, buffer.String(), "level=WARN")
	assert.Contains(t, buffer.String(), "log_level=verbose")

	buffer.Reset()
	logger.Info("still logs at info")
	assert.Contains(t, buffer.String(), "level=INFO")
}

func TestLogging_JSONFormat(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := log.NewLogger("info", log.FormatJSON, buffer).ApplyPrefix("🔑")

	logger.Info("loaded", "address", "somm1xyz")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
	assert.Equal(t, "🔑 loaded", line["msg"])
	assert.Equal(t, "somm1xyz", line["address"])
	assert.NotContains(t, line, "_prefixKey")
}

func TestParseFormat(t *testing.T) {
	format, err := log.ParseFormat(" JSON ")
	require.NoError(t, err)
	assert.Equal(t, log.FormatJSON, format)

	_, err = log.ParseFormat("xml")
	assert.Error(t, err)
}

func getLogValueWithoutTimestamp(buffer *bytes.Buffer, logger *log.Logger, msg string, vals ...any) string {
	buffer.Reset()

	// Log, and get the output
	logger.Info(msg, vals...)
	output := buffer.String()

	// Slice timestamp to make this deterministic for tests
	firstSpace := strings.Index(output, " ")
	return output[firstSpace+1:]
}
