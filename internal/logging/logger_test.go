package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLevels(t *testing.T) {
	require.NoError(t, Init("debug", "development"))
	assert.True(t, Get().Desugar().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("warn", "production"))
	assert.False(t, Get().Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Get().Desugar().Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, Init("nonsense", "production"))
	assert.True(t, Get().Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Get().Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestHelpersWriteToGlobal(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Set(zap.New(core))

	Infof("fetched %d posts", 3)
	Warnf("cache miss for %s", "TSLA")
	Debugf("hidden")
	With("ticker", "GME").Errorf("boom")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "fetched 3 posts", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "GME", entries[2].ContextMap()["ticker"])
}
