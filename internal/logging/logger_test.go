package logging

import (
	"os"
	"path/filepath"
	"testing"

	"harustay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	logger, closer, err := New(config.LoggingConfig{}, config.AppConfig{Name: "harustay"})
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.Nil(t, closer)
}

func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := New(config.LoggingConfig{Output: "file", FilePath: path, Level: "debug"}, config.AppConfig{})
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer closer.Close()

	logger.Info().Msg("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNewFileOutputRequiresPath(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "file"}, config.AppConfig{})
	require.Error(t, err)
}

func TestComponent(t *testing.T) {
	logger, _, err := New(config.LoggingConfig{}, config.AppConfig{})
	require.NoError(t, err)

	child := Component(logger, "api")
	child.Info().Msg("tagged")

	nop := Component(nil, "api")
	nop.Info().Msg("ignored")
}
