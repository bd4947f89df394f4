package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	file := filepath.Join(t.TempDir(), "folio.log")
	log := New("debug", file)
	require.Equal(t, zerolog.DebugLevel, log.GetLevel())

	log.Info().Str("component", "test").Msg("hello")
	b, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(b), `"message":"hello"`)

	require.Equal(t, zerolog.InfoLevel, New("nonsense", "").GetLevel())
}
