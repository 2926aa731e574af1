package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		require.NoError(t, loadDotenv(filepath.Join(dir, "missing.env")))
	})

	t.Run("loads values", func(t *testing.T) {
		path := filepath.Join(dir, "ok.env")
		require.NoError(t, os.WriteFile(path, []byte("POLIS_TEST_DOTENV=42\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("POLIS_TEST_DOTENV") })

		require.NoError(t, loadDotenv(path))
		require.Equal(t, "42", os.Getenv("POLIS_TEST_DOTENV"))
	})

	t.Run("unreadable file", func(t *testing.T) {
		require.Error(t, loadDotenv(dir))
	})
}

func TestGetenvUint(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  uint64
	}{
		{name: "unset", value: "", want: 7},
		{name: "number", value: " 12 ", want: 12},
		{name: "negative", value: "-3", want: 7},
		{name: "garbage", value: "seed", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POLIS_TEST_SEED", tt.value)
			require.Equal(t, tt.want, getenvUint("POLIS_TEST_SEED", 7))
		})
	}
}
