package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://api.local", "-t", "10", "-s", "redis", "-l", "en"}, expectPanic: false,
			expected: &Config{BaseURL: "http://api.local", RequestTimeout: 10 * time.Second, StoreBackend: "redis", Locale: "en"}},
		{name: "Test2 store path", args: []string{"cmd", "-p", "/tmp/s.db", "-t", "1"}, expectPanic: false,
			expected: &Config{StorePath: "/tmp/s.db", RequestTimeout: time.Second}},
		{name: "Test3 unrelated flags ignored", args: []string{"cmd", "-x", "1", "-t", "2"}, expectPanic: false,
			expected: &Config{RequestTimeout: 2 * time.Second}},
		{name: "Test4 incorrect timeout", args: []string{"cmd", "-a", "http://api.local", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
