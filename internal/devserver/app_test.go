package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig(t *testing.T) {
	t.Setenv("DEVBACKEND_ADDR", "127.0.0.1:0")
	t.Setenv("DEVBACKEND_TOKEN_TTL", "5m")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:0", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "dev-secret", cfg.Secret)
	assert.Equal(t, "zap", cfg.LogBackend)
}

func TestLoadAppConfig_BadTTL(t *testing.T) {
	t.Setenv("DEVBACKEND_TOKEN_TTL", "forever")

	_, err := LoadAppConfig()
	require.Error(t, err)
}

func TestNewApp_SeedUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		app, err := NewApp(&AppConfig{LogBackend: "slog", LogLevel: "error", Secret: "s", SeedUser: "alice:pw:alice@example.org"})
		require.NoError(t, err)
		_, err = app.server.users.authenticate("alice", "pw")
		require.NoError(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := NewApp(&AppConfig{LogBackend: "slog", LogLevel: "error", SeedUser: "alice"})
		require.Error(t, err)
	})

	t.Run("bad log backend", func(t *testing.T) {
		_, err := NewApp(&AppConfig{LogBackend: "nope"})
		require.Error(t, err)
	})
}

func TestApp_ServeAndStop(t *testing.T) {
	app, err := NewApp(&AppConfig{LogBackend: "slog", LogLevel: "error", Secret: "s", SeedUser: "alice:pw:alice@example.org"})
	require.NoError(t, err)

	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, listen) }()

	body, _ := json.Marshal(map[string]string{"userName": "alice", "password": "pw"})
	resp, err := http.Post("http://"+listen.Addr().String()+"/Auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	assert.Equal(t, statusSuccess, env.Status)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
