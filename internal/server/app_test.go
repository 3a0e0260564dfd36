package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/fishfarmer/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.HTTPAddr = "127.0.0.1:0"
	c.DataDir = t.TempDir()
	c.FrontendDir = t.TempDir()
	c.BcryptCost = 4
	c.LogLevel = "error"
	return c
}

func TestNewApp_UnknownBackend(t *testing.T) {
	c := testConfig(t)
	c.StorageBackend = "mongo"

	_, err := NewApp(context.Background(), c, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestNewApp_BadLogLevel(t *testing.T) {
	c := testConfig(t)
	c.LogLevel = "loud"

	_, err := NewApp(context.Background(), c, io.Discard)
	require.Error(t, err)
}

func TestApp_RunServesAndStops(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(c.FrontendDir, "1Home.html"), []byte("home"), 0o644))

	var logs bytes.Buffer
	app, err := NewApp(context.Background(), c, &logs)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool { return app.server.ListenerAddr() != nil }, 5*time.Second, 10*time.Millisecond)
	base := "http://" + app.server.ListenerAddr().String()

	resp, err := http.Get(base + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "home", string(body))

	raw, _ := json.Marshal(map[string]string{"username": "alice", "email": "a@example.com", "password": "pw"})
	resp, err = http.Post(base+"/register", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Advisor is disabled without an API key.
	raw, _ = json.Marshal(map[string]any{"messages": []map[string]string{{"role": "user", "content": "hi"}}})
	resp, err = http.Post(base+"/geminiCall", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop")
	}

	data, err := os.ReadFile(c.UsersPath())
	require.NoError(t, err)
	var stored []map[string]string
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "alice", stored[0]["username"])
	assert.NotEqual(t, "pw", stored[0]["password"])
}
