// internal/pkg/logger/logger_test.go
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheimsito/picm-server/internal/pkg/logger"
)

func TestLogger_ShipsToElasticsearch(t *testing.T) {
	received := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/_bulk", r.URL.Path)
		assert.Equal(t, "application/x-ndjson", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received <- string(body)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	l := logger.NewLogger(&logger.LogConfig{
		Level:  "info",
		Format: "json",
		Output: "file:" + filepath.Join(t.TempDir(), "primary.log"),
		Outputs: []logger.OutputConfig{
			{
				Type:  "elasticsearch",
				Level: "info",
				ELK: logger.ELKConfig{
					URL:       server.URL,
					Index:     "picm-test",
					BatchSize: 1, // flush on every record
				},
			},
		},
	})

	l.Info("stock adjusted", slog.String("product", "Agua pura 600ml"))

	select {
	case body := <-received:
		lines := strings.Split(strings.TrimSpace(body), "\n")
		require.Len(t, lines, 2) // action line plus document

		var action map[string]map[string]string
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &action))
		assert.Contains(t, action["index"]["_index"], "picm-test-")

		var doc map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &doc))
		assert.Equal(t, "stock adjusted", doc["message"])
		assert.Equal(t, "INFO", doc["level"])
		assert.Equal(t, "Agua pura 600ml", doc["product"])
		assert.NotEmpty(t, doc["@timestamp"])
	case <-time.After(2 * time.Second):
		t.Fatal("no bulk request reached the elasticsearch stub")
	}
}

func TestLogger_ElasticsearchRespectsLevel(t *testing.T) {
	requests := make(chan struct{}, 8)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- struct{}{}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	l := logger.NewLogger(&logger.LogConfig{
		Level:  "debug",
		Format: "json",
		Output: "file:" + filepath.Join(t.TempDir(), "primary.log"),
		Outputs: []logger.OutputConfig{
			{
				Type:  "elasticsearch",
				Level: "error",
				ELK:   logger.ELKConfig{URL: server.URL, BatchSize: 1},
			},
		},
	})

	l.Info("below the shipping threshold")

	select {
	case <-requests:
		t.Fatal("info record should not have shipped")
	case <-time.After(200 * time.Millisecond):
	}

	l.Error("boom")

	select {
	case <-requests:
	case <-time.After(2 * time.Second):
		t.Fatal("error record never shipped")
	}
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l := logger.NewLogger(&logger.LogConfig{
		Level:  "info",
		Format: "json",
		Output: "file:" + filepath.Join(t.TempDir(), "primary.log"),
		Outputs: []logger.OutputConfig{
			{Type: "file", Level: "info", File: path},
		},
	})

	l.Info("movement recorded", slog.Int("quantity", 12))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "movement recorded", entry["msg"])
	assert.Equal(t, float64(12), entry["quantity"])
}

func TestSanitizationHandler_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	handler := logger.NewSanitizationHandler(slog.NewJSONHandler(&buf, nil))
	l := slog.New(handler)

	l.Info("login attempt",
		slog.String("username", "mperez"),
		slog.String("password", "hunter2"),
		slog.String("note", "token=abc123 sent"))

	out := buf.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "abc123")
	assert.Contains(t, out, "***REDACTED***")
	assert.Contains(t, out, "mperez")
}

func TestContextHandler_CopiesRequestValues(t *testing.T) {
	var buf bytes.Buffer
	handler := logger.NewContextHandler(slog.NewJSONHandler(&buf, nil))
	l := slog.New(handler)

	ctx := context.WithValue(context.Background(), logger.ContextKeyRequestID, "req-42")
	ctx = context.WithValue(ctx, logger.ContextKeyMethod, "GET")

	l.InfoContext(ctx, "handled")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "GET", entry["method"])
}
