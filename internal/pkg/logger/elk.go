// internal/pkg/logger/elk.go
package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

// Shipping defaults applied when the output config leaves them zero.
const (
	elkDefaultBatchSize     = 50
	elkDefaultFlushInterval = 5 * time.Second
	elkRequestTimeout       = 10 * time.Second
)

// ELKConfig holds the Elasticsearch shipping destination.
type ELKConfig struct {
	URL           string
	Index         string
	Username      string
	Password      string
	BatchSize     int
	FlushInterval time.Duration
}

// ELKHandler ships records to an Elasticsearch daily index via the bulk
// API. Records buffer until the batch fills or the flush interval fires; a
// full batch is sent inline so bursts cannot grow the buffer unbounded.
type ELKHandler struct {
	ship   *elkShipper
	level  slog.Leveler
	preset []slog.Attr
}

// elkShipper owns the buffer and the HTTP client; handler clones created by
// WithAttrs share it.
type elkShipper struct {
	client *http.Client
	config ELKConfig

	mu     sync.Mutex
	buffer []map[string]any
}

// NewELKHandler creates an Elasticsearch shipping handler and starts its
// background flusher.
func NewELKHandler(cfg ELKConfig, level slog.Leveler) *ELKHandler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = elkDefaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = elkDefaultFlushInterval
	}
	if cfg.Index == "" {
		cfg.Index = "picm-logs"
	}

	ship := &elkShipper{
		client: &http.Client{Timeout: elkRequestTimeout},
		config: cfg,
		buffer: make([]map[string]any, 0, cfg.BatchSize),
	}

	go func() {
		ticker := time.NewTicker(cfg.FlushInterval)
		defer ticker.Stop()
		for range ticker.C {
			ship.flush()
		}
	}()

	return &ELKHandler{ship: ship, level: level}
}

func (h *ELKHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ELKHandler) Handle(ctx context.Context, record slog.Record) error {
	h.ship.add(h.document(ctx, record))
	return nil
}

// document flattens one record into an Elasticsearch document.
func (h *ELKHandler) document(ctx context.Context, record slog.Record) map[string]any {
	doc := map[string]any{
		"@timestamp": record.Time.Format(time.RFC3339Nano),
		"level":      record.Level.String(),
		"message":    record.Message,
	}

	for _, a := range h.preset {
		doc[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		if err, ok := a.Value.Any().(error); ok {
			doc[a.Key] = err.Error()
		} else {
			doc[a.Key] = a.Value.Any()
		}
		return true
	})

	for _, key := range contextKeys() {
		if val := ctx.Value(key); val != nil {
			doc[string(key)] = val
		}
	}

	return doc
}

func (h *ELKHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.preset...), attrs...)
	return &ELKHandler{ship: h.ship, level: h.level, preset: merged}
}

func (h *ELKHandler) WithGroup(string) slog.Handler {
	return h
}

func (s *elkShipper) add(doc map[string]any) {
	s.mu.Lock()
	s.buffer = append(s.buffer, doc)
	full := len(s.buffer) >= s.config.BatchSize
	s.mu.Unlock()

	if full {
		s.flush()
	}
}

func (s *elkShipper) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	docs := s.buffer
	s.buffer = make([]map[string]any, 0, s.config.BatchSize)
	s.mu.Unlock()

	s.sendBulk(docs)
}

// sendBulk posts one NDJSON bulk request. Shipping failures go to stderr;
// they must never recurse into the logger.
func (s *elkShipper) sendBulk(docs []map[string]any) {
	index := fmt.Sprintf("%s-%s", s.config.Index, time.Now().UTC().Format("2006.01.02"))

	var body bytes.Buffer
	for _, doc := range docs {
		action, _ := json.Marshal(map[string]any{"index": map[string]string{"_index": index}})
		body.Write(action)
		body.WriteByte('\n')

		source, err := json.Marshal(doc)
		if err != nil {
			continue
		}
		body.Write(source)
		body.WriteByte('\n')
	}

	req, err := http.NewRequest(http.MethodPost, s.config.URL+"/_bulk", &body)
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/x-ndjson")
	if s.config.Username != "" {
		req.SetBasicAuth(s.config.Username, s.config.Password)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log shipping to elasticsearch failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		fmt.Fprintf(os.Stderr, "elasticsearch bulk insert returned %d\n", resp.StatusCode)
	}
}
