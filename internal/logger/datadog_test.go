package logger_test

import (
	"compress/gzip"
	"compress/zlib"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger"
)

// intake is a fake datadog logs endpoint that holds every request until
// released.
type intake struct {
	*httptest.Server

	mu       sync.Mutex
	messages []string
	requests chan struct{}
	release  chan struct{}
}

func newIntake(t *testing.T) *intake {
	t.Helper()

	in := &intake{
		requests: make(chan struct{}, 16),
		release:  make(chan struct{}),
	}

	in.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body io.Reader = r.Body

		switch r.Header.Get("Content-Encoding") {
		case "gzip":
			zr, err := gzip.NewReader(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			body = zr
		case "deflate":
			zr, err := zlib.NewReader(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			body = zr
		}

		var items []map[string]any
		if err := json.NewDecoder(body).Decode(&items); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		in.mu.Lock()
		for _, item := range items {
			msg, _ := item["message"].(string)
			in.messages = append(in.messages, msg)
		}
		in.mu.Unlock()

		in.requests <- struct{}{}
		<-in.release

		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("{}"))
	}))

	t.Cleanup(in.Close)

	return in
}

func (in *intake) received() []string {
	in.mu.Lock()
	defer in.mu.Unlock()

	return append([]string(nil), in.messages...)
}

func dataDogConfig(in *intake) logger.DataDog {
	return logger.DataDog{
		Enabled:       true,
		APIKey:        "test",
		Servers:       datadog.ServerConfigurations{{URL: in.URL}},
		Timeout:       10 * time.Second,
		FlushInterval: time.Hour,
	}
}

func TestDataDogWriterDoesNotBlock(t *testing.T) {
	in := newIntake(t)

	cfg := dataDogConfig(in)
	cfg.BatchSize = 2

	w, err := logger.NewDataDogWriter(cfg, "recipes")
	require.NoError(t, err)

	start := time.Now()

	for _, msg := range []string{`{"n":1}`, `{"n":2}`, `{"n":3}`} {
		n, err := w.Write([]byte(msg + "\n"))
		require.NoError(t, err)
		assert.Equal(t, len(msg)+1, n)
	}

	// the first batch is now held by the intake
	select {
	case <-in.requests:
	case <-time.After(5 * time.Second):
		t.Fatal("first batch was not submitted")
	}

	assert.Less(t, time.Since(start), 5*time.Second)

	close(in.release)
	require.NoError(t, w.Close())

	assert.ElementsMatch(t, []string{`{"n":1}`, `{"n":2}`, `{"n":3}`}, in.received())
	assert.Zero(t, w.Dropped())
}

func TestDataDogWriterDropsWhenFull(t *testing.T) {
	in := newIntake(t)

	cfg := dataDogConfig(in)
	cfg.BatchSize = 1
	cfg.BufferSize = 1

	w, err := logger.NewDataDogWriter(cfg, "recipes")
	require.NoError(t, err)

	_, err = w.Write([]byte("first"))
	require.NoError(t, err)

	select {
	case <-in.requests:
	case <-time.After(5 * time.Second):
		t.Fatal("first event was not submitted")
	}

	// sender is busy: one event fits the queue, the next is dropped
	_, err = w.Write([]byte("second"))
	require.NoError(t, err)
	_, err = w.Write([]byte("third"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1), w.Dropped())

	close(in.release)
	require.NoError(t, w.Close())

	assert.Equal(t, []string{"first", "second"}, in.received())

	// closed writers accept and discard
	_, err = w.Write([]byte("late"))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), w.Dropped())
}

func TestDataDogWriterFlushesOnClose(t *testing.T) {
	in := newIntake(t)
	close(in.release)

	w, err := logger.NewDataDogWriter(dataDogConfig(in), "recipes")
	require.NoError(t, err)

	_, err = w.Write([]byte("pending"))
	require.NoError(t, err)

	// batch size and interval are not reached, only Close sends it
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	assert.Equal(t, []string{"pending"}, in.received())
}
