package logger

import (
	"context"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
	"github.com/DataDog/datadog-api-client-go/v2/api/datadogV2"
)

const (
	dataDogSource               = "go"
	dataDogSubmitLog            = "v2.LogsApi.SubmitLog"
	dataDogDefaultTimeout       = 5 * time.Second
	dataDogDefaultBufferSize    = 4096
	dataDogDefaultBatchSize     = 100
	dataDogDefaultFlushInterval = 2 * time.Second
)

// DataDogWriter ships log lines to the datadog logs intake. Write only
// queues the event; a background goroutine submits the queue in batches.
// Events arriving while the queue is full are dropped and counted.
type DataDogWriter struct {
	api     *datadogV2.LogsApi
	ctx     context.Context //nolint:containedctx
	service string
	tags    string
	host    string
	timeout time.Duration

	batchSize     int
	flushInterval time.Duration

	events    chan datadogV2.HTTPLogItem
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	dropped   atomic.Uint64
}

// NewDataDogWriter returns a writer submitting to the site of cfg and starts
// its sender. The service name falls back to fallbackService.
func NewDataDogWriter(cfg DataDog, fallbackService string) (*DataDogWriter, error) {
	if cfg.APIKey == "" {
		return nil, ErrDataDogAPIKeyIsEmpty
	}

	conf := datadog.NewConfiguration()
	conf.HTTPClient = &http.Client{Timeout: orDuration(cfg.Timeout, dataDogDefaultTimeout)}

	if len(cfg.Servers) > 0 {
		conf.Servers = cfg.Servers
		// SubmitLog has its own intake servers which win over conf.Servers
		conf.OperationServers[dataDogSubmitLog] = cfg.Servers
	}

	ctx := context.WithValue(context.Background(), datadog.ContextAPIKeys, map[string]datadog.APIKey{
		"apiKeyAuth": {Key: cfg.APIKey},
	})

	if cfg.Site != "" && len(cfg.Servers) == 0 {
		ctx = context.WithValue(ctx, datadog.ContextServerVariables, map[string]string{"site": cfg.Site})
	}

	service := cfg.ServiceName
	if service == "" {
		service = fallbackService
	}

	host, _ := os.Hostname()

	w := &DataDogWriter{
		api:           datadogV2.NewLogsApi(datadog.NewAPIClient(conf)),
		ctx:           ctx,
		service:       service,
		tags:          cfg.Tags,
		host:          host,
		timeout:       orDuration(cfg.Timeout, dataDogDefaultTimeout),
		batchSize:     orInt(cfg.BatchSize, dataDogDefaultBatchSize),
		flushInterval: orDuration(cfg.FlushInterval, dataDogDefaultFlushInterval),
		events:        make(chan datadogV2.HTTPLogItem, orInt(cfg.BufferSize, dataDogDefaultBufferSize)),
		done:          make(chan struct{}),
	}

	go w.run()

	return w, nil
}

// Write queues p as one log item and never blocks on the network.
// zerolog hands over one JSON event per call and reuses p afterwards.
func (w *DataDogWriter) Write(p []byte) (int, error) {
	item := datadogV2.HTTPLogItem{
		Message:  strings.TrimRight(string(p), "\n"),
		Ddsource: datadog.PtrString(dataDogSource),
		Service:  datadog.PtrString(w.service),
	}

	if w.tags != "" {
		item.Ddtags = datadog.PtrString(w.tags)
	}

	if w.host != "" {
		item.Hostname = datadog.PtrString(w.host)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.dropped.Add(1)
		return len(p), nil
	}

	select {
	case w.events <- item:
	default:
		w.dropped.Add(1)
	}

	return len(p), nil
}

// Dropped returns how many events were discarded because the queue was full
// or the writer was closed.
func (w *DataDogWriter) Dropped() uint64 {
	return w.dropped.Load()
}

// Close stops accepting events, submits what is queued and waits for the
// sender to finish.
func (w *DataDogWriter) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.events)
		w.mu.Unlock()
	})

	<-w.done

	return nil
}

func (w *DataDogWriter) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	batch := make([]datadogV2.HTTPLogItem, 0, w.batchSize)

	for {
		select {
		case item, ok := <-w.events:
			if !ok {
				w.submit(batch)
				return
			}

			batch = append(batch, item)
			if len(batch) >= w.batchSize {
				w.submit(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			w.submit(batch)
			batch = batch[:0]
		}
	}
}

// submit sends one batch. Failures go to the zerolog error handler, logging
// them would queue them right back here.
func (w *DataDogWriter) submit(batch []datadogV2.HTTPLogItem) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(w.ctx, w.timeout)
	defer cancel()

	if _, _, err := w.api.SubmitLog(ctx, batch); err != nil {
		ErrorHandler(err)
	}
}

func orDuration(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}

	return fallback
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}

	return fallback
}
