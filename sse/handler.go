package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kbukum/taskstats/logger"
)

// DefaultKeepAlive is shorter than common proxy idle timeouts (60s).
const DefaultKeepAlive = 30 * time.Second

// Options configures a stream.
type Options struct {
	// Event is the event name written for every value. Defaults to
	// EventTypeState.
	Event string
	// KeepAlive is the interval between keep-alive comments. Defaults to
	// DefaultKeepAlive.
	KeepAlive time.Duration
	Logger    *logger.Logger
}

// Serve streams every value received on events to w until events is closed
// or the request context is done.
func Serve[T any](w http.ResponseWriter, r *http.Request, clientID string, events <-chan T, opts Options) {
	if opts.Event == "" {
		opts.Event = EventTypeState
	}
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = DefaultKeepAlive
	}
	log := opts.Logger
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	log = log.WithFields(logger.Fields("client_id", clientID))

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("Streaming not supported")
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// The stream outlives the server's WriteTimeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("Could not disable write deadline", logger.Fields(logger.FieldError, err.Error()))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := WriteEvent(w, EventTypeConnected, ConnectedEvent{ClientID: clientID}); err != nil {
		log.Warn("Could not send connected event", logger.Fields(logger.FieldError, err.Error()))
		return
	}
	flusher.Flush()
	log.Debug("Client connected", logger.Fields("remote_addr", r.RemoteAddr))

	keepAlive := time.NewTicker(opts.KeepAlive)
	defer keepAlive.Stop()

	ctx := r.Context()
	sent := 0
	for {
		select {
		case <-ctx.Done():
			log.Debug("Client disconnected", logger.Fields("reason", ctx.Err().Error(), "events", sent))
			return

		case v, open := <-events:
			if !open {
				log.Debug("Stream ended", logger.Fields("events", sent))
				return
			}
			if err := WriteEvent(w, opts.Event, v); err != nil {
				log.Warn("Could not send event", logger.Fields(logger.FieldError, err.Error()))
				_ = WriteEvent(w, EventTypeError, map[string]string{"error": err.Error()})
				flusher.Flush()
				return
			}
			flusher.Flush()
			sent++

		case <-keepAlive.C:
			_, _ = fmt.Fprintf(w, ": keepalive %d\n\n", time.Now().Unix())
			flusher.Flush()
		}
	}
}

// WriteEvent writes v as one named SSE event with a JSON data line.
func WriteEvent(w io.Writer, event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	return err
}
