package snowgo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used for listener spans.
const TracerName = "github.com/obinnaokechukwu/snowgo"

// Listener defaults.
const (
	DefaultFrameSize  = 2048
	DefaultSampleRate = MockSampleRate
)

// Event is emitted when the detector reports a keyword.
type Event struct {
	SessionID string        `json:"session_id"`
	Handle    Handle        `json:"handle"`
	Mode      string        `json:"mode"`
	Keyword   int           `json:"keyword"`
	Offset    time.Duration `json:"offset"`
	Time      time.Time     `json:"time"`
}

// EventHandler receives detection events. Handlers run on the listener's
// goroutine and should return quickly.
type EventHandler func(Event)

// ListenerStats counts what a listener has processed.
type ListenerStats struct {
	Frames     int64
	Samples    int64
	Detections int64
	Errors     int64
}

// Listener feeds frames from a FrameSource into one registry handle.
type Listener struct {
	reg    *Registry
	handle Handle
	src    FrameSource

	frameSize  int
	sampleRate int
	cooldown   time.Duration
	log        *slog.Logger
	tracer     trace.Tracer

	handlersMu sync.RWMutex
	handlers   []EventHandler

	sessionID  string
	frames     atomic.Int64
	samples    atomic.Int64
	detections atomic.Int64
	errs       atomic.Int64
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithFrameSize sets the number of samples per RunDetection call.
func WithFrameSize(n int) ListenerOption {
	return func(l *Listener) {
		if n > 0 {
			l.frameSize = n
		}
	}
}

// WithSampleRate sets the sample rate used to compute event offsets.
func WithSampleRate(rate int) ListenerOption {
	return func(l *Listener) {
		if rate > 0 {
			l.sampleRate = rate
		}
	}
}

// WithCooldown suppresses events that follow the previous one by less than d
// of audio time.
func WithCooldown(d time.Duration) ListenerOption {
	return func(l *Listener) { l.cooldown = d }
}

// WithEventHandler registers a handler at construction time.
func WithEventHandler(h EventHandler) ListenerOption {
	return func(l *Listener) { l.handlers = append(l.handlers, h) }
}

// WithListenerLogger sets the listener's logger.
func WithListenerLogger(lg *slog.Logger) ListenerOption {
	return func(l *Listener) {
		if lg != nil {
			l.log = lg
		}
	}
}

// WithTracer sets the tracer for listener spans. Defaults to the global
// OpenTelemetry provider, which is a no-op unless one is installed.
func WithTracer(t trace.Tracer) ListenerOption {
	return func(l *Listener) {
		if t != nil {
			l.tracer = t
		}
	}
}

// NewListener returns a listener running h of reg over src.
func NewListener(reg *Registry, h Handle, src FrameSource, opts ...ListenerOption) *Listener {
	l := &Listener{
		reg:        reg,
		handle:     h,
		src:        src,
		frameSize:  DefaultFrameSize,
		sampleRate: DefaultSampleRate,
		log:        reg.log,
		tracer:     otel.Tracer(TracerName),
		sessionID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With("session", l.sessionID, "handle", int64(h))
	return l
}

// OnEvent registers a handler for detection events.
func (l *Listener) OnEvent(h EventHandler) {
	l.handlersMu.Lock()
	defer l.handlersMu.Unlock()
	l.handlers = append(l.handlers, h)
}

// SessionID identifies this listener in events and logs.
func (l *Listener) SessionID() string { return l.sessionID }

// Stats returns a snapshot of the counters.
func (l *Listener) Stats() ListenerStats {
	return ListenerStats{
		Frames:     l.frames.Load(),
		Samples:    l.samples.Load(),
		Detections: l.detections.Load(),
		Errors:     l.errs.Load(),
	}
}

// Run reads frames until the source is exhausted or ctx is cancelled, and
// resets the detector before returning. Exhausting the source returns nil.
//
// Cancellation is checked between frames. A source whose ReadFrame blocks
// (a microphone) delays Run's return by up to one frame after ctx is done.
func (l *Listener) Run(ctx context.Context) error {
	mode, _ := l.reg.Mode(l.handle)
	ctx, span := l.tracer.Start(ctx, "snowgo.listen",
		trace.WithAttributes(
			attribute.Int64("snowgo.handle", int64(l.handle)),
			attribute.String("snowgo.mode", mode.String()),
			attribute.String("snowgo.session", l.sessionID),
			attribute.Int("snowgo.frame_size", l.frameSize),
		),
	)
	defer span.End()
	defer l.reg.Reset(l.handle)

	l.log.Info("listening", "mode", mode.String(), "frame_size", l.frameSize, "sample_rate", l.sampleRate)

	buf := make([]int16, l.frameSize)
	var pos int64
	lastEvent := time.Duration(-1)

	for {
		if err := ctx.Err(); err != nil {
			l.finish(span)
			return err
		}

		n, err := l.src.ReadFrame(buf)
		if n > 0 {
			result := l.reg.RunDetection(l.handle, buf[:n])
			pos += int64(n)
			l.frames.Add(1)
			l.samples.Add(int64(n))

			offset := l.offset(pos)
			switch {
			case result > 0:
				if lastEvent >= 0 && offset-lastEvent < l.cooldown {
					break
				}
				lastEvent = offset
				l.emit(ctx, span, Event{
					SessionID: l.sessionID,
					Handle:    l.handle,
					Mode:      mode.String(),
					Keyword:   result,
					Offset:    offset,
					Time:      time.Now(),
				})
			case result == ResultSilence:
			case result < 0:
				l.errs.Add(1)
				l.log.Warn("detector error", "result", result, "offset", offset)
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				l.finish(span)
				return nil
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			l.finish(span)
			return fmt.Errorf("reading audio: %w", err)
		}
	}
}

func (l *Listener) offset(samples int64) time.Duration {
	return time.Duration(samples) * time.Second / time.Duration(l.sampleRate)
}

func (l *Listener) emit(ctx context.Context, span trace.Span, ev Event) {
	l.detections.Add(1)
	span.AddEvent("keyword", trace.WithAttributes(
		attribute.Int("snowgo.keyword", ev.Keyword),
		attribute.String("snowgo.offset", ev.Offset.String()),
	))
	l.log.InfoContext(ctx, "keyword detected", "keyword", ev.Keyword, "offset", ev.Offset)

	l.handlersMu.RLock()
	handlers := append([]EventHandler(nil), l.handlers...)
	l.handlersMu.RUnlock()
	for _, h := range handlers {
		h(ev)
	}
}

func (l *Listener) finish(span trace.Span) {
	st := l.Stats()
	span.SetAttributes(
		attribute.Int64("snowgo.frames", st.Frames),
		attribute.Int64("snowgo.detections", st.Detections),
		attribute.Int64("snowgo.errors", st.Errors),
	)
	l.log.Info("stopped listening", "frames", st.Frames, "detections", st.Detections, "errors", st.Errors)
}
