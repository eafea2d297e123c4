package device

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rook-computer/panels/internal/assets"
)

// Web serves the most recent frame over HTTP:
//
//	/           a page that polls the frame
//	/frame.png  the latest frame
//	/healthz    liveness
//	/api/v1/    JSON about the display
type Web struct {
	emulator
	Addr string

	frameMu sync.RWMutex
	frame   []byte
	seq     int

	mu      sync.Mutex
	srv     *http.Server
	ln      net.Listener
	stopped bool
}

func NewWeb(cfg Config, ecfg EmulatorConfig, addr string) (*Web, error) {
	e, err := newEmulator("web", cfg, ecfg)
	if err != nil {
		return nil, err
	}
	if addr == "" {
		addr = ":8080"
	}
	return &Web{emulator: e, Addr: addr}, nil
}

// Start listens on Addr and serves until ctx is done or Close is called.
func (w *Web) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return errors.New("web: already stopped")
	}
	if w.srv != nil {
		return nil
	}

	w.srv = &http.Server{
		Addr:              w.Addr,
		Handler:           w.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", w.Addr)
	if err != nil {
		w.srv = nil
		return fmt.Errorf("web: listen %s: %w", w.Addr, err)
	}
	w.ln = ln
	w.logger.Infof("web", "serving frames on http://%s/", ln.Addr())

	go func() {
		<-ctx.Done()
		_ = w.stop()
	}()

	srv := w.srv
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		w.logger.Errorf("web", "serve: %v", err)
	}()
	return nil
}

// ListenAddr returns the bound address once started.
func (w *Web) ListenAddr() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ln == nil {
		return w.Addr
	}
	return w.ln.Addr().String()
}

func (w *Web) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", w.handleIndex)
	mux.HandleFunc("/frame.png", w.handleFrame)
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", w.apiV1Router()))
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = rw.Write([]byte("ok\n"))
	})
	return mux
}

func (w *Web) handleIndex(rw http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(rw, r)
		return
	}
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = rw.Write(assets.WebIndex)
}

func (w *Web) handleFrame(rw http.ResponseWriter, r *http.Request) {
	w.frameMu.RLock()
	frame, seq := w.frame, w.seq
	w.frameMu.RUnlock()
	if frame == nil {
		http.Error(rw, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	rw.Header().Set("Content-Type", "image/png")
	rw.Header().Set("Cache-Control", "no-store")
	rw.Header().Set("X-Frame-Seq", strconv.Itoa(seq))
	_, _ = rw.Write(frame)
}

func (w *Web) Display(img image.Image) error {
	frame, err := w.render(img)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		return fmt.Errorf("web: encode: %w", err)
	}
	w.frameMu.Lock()
	w.frame = buf.Bytes()
	w.seq++
	w.frameMu.Unlock()
	return nil
}

func (w *Web) Clear() error { return w.Display(w.blank()) }

func (w *Web) Close() error {
	w.closed = true
	return w.stop()
}

func (w *Web) stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	srv, ln := w.srv, w.ln
	w.srv, w.ln = nil, nil
	w.mu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
