package engine

import (
	"context"
	"errors"
	"io/fs"
	"sync"

	"go.uber.org/zap"
)

// Engine is the native-engine contract a kind-specific opener produces: it
// serves one typed request at a time and can be closed. Per spec.md §4.2
// this is treated as an opaque object — the worker never inspects it beyond
// Serve/Close.
type Engine[Req any, Resp any] interface {
	Serve(Req) (Resp, error)
	Close() error
}

// Opener constructs an Engine[Req, Resp] from a data file path. Construction
// is the "opaque factory call" spec.md places out of scope for the core.
type Opener[Req any, Resp any] func(path string) (Engine[Req, Resp], error)

type job[Req any, Resp any] struct {
	req    Req
	respCh chan result[Resp]
}

type result[Resp any] struct {
	resp Resp
	err  error
}

// Worker is the single-threaded owner of one opened native engine for one
// (kind, language), spec.md §4.2 (Engine Worker). Requests are served
// strictly FIFO by one dedicated goroutine.
//
// Accepting new work and closing the queue are coordinated by mu+wg rather
// than a second "closed" channel: Suggest registers itself (wg.Add) while
// still holding mu and holds that registration until it returns, so once
// Shutdown has flipped accepting to false, its wg.Wait returns only after
// every Suggest call that observed accepting==true has returned. That makes
// it safe for Shutdown to close reqCh itself — no in-flight send can race a
// channel close.
type Worker[Req any, Resp any] struct {
	kind     Kind
	language string
	path     string
	logger   *zap.Logger

	mu        sync.Mutex
	accepting bool
	wg        sync.WaitGroup

	reqCh  chan job[Req, Resp]
	doneCh chan struct{}
}

// Open loads the native engine from path via opener and spawns the serving
// goroutine. queueSize bounds the request queue; a full queue yields a
// WorkerError with ReasonBusy rather than blocking the caller (spec.md §5, Backpressure —
// bounded queue chosen, see DESIGN.md).
func Open[Req any, Resp any](kind Kind, language, path string, opener Opener[Req, Resp], queueSize int, logger *zap.Logger) (*Worker[Req, Resp], error) {
	eng, err := opener(path)
	if err != nil {
		return nil, &OpenError{
			Kind:     kind,
			Language: language,
			Path:     path,
			Corrupt:  !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrPermission),
			Cause:    err,
		}
	}
	return OpenWithEngine(kind, language, path, eng, queueSize, logger), nil
}

// OpenWithEngine spawns a worker around an already-constructed engine. Used
// by kinds (grammar) whose factory must extract additional state — static
// preferences, spec.md §4.4 — from the same engine instance before it is
// handed off to the serving goroutine.
func OpenWithEngine[Req any, Resp any](kind Kind, language, path string, eng Engine[Req, Resp], queueSize int, logger *zap.Logger) *Worker[Req, Resp] {
	if queueSize <= 0 {
		queueSize = 1
	}

	w := &Worker[Req, Resp]{
		kind:      kind,
		language:  language,
		path:      path,
		logger:    logger,
		accepting: true,
		reqCh:     make(chan job[Req, Resp], queueSize),
		doneCh:    make(chan struct{}),
	}

	go w.run(eng)

	return w
}

func (w *Worker[Req, Resp]) run(eng Engine[Req, Resp]) {
	defer close(w.doneCh)
	defer eng.Close()

	// Ranging over reqCh drains every request already queued or sent before
	// Shutdown closes the channel, then exits — spec.md §5's "drain, don't
	// abort" resolution of Open Question b.
	for j := range w.reqCh {
		resp, err := eng.Serve(j.req)
		if err != nil {
			err = &WorkerError{Kind: w.kind, Language: w.language, Reason: ReasonEngineFault, Cause: err}
		}
		j.respCh <- result[Resp]{resp: resp, err: err}
	}
}

// Suggest delivers req to the serving goroutine and blocks for its
// response. It is safe to call concurrently; requests are still served
// strictly FIFO relative to each other.
func (w *Worker[Req, Resp]) Suggest(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	w.mu.Lock()
	if !w.accepting {
		w.mu.Unlock()
		return zero, &WorkerError{Kind: w.kind, Language: w.language, Reason: ReasonClosed}
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	respCh := make(chan result[Resp], 1)
	j := job[Req, Resp]{req: req, respCh: respCh}

	select {
	case w.reqCh <- j:
	default:
		return zero, &WorkerError{Kind: w.kind, Language: w.language, Reason: ReasonBusy}
	}

	select {
	case r := <-respCh:
		return r.resp, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Shutdown stops accepting new requests, waits for every Suggest call
// already in flight to return, then closes the queue so the serving
// goroutine can drain what is left in it and terminate, dropping the native engine
// last (spec.md §4.2). Safe to call more than once.
func (w *Worker[Req, Resp]) Shutdown() {
	w.mu.Lock()
	wasAccepting := w.accepting
	w.accepting = false
	w.mu.Unlock()

	if wasAccepting {
		w.wg.Wait()
		close(w.reqCh)
	}
	<-w.doneCh
}

// Path reports the file the worker was opened from.
func (w *Worker[Req, Resp]) Path() string { return w.path }

// Language reports the worker's language code.
func (w *Worker[Req, Resp]) Language() string { return w.language }
