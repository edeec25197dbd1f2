package embedding

import (
	"context"
	"errors"
	"sync"

	"MarketIntel/internal/domain/service"
	applogger "MarketIntel/pkg/logger"
)

// ErrPoolClosed is returned for calls made after Close.
var ErrPoolClosed = errors.New("embedding pool closed")

type job struct {
	ctx   context.Context
	texts []string
	res   chan result
}

type result struct {
	vecs [][]float64
	err  error
}

// Pool runs embedding calls on a fixed set of workers so request goroutines
// never block on the model directly.
//
// A job whose context is done before a worker picks it up is skipped. Once
// started, a job runs to completion on a detached context; the caller may
// still stop waiting for it.
type Pool struct {
	embedder  service.Embedder
	jobs      chan job
	quit      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	logger    *applogger.Logger
}

// NewPool starts workers goroutines serving e.
func NewPool(e service.Embedder, workers, queueSize int, l *applogger.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	p := &Pool{
		embedder: e,
		jobs:     make(chan job, queueSize),
		quit:     make(chan struct{}),
		logger:   l,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Embed queues texts and waits for the vectors, the caller's context or Close.
func (p *Pool) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}
	j := job{ctx: ctx, texts: texts, res: make(chan result, 1)}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.quit:
		return nil, ErrPoolClosed
	}

	select {
	case r := <-j.res:
		return r.vecs, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.quit:
		return nil, ErrPoolClosed
	}
}

// Close stops the workers after their current job.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case j := <-p.jobs:
			if err := j.ctx.Err(); err != nil {
				j.res <- result{err: err}
				continue
			}
			vecs, err := p.embedder.Embed(context.WithoutCancel(j.ctx), j.texts)
			if err != nil && p.logger != nil {
				p.logger.Debug("embedding job failed", applogger.Int("texts", len(j.texts)), applogger.Error(err))
			}
			j.res <- result{vecs: vecs, err: err}
		}
	}
}

var _ service.Embedder = (*Pool)(nil)
