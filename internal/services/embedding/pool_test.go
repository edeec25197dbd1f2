package embedding

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeEmbedder struct {
	calls   int32
	started chan struct{}
	release chan struct{}
	done    chan error
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{float64(i + 1)}
	}
	if f.done != nil {
		f.done <- ctx.Err()
	}
	return out, nil
}

func TestPoolEmbed(t *testing.T) {
	f := &fakeEmbedder{}
	p := NewPool(f, 2, 4, nil)
	defer p.Close()

	vecs, err := p.Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(vecs) != 2 || vecs[1][0] != 2 {
		t.Fatalf("unexpected vectors %v", vecs)
	}
}

func TestPoolEmptyInput(t *testing.T) {
	f := &fakeEmbedder{}
	p := NewPool(f, 1, 1, nil)
	defer p.Close()

	vecs, err := p.Embed(context.Background(), []string{})
	if err != nil || len(vecs) != 0 {
		t.Fatalf("unexpected %v %v", vecs, err)
	}
	if atomic.LoadInt32(&f.calls) != 0 {
		t.Fatalf("embedder must not be called")
	}
}

func TestPoolSkipsCancelledJob(t *testing.T) {
	f := &fakeEmbedder{}
	p := NewPool(f, 1, 1, nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Embed(ctx, []string{"a"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if atomic.LoadInt32(&f.calls) != 0 {
		t.Fatalf("cancelled job must not reach the embedder")
	}
}

func TestPoolStartedJobRunsToCompletion(t *testing.T) {
	f := &fakeEmbedder{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		done:    make(chan error, 1),
	}
	p := NewPool(f, 1, 1, nil)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := p.Embed(ctx, []string{"a"})
		errCh <- err
	}()

	<-f.started
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("caller should stop waiting with context.Canceled, got %v", err)
	}
	close(f.release)

	select {
	case jobErr := <-f.done:
		if jobErr != nil {
			t.Fatalf("started job should see a live context, got %v", jobErr)
		}
	case <-time.After(time.Second):
		t.Fatalf("started job did not finish")
	}
}

func TestPoolClosed(t *testing.T) {
	p := NewPool(&fakeEmbedder{}, 1, 0, nil)
	p.Close()
	p.Close()
	if _, err := p.Embed(context.Background(), []string{"a"}); !errors.Is(err, ErrPoolClosed) {
		t.Fatalf("expected ErrPoolClosed, got %v", err)
	}
}
