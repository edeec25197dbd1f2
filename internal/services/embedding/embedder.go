package embedding

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"MarketIntel/internal/domain/errs"
	"MarketIntel/internal/domain/service"
	imetrics "MarketIntel/internal/service/metrics"
	"MarketIntel/pkg/config"
	applogger "MarketIntel/pkg/logger"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	warmupText = "market positioning warmup"
)

type ollamaEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type ollamaEmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

type openAIEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type openAIEmbedResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// HTTPEmbedder calls a sentence-embedding model served over HTTP.
// It is read-only after Load and safe for concurrent use.
type HTTPEmbedder struct {
	base      *HTTPServiceBase
	provider  string
	model     string
	batchSize int
	dim       int
	logger    *applogger.Logger
}

// NewHTTPEmbedder builds an embedder from config. Call Load before serving traffic.
func NewHTTPEmbedder(cfg config.EmbeddingConfig, l *applogger.Logger) (*HTTPEmbedder, error) {
	provider := strings.ToLower(cfg.Provider)
	if provider != ProviderOllama && provider != ProviderOpenAI {
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.Provider)
	}
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 64
	}
	base := NewHTTPServiceBase("embedding-"+provider, strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout, headers, BreakerSettings{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		MaxRequests:      cfg.Breaker.MaxRequests,
		Timeout:          cfg.Breaker.Timeout,
	}, l)
	return &HTTPEmbedder{
		base:      base,
		provider:  provider,
		model:     cfg.Model,
		batchSize: batch,
		logger:    l,
	}, nil
}

// Load verifies the model answers and fixes the vector dimension.
func (e *HTTPEmbedder) Load(ctx context.Context) error {
	start := time.Now()
	vecs, err := e.call(ctx, []string{warmupText})
	if err != nil {
		return fmt.Errorf("load embedding model %s: %w", e.model, err)
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return fmt.Errorf("load embedding model %s: empty warmup vector", e.model)
	}
	e.dim = len(vecs[0])
	if e.logger != nil {
		e.logger.Info("embedding model ready",
			applogger.String("provider", e.provider),
			applogger.String("model", e.model),
			applogger.Int("dimension", e.dim),
			applogger.Duration("warmup_ms", time.Since(start)),
		)
	}
	return nil
}

// Dimension is the vector length fixed by Load, or 0 before it.
func (e *HTTPEmbedder) Dimension() int { return e.dim }

// Model returns the configured model name.
func (e *HTTPEmbedder) Model() string { return e.model }

// Embed returns one vector per text. No texts means no model call.
func (e *HTTPEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}
	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := start + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		vecs, err := e.call(ctx, texts[start:end])
		if err != nil {
			return nil, errs.Wrap(errs.KindComputationFailure, "embed", err, "embedding model call failed")
		}
		if len(vecs) != end-start {
			return nil, errs.Newf(errs.KindComputationFailure, "embed", "model returned %d vectors for %d texts", len(vecs), end-start)
		}
		for i, v := range vecs {
			if e.dim > 0 && len(v) != e.dim {
				return nil, errs.Newf(errs.KindComputationFailure, "embed", "vector %d has dimension %d, model dimension is %d", start+i, len(v), e.dim)
			}
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (e *HTTPEmbedder) call(ctx context.Context, texts []string) ([][]float64, error) {
	imetrics.EmbeddingTexts.Observe(float64(len(texts)))
	vecs, err := e.post(ctx, texts)
	switch {
	case err == nil:
		imetrics.EmbeddingRequests.WithLabelValues(e.provider, "ok").Inc()
	case BreakerOpen(err):
		imetrics.EmbeddingRequests.WithLabelValues(e.provider, "rejected").Inc()
	default:
		imetrics.EmbeddingRequests.WithLabelValues(e.provider, "failure").Inc()
	}
	return vecs, err
}

func (e *HTTPEmbedder) post(ctx context.Context, texts []string) ([][]float64, error) {
	switch e.provider {
	case ProviderOpenAI:
		var resp openAIEmbedResponse
		if err := e.base.PostJSON(ctx, "/embeddings", openAIEmbedRequest{Model: e.model, Input: texts}, &resp); err != nil {
			return nil, err
		}
		sort.SliceStable(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })
		vecs := make([][]float64, len(resp.Data))
		for i, d := range resp.Data {
			vecs[i] = d.Embedding
		}
		return vecs, nil
	default:
		var resp ollamaEmbedResponse
		if err := e.base.PostJSON(ctx, "/api/embed", ollamaEmbedRequest{Model: e.model, Input: texts}, &resp); err != nil {
			return nil, err
		}
		return resp.Embeddings, nil
	}
}

var _ service.Embedder = (*HTTPEmbedder)(nil)
