package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/sentiview"
	"go.uber.org/zap"
)

// Compile-time interface verification.
var _ sentiview.Analyzer = (*Analyzer)(nil)

// Analyzer wraps an Analyzer with file-based caching of successful outcomes.
// Failures are never cached. Entries are keyed by scope as well as the
// request, so outcomes from different services never mix.
type Analyzer struct {
	inner    sentiview.Analyzer
	cacheDir string
	scope    string
	logger   *zap.Logger
}

// NewAnalyzer creates a new caching analyzer. scope identifies the service
// behind inner, typically its base URL.
func NewAnalyzer(inner sentiview.Analyzer, cacheDir, scope string, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		inner:    inner,
		cacheDir: cacheDir,
		scope:    scope,
		logger:   logger,
	}
}

// cacheKey is the hashed identity of a request.
type cacheKey struct {
	Scope  string         `json:"scope"`
	Mode   sentiview.Mode `json:"mode"`
	Texts  []string       `json:"texts,omitempty"`
	Name   string         `json:"name,omitempty"`
	Column string         `json:"column,omitempty"`
	Data   []byte         `json:"data,omitempty"`
}

// cacheEntry is the stored form of a successful outcome.
type cacheEntry struct {
	Records  []sentiview.PredictionRecord `json:"records"`
	RowCount *int                         `json:"row_count,omitempty"`
}

// Submit returns a cached outcome or delegates to the inner analyzer.
func (a *Analyzer) Submit(ctx context.Context, req sentiview.Request) sentiview.Outcome {
	hash := a.hashRequest(req)

	if cached, err := a.loadFromCache(hash); err == nil {
		a.logger.Debug("cache hit", zap.String("key", hash[:12]))
		return sentiview.Success(cached.Records, cached.RowCount)
	}

	out := a.inner.Submit(ctx, req)
	if out.Failed() {
		return out
	}

	// Best-effort store
	if err := a.saveToCache(hash, cacheEntry{Records: out.Records, RowCount: out.RowCount}); err != nil {
		a.logger.Warn("cache write failed", zap.Error(err))
	}

	return out
}

func (a *Analyzer) hashRequest(req sentiview.Request) string {
	key := cacheKey{Scope: a.scope, Mode: req.Mode()}
	switch r := req.(type) {
	case sentiview.TextRequest:
		key.Texts = r.Texts
	case sentiview.FileRequest:
		key.Name = r.File.Name
		key.Column = r.TextColumn
		key.Data = r.File.Data
	}
	data, _ := json.Marshal(key)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (a *Analyzer) cachePath(hash string) string {
	return filepath.Join(a.cacheDir, hash+".json")
}

func (a *Analyzer) loadFromCache(hash string) (*cacheEntry, error) {
	data, err := os.ReadFile(a.cachePath(hash))
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (a *Analyzer) saveToCache(hash string, entry cacheEntry) error {
	if err := os.MkdirAll(a.cacheDir, 0o755); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(a.cachePath(hash), data, 0o644)
}
