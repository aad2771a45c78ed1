// Package mock provides test doubles for sentiview interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/sentiview"
)

// Compile-time interface verification.
var (
	_ sentiview.Analyzer   = (*Analyzer)(nil)
	_ sentiview.Clipboard  = (*Clipboard)(nil)
	_ sentiview.BlobLoader = (*BlobLoader)(nil)
	_ sentiview.RunSaver   = (*RunSaver)(nil)
	_ sentiview.RunLoader  = (*RunLoader)(nil)
)

// Analyzer is a mock implementation of sentiview.Analyzer.
type Analyzer struct {
	SubmitFn func(ctx context.Context, req sentiview.Request) sentiview.Outcome
}

func (a *Analyzer) Submit(ctx context.Context, req sentiview.Request) sentiview.Outcome {
	return a.SubmitFn(ctx, req)
}

// Clipboard is a mock implementation of sentiview.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// BlobLoader is a mock implementation of sentiview.BlobLoader.
type BlobLoader struct {
	LoadFn func(path string) (*sentiview.Blob, error)
}

func (l *BlobLoader) Load(path string) (*sentiview.Blob, error) {
	return l.LoadFn(path)
}

// RunSaver is a mock implementation of sentiview.RunSaver.
type RunSaver struct {
	SaveFn func(path string, run sentiview.Run) error
}

func (s *RunSaver) Save(path string, run sentiview.Run) error {
	return s.SaveFn(path, run)
}

// RunLoader is a mock implementation of sentiview.RunLoader.
type RunLoader struct {
	LoadFn func(path string) ([]sentiview.Run, error)
}

func (l *RunLoader) Load(path string) ([]sentiview.Run, error) {
	return l.LoadFn(path)
}
