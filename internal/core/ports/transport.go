package ports

import (
	"context"
	"io"
)

// ProgressFunc reports transfer progress. total is -1 when the remote does
// not announce a length. It is invoked at a bounded frequency proportional
// to bytes transferred and at least once at completion.
type ProgressFunc func(read, total int64)

// Transport moves bytes for a URL into a sink. It is a mechanical byte mover:
// a single failure surfaces as an error and retry policy stays with the caller.
//
//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	// Fetch streams the body of url into sink, reporting progress if
	// onProgress is non-nil.
	Fetch(ctx context.Context, url string, sink io.Writer, onProgress ProgressFunc) error

	// FetchBytes downloads a small payload into memory.
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
