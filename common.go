package linerev

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var ErrWrite error = errors.New("write to destination failed")

const (
	// DefaultChunkSize is the capacity of the read buffer filled by one
	// read call on the current source.
	DefaultChunkSize = 64 * 1024
	// DefaultLineSize caps how many bytes of a single line are held
	// before the overflow policy splits it.
	DefaultLineSize = 1024 * 1024
	// outSlack is extra output capacity beyond the line buffer so a
	// maximal line plus its delimiter always fits after a flush.
	outSlack = 32 * 1024
)

// SourceError classifies a per-source failure: which source, which
// operation ("open" or "read"), and the underlying cause. Formatting a
// user-facing message from it is the caller's business.
type SourceError struct {
	Name string
	Op   string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Source is one input to a run. Either a file path, opened read-only
// when the driver reaches it, or an already-open reader (standard
// input, or a test fixture).
type Source struct {
	name string
	path string
	rd   io.Reader
}

func FileSource(path string) Source {
	return Source{name: path, path: path}
}

func ReaderSource(name string, rd io.Reader) Source {
	return Source{name: name, rd: rd}
}

func (s Source) Name() string {
	return s.name
}

// open resolves the source to a reader. The returned closer is nil for
// reader-backed sources, whose lifetime the caller owns.
func (s Source) open() (io.Reader, io.Closer, error) {
	if s.rd != nil {
		return s.rd, nil, nil
	}

	fd, err := os.Open(s.path)
	if err != nil {
		return nil, nil, err
	}

	return fd, fd, nil
}

type Option func(*Engine)

// WithDelimiter changes the line delimiter byte from the default '\n'.
func WithDelimiter(d byte) Option {
	return func(e *Engine) {
		e.delim = d
	}
}

// WithChunkSize sets the read buffer capacity in bytes.
func WithChunkSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.chunkSize = n
		}
	}
}

// WithLineSize sets the line buffer capacity in bytes. Lines longer
// than this are split at the capacity boundary, see Engine.
func WithLineSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.lineSize = n
		}
	}
}

// OnSourceError registers a callback invoked for every recoverable
// per-source failure (open or read). The run continues with the next
// source after the callback returns.
func OnSourceError(fn func(*SourceError)) Option {
	return func(e *Engine) {
		e.onSourceErr = fn
	}
}
