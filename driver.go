package linerev

import (
	"errors"
	"io"
	"os"
)

// Engine reverses the bytes of every line of its sources, preserving
// line order and delimiters. It is single-threaded and works over three
// fixed buffers (chunk, line, output), so peak memory is the sum of the
// three capacities regardless of input size.
//
// A line longer than the line buffer is split at the capacity boundary
// and each piece is reversed as a line of its own. That is the known
// limit of the fixed-buffer design; size the buffer up with
// WithLineSize when inputs carry longer lines.
type Engine struct {
	delim       byte
	chunkSize   int
	lineSize    int
	onSourceErr func(*SourceError)
}

func New(opts ...Option) *Engine {
	e := &Engine{
		delim:     '\n',
		chunkSize: DefaultChunkSize,
		lineSize:  DefaultLineSize,
	}

	for i := range opts {
		opts[i](e)
	}

	return e
}

// Run streams every source, in order, into dst. With no sources,
// standard input is the sole source. A source that fails to open or
// read is skipped, reported through OnSourceError, and the run carries
// on with the next one; a destination write failure aborts the run at
// once. The returned error is the run outcome: nil only when every
// source was fully processed and every byte written.
func (e *Engine) Run(dst io.Writer, sources ...Source) error {
	if len(sources) == 0 {
		sources = []Source{ReaderSource("standard input", os.Stdin)}
	}

	r := &run{
		e:     e,
		chunk: make([]byte, e.chunkSize),
		line:  make([]byte, 0, e.lineSize),
		out:   newOutputBuffer(dst, e.lineSize+outSlack),
	}

	var firstErr error
	for i := range sources {
		err := r.source(sources[i])
		if err == nil {
			continue
		}

		var srcErr *SourceError
		if !errors.As(err, &srcErr) {
			// write failure, fatal to the whole run
			return err
		}

		if e.onSourceErr != nil {
			e.onSourceErr(srcErr)
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	if err := r.out.flush(); err != nil {
		return err
	}

	return firstErr
}

// run holds the buffers shared by every source of one Run call. There
// is exactly one in-flight line and one in-flight output batch at any
// point, so nothing here needs locking.
type run struct {
	e     *Engine
	chunk []byte
	line  []byte
	out   *outputBuffer
}

func (r *run) source(src Source) error {
	rd, closer, err := src.open()
	if err != nil {
		return &SourceError{Name: src.Name(), Op: "open", Err: err}
	}
	if closer != nil {
		defer closer.Close()
	}

	sc := NewScanner(rd, r.chunk, r.e.delim)
	for {
		frag, terminated, err := sc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// abandon the rest of this source, including any
			// partial line already buffered
			r.line = r.line[:0]
			return &SourceError{Name: src.Name(), Op: "read", Err: err}
		}

		if err := r.accumulate(frag, terminated); err != nil {
			return err
		}
	}

	// a final line without a trailing delimiter is emitted without one
	if len(r.line) > 0 {
		return r.emit(false)
	}

	return nil
}

func (r *run) accumulate(frag []byte, terminated bool) error {
	for len(frag) > cap(r.line)-len(r.line) {
		free := cap(r.line) - len(r.line)
		r.line = append(r.line, frag[:free]...)
		frag = frag[free:]
		// overflow policy: the full buffer goes out as a line of
		// its own and accumulation restarts on the remainder
		if err := r.emit(true); err != nil {
			return err
		}
	}

	r.line = append(r.line, frag...)
	if terminated {
		return r.emit(true)
	}

	return nil
}

func (r *run) emit(terminated bool) error {
	if err := r.out.ensure(len(r.line) + 1); err != nil {
		return err
	}

	r.out.writeLine(r.line, r.e.delim, terminated)
	r.line = r.line[:0]
	return nil
}
