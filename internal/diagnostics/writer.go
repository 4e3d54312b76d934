// Package diagnostics persists the per-column DebugRecord stream described
// in §6 to a gzip-compressed JSON Lines file, the way internal/storage
// persists save state: jsoniter for marshaling, gzip for the file format.
package diagnostics

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"scorefollow/internal/matcher"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// flusher is satisfied by *gzip.Writer; NewWriter's plain io.Writer case
// has nothing to flush.
type flusher interface {
	Flush() error
}

// Writer implements matcher.DebugSink, appending one JSON object per line
// for every DebugRecord emitted. Close flushes and releases any
// underlying file resources.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	count  int
}

// NewWriter wraps an arbitrary io.Writer (e.g. for tests, or a pipe to a
// downstream process). The caller owns closing w if it needs closing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: w}
}

// NewFileWriter opens (creating or truncating) a gzip-compressed JSON
// Lines file at path.
func NewFileWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: creating %s: %w", path, err)
	}
	gz := gzip.NewWriter(f)
	return &Writer{
		out:    gz,
		closer: multiCloser{gz.Close, f.Close},
	}, nil
}

// Emit writes one DebugRecord as a JSON line (§6 schema).
func (w *Writer) Emit(rec matcher.DebugRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		log.Printf("[DIAGNOSTICS] error marshaling record kind=%s: %v", rec.Kind, err)
		return
	}
	if _, err := w.out.Write(append(data, '\n')); err != nil {
		log.Printf("[DIAGNOSTICS] error writing record kind=%s: %v", rec.Kind, err)
		return
	}
	w.count++
	if fl, ok := w.out.(flusher); ok {
		if err := fl.Flush(); err != nil {
			log.Printf("[DIAGNOSTICS] error flushing after kind=%s: %v", rec.Kind, err)
		}
	}
}

// Count reports how many records have been written so far.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes and releases any underlying file resources opened by
// NewFileWriter; it is a no-op for writers built with NewWriter.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	log.Printf("[DIAGNOSTICS] closed after %d records", w.count)
	return err
}

// multiCloser runs each close func in order, returning the first error.
type multiCloser []func() error

func (m multiCloser) Close() error {
	var firstErr error
	for _, fn := range m {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
