package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes to all of its writers. A failing writer does not stop
// the others; errors are combined.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: append([]io.Writer{}, writers...),
	}
}

// Write returns the bytes written by the first healthy writer, so callers
// like the logger see a regular single-writer count.
func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	written := -1
	for _, w := range cw.Writers {
		wn, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		if written < 0 {
			written = wn
		}
	}
	if written < 0 {
		return 0, err
	}
	return written, err
}
