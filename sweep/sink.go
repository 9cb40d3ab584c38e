package sweep

import (
	"context"
	"fmt"
	"io"

	"github.com/weiihann/sortbench/harness"
)

// Sink receives every result record as soon as it is produced.
type Sink interface {
	Record(ctx context.Context, r harness.Result) error
}

// LineSink writes RESULT lines to a writer.
type LineSink struct {
	w io.Writer
}

// NewLineSink returns a sink writing records to w.
func NewLineSink(w io.Writer) *LineSink {
	return &LineSink{w: w}
}

func (s *LineSink) Record(_ context.Context, r harness.Result) error {
	if _, err := io.WriteString(s.w, r.Line()); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	return nil
}
