package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/davidkohl/gobelix/asterix"
)

// defaultBatchSize bounds how many reports JSON buffers before handing a
// batch to its background writer.
const defaultBatchSize = 256

// JSON is the one concrete Sink this rewrite carries (spec.md §5): Accept
// pushes completed reports into a bounded batch and returns immediately;
// a single background goroutine marshals and writes full batches while the
// caller keeps decoding. The original's spin-wait backpressure becomes a
// blocking channel send, Go's idiomatic equivalent of "don't block the
// producer for the common case, but never drop a record."
type JSON struct {
	w         io.Writer
	batchSize int

	mu      sync.Mutex
	pending []asterix.Report

	batches chan []asterix.Report
	done    chan struct{}
	werr    error
}

// NewJSON returns a JSON sink writing newline-delimited JSON objects to w.
// batchSize <= 0 uses defaultBatchSize.
func NewJSON(w io.Writer, batchSize int) *JSON {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	j := &JSON{
		w:         w,
		batchSize: batchSize,
		pending:   make([]asterix.Report, 0, batchSize),
		batches:   make(chan []asterix.Report, 1),
		done:      make(chan struct{}),
	}
	go j.run()
	return j
}

func (j *JSON) run() {
	defer close(j.done)
	enc := json.NewEncoder(j.w)
	for batch := range j.batches {
		for _, r := range batch {
			if err := enc.Encode(r); err != nil {
				j.mu.Lock()
				if j.werr == nil {
					j.werr = err
				}
				j.mu.Unlock()
			}
		}
	}
}

// Accept buffers report and, once the batch fills, blocks until the prior
// batch has been handed to the writer.
func (j *JSON) Accept(report asterix.Report) error {
	j.mu.Lock()
	if j.werr != nil {
		err := j.werr
		j.mu.Unlock()
		return err
	}
	j.pending = append(j.pending, report)
	full := len(j.pending) >= j.batchSize
	var batch []asterix.Report
	if full {
		batch = j.pending
		j.pending = make([]asterix.Report, 0, j.batchSize)
	}
	j.mu.Unlock()

	if full {
		j.batches <- batch
	}
	return nil
}

// Close flushes any buffered reports, stops the background writer, and
// returns the first encoding error encountered, if any.
func (j *JSON) Close() error {
	j.mu.Lock()
	remaining := j.pending
	j.pending = nil
	j.mu.Unlock()

	if len(remaining) > 0 {
		j.batches <- remaining
	}
	close(j.batches)
	<-j.done

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.werr != nil {
		return fmt.Errorf("sink/json: %w", j.werr)
	}
	return nil
}
