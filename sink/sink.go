// Package sink implements the decoder's output side: consumers that accept
// decoded asterix.Report values one at a time, batching and writing them
// out asynchronously; the decode loop waits on a slow writer only when a
// full batch cannot yet be queued. No
// CBOR, MessagePack, or UBJSON library appears anywhere in the retrieval
// pack (see DESIGN.md), so JSON is the one concrete Sink this package
// carries.
package sink

import "github.com/davidkohl/gobelix/asterix"

// Sink is the single interface the decoder's caller writes into.
type Sink interface {
	// Accept hands one decoded report to the sink. Implementations must
	// not block the caller for longer than their configured batching
	// window allows.
	Accept(report asterix.Report) error

	// Close flushes any buffered reports and releases the sink's
	// background resources. Accept must not be called after Close.
	Close() error
}
