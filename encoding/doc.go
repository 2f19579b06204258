// encoding/doc.go
package encoding

/*
Package encoding provides a reusable buffer pool for high-volume ASTERIX
processing. The decoder and the framers in this module do not draw
buffers from it.

Main components:
  - BufferPool: reusable memory pool to reduce GC pressure
*/
