// Package buffer provides the byte-buffer value type mapped outputs are
// commonly shaped as before being handed to a sink.
package buffer

// Bytes is an immutable byte buffer produced by a Mapper and consumed by a
// Reducer. Grounded on original_source's SimpleBuffer<T>, generalized to a
// plain Go slice now that there is no manual allocation to manage.
type Bytes struct {
	data []byte
}

// New copies data into a new Bytes.
func New(data []byte) *Bytes {
	b := &Bytes{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// Data returns the buffer's contents. Callers must not modify the returned
// slice.
func (b *Bytes) Data() []byte { return b.data }

// Len returns the number of bytes in the buffer.
func (b *Bytes) Len() int { return len(b.data) }
