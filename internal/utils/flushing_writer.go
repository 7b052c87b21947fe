package utils

import (
	"io"
	"sync"
)

type flusher interface {
	Flush() error
}

// FlushingWriter serializes writes and flushes buffered destinations after each one so
// status lines and log entries interleave in the order they were produced.
type FlushingWriter struct {
	destination io.Writer
	mutex       sync.Mutex
}

// NewFlushingWriter wraps destination. Wrapping an existing FlushingWriter returns it unchanged.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return io.Discard
	}
	if existing, alreadyWrapped := destination.(*FlushingWriter); alreadyWrapped {
		return existing
	}
	return &FlushingWriter{destination: destination}
}

// Write delegates to the destination and flushes it when it supports flushing.
func (writer *FlushingWriter) Write(data []byte) (int, error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	written, writeError := writer.destination.Write(data)
	if writeError != nil {
		return written, writeError
	}
	if flushable, canFlush := writer.destination.(flusher); canFlush {
		return written, flushable.Flush()
	}
	return written, nil
}
