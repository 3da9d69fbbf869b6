/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package builder

import (
	"bufio"
	"io"
	"sync"

	"dirpx.dev/cellx/apis"
)

// writer is a console output stream: buffered, optionally auto-flushed,
// safe for concurrent use.
type writer struct {
	name      string
	enc       apis.Encoding
	autoFlush bool

	mu  sync.Mutex
	buf *bufio.Writer
}

var _ apis.Writer = (*writer)(nil)

// Write writes p and flushes if auto-flush is enabled.
func (w *writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.Write(p)
	if err == nil && w.autoFlush {
		err = w.buf.Flush()
	}
	return n, err
}

// WriteString writes s and flushes if auto-flush is enabled.
func (w *writer) WriteString(s string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	n, err := w.buf.WriteString(s)
	if err == nil && w.autoFlush {
		err = w.buf.Flush()
	}
	return n, err
}

// Flush writes buffered data to the underlying stream.
func (w *writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Flush()
}

// Name returns the stream name.
func (w *writer) Name() string {
	return w.name
}

// Encoding returns the output encoding.
func (w *writer) Encoding() apis.Encoding {
	return w.enc
}

// syncWriter serializes writes to a caller-supplied writer.
type syncWriter struct {
	name string

	mu sync.Mutex
	w  io.Writer
}

var _ apis.Writer = (*syncWriter)(nil)

// Write writes p to the wrapped writer.
func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// WriteString writes str to the wrapped writer.
func (s *syncWriter) WriteString(str string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.WriteString(s.w, str)
}

// Flush flushes the wrapped writer when it has a Flush method.
func (s *syncWriter) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Name returns the stream name.
func (s *syncWriter) Name() string {
	return s.name
}

// Encoding reports UTF-8: caller-supplied writers receive text untouched.
func (s *syncWriter) Encoding() apis.Encoding {
	return apis.UTF8
}
