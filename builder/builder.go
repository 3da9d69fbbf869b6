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

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"dirpx.dev/cellx/apis"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildWriter wraps w into a synchronized, buffered writer that encodes text
// with enc, substituting runes enc cannot represent. Writes are flushed after every call when cfg.AutoFlush is set.
// A nil w produces a writer that discards everything.
func (b *builder) BuildWriter(cfg apis.Config, name string, w io.Writer, enc apis.Encoding) apis.Writer {
	if w == nil {
		return &writer{name: name, enc: enc, buf: bufio.NewWriterSize(io.Discard, 16)}
	}
	if !enc.IsUTF8() {
		// Runes outside the charset become its replacement byte.
		w = transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
	}
	return &writer{
		name:      name,
		enc:       enc,
		buf:       bufio.NewWriterSize(w, cfg.WriteBufferSize),
		autoFlush: cfg.AutoFlush,
	}
}

// BuildReader wraps r into a synchronized, buffered reader that decodes text
// with enc. A nil r produces a reader that is always at EOF.
func (b *builder) BuildReader(cfg apis.Config, name string, r io.Reader, enc apis.Encoding) apis.Reader {
	if r == nil {
		r = eof{}
	} else if !enc.IsUTF8() {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	return &reader{
		name: name,
		enc:  enc,
		buf:  bufio.NewReaderSize(r, cfg.ReadBufferSize),
	}
}

// SyncWriter serializes access to a caller-supplied writer.
// Writes go straight through, so Flush only flushes w if w can flush itself.
func (b *builder) SyncWriter(name string, w io.Writer) apis.Writer {
	if sw, ok := w.(*syncWriter); ok {
		return sw
	}
	return &syncWriter{name: name, w: w}
}

// SyncReader serializes access to a caller-supplied reader.
func (b *builder) SyncReader(name string, r io.Reader) apis.Reader {
	if rr, ok := r.(*reader); ok {
		return rr
	}
	return &reader{name: name, enc: apis.UTF8, buf: bufio.NewReader(r)}
}

// eof is the null input stream.
type eof struct{}

// Read always reports io.EOF.
func (eof) Read([]byte) (int, error) { return 0, io.EOF }
