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

package apis

import "io"

// Builder composes console streams from raw platform streams.
// Implementations must return synchronized streams: the console hands a
// single Writer or Reader to every goroutine of the process.
type Builder interface {
	// BuildWriter wraps a raw output stream into a buffered, encoding Writer.
	// A nil w yields a writer that discards everything.
	BuildWriter(cfg Config, name string, w io.Writer, enc Encoding) Writer
	// BuildReader wraps a raw input stream into a buffered, decoding Reader.
	// A nil r yields a reader that is always at EOF.
	BuildReader(cfg Config, name string, r io.Reader, enc Encoding) Reader
	// SyncWriter wraps a caller-supplied writer so it is safe for concurrent use.
	// No encoding or buffering is added.
	SyncWriter(name string, w io.Writer) Writer
	// SyncReader wraps a caller-supplied reader so it is safe for concurrent use.
	SyncReader(name string, r io.Reader) Reader
}
