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

// Writer is the interface provided by console output streams.
// Implementations are safe for concurrent use.
type Writer interface {
	io.Writer
	io.StringWriter
	// Flush writes any buffered data to the underlying stream.
	Flush() error
	// Name returns the stream name (e.g. "stdout").
	Name() string
	// Encoding returns the encoding applied to written text.
	Encoding() Encoding
}

// Reader is the interface provided by console input streams.
// Implementations are safe for concurrent use.
type Reader interface {
	io.Reader
	io.RuneReader
	// ReadLine returns the next line without its line terminator.
	// At end of input it returns io.EOF; a final unterminated line is
	// returned with a nil error first.
	ReadLine() (string, error)
	// Name returns the stream name (e.g. "stdin").
	Name() string
	// Encoding returns the encoding used to decode input.
	Encoding() Encoding
}
