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
	"strings"
	"sync"

	"dirpx.dev/cellx/apis"
)

// reader is a console input stream: buffered, safe for concurrent use.
type reader struct {
	name string
	enc  apis.Encoding

	mu  sync.Mutex
	buf *bufio.Reader
}

var _ apis.Reader = (*reader)(nil)

// Read reads decoded input into p.
func (r *reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Read(p)
}

// ReadRune reads one decoded rune.
func (r *reader) ReadRune() (rune, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.ReadRune()
}

// ReadLine returns the next line without "\n" or "\r\n".
func (r *reader) ReadLine() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, err := r.buf.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// Name returns the stream name.
func (r *reader) Name() string {
	return r.name
}

// Encoding returns the input encoding.
func (r *reader) Encoding() apis.Encoding {
	return r.enc
}
