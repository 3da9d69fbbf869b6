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

package console_test

import (
	"bytes"
	"io"
	"os"
	"strings"
	"sync"

	"dirpx.dev/cellx/apis"
)

// lockedBuffer is a bytes.Buffer safe for concurrent use.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

// fakePlatform records every call made by the console.
type fakePlatform struct {
	mu sync.Mutex

	stdout lockedBuffer
	stderr lockedBuffer
	stdin  string

	inEnc, outEnc string
	redirected    bool
	openErr       error

	inits, stdoutOpens, stdinOpens, redirectQueries int
	relays                                          []chan<- os.Signal
	stops                                           int
}

var _ apis.Platform = (*fakePlatform)(nil)

func newFake() *fakePlatform {
	return &fakePlatform{inEnc: "utf-8", outEnc: "utf-8", redirected: true}
}

func (f *fakePlatform) Name() string { return "fake" }

func (f *fakePlatform) EnsureInitialized() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inits++
	return nil
}

func (f *fakePlatform) OpenStandardInput() (io.Reader, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stdinOpens++
	return strings.NewReader(f.stdin), nil
}

func (f *fakePlatform) OpenStandardOutput() (io.Writer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return nil, f.openErr
	}
	f.stdoutOpens++
	return &f.stdout, nil
}

func (f *fakePlatform) OpenStandardError() (io.Writer, error) {
	return &f.stderr, nil
}

func (f *fakePlatform) InputEncoding() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inEnc, nil
}

func (f *fakePlatform) OutputEncoding() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outEnc, nil
}

func (f *fakePlatform) SetInputEncoding(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inEnc = name
	return nil
}

func (f *fakePlatform) SetOutputEncoding(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outEnc = name
	return nil
}

func (f *fakePlatform) IsInputRedirected() (bool, error)  { return f.query() }
func (f *fakePlatform) IsOutputRedirected() (bool, error) { return f.query() }
func (f *fakePlatform) IsErrorRedirected() (bool, error)  { return f.query() }

func (f *fakePlatform) query() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.redirectQueries++
	return f.redirected, nil
}

func (f *fakePlatform) NotifyInterrupt(ch chan<- os.Signal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.relays = append(f.relays, ch)
	return nil
}

func (f *fakePlatform) StopInterrupt(chan<- os.Signal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakePlatform) counts() (inits, stdoutOpens, stdinOpens, queries int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inits, f.stdoutOpens, f.stdinOpens, f.redirectQueries
}
