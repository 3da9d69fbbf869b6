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

package cellx

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/text/encoding"

	"dirpx.dev/cellx/apis"
	"dirpx.dev/cellx/console"
	"dirpx.dev/cellx/registry"
	"dirpx.dev/cellx/resolver"
)

// state is the published process-wide snapshot. It is never modified.
type state struct {
	con *console.Console
	reg apis.Registry
}

var (
	// st holds the current snapshot.
	st atomic.Pointer[state]
	// buildMu serializes writers of st.
	buildMu sync.Mutex
)

// init publishes a console for the running process. Nothing is opened
// until first use.
func init() {
	reg := registry.New()
	con, err := console.New(console.WithResolver(resolver.Default(reg)))
	if err != nil {
		panic(err)
	}
	st.Store(&state{con: con, reg: reg})
}

// Default returns the process-wide console.
func Default() *console.Console {
	return st.Load().con
}

// SetDefault replaces the process-wide console. A nil c is ignored.
// Streams of the previous console are not flushed.
func SetDefault(c *console.Console) {
	if c == nil {
		return
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	st.Store(&state{con: c, reg: old.reg})
}

// Reset builds a new process-wide console from opts and publishes it.
// Unless opts set a resolver, names resolve against the process registry.
func Reset(opts ...console.Option) error {
	buildMu.Lock()
	defer buildMu.Unlock()
	old := st.Load()
	all := append([]console.Option{console.WithResolver(resolver.Default(old.reg))}, opts...)
	con, err := console.New(all...)
	if err != nil {
		return err
	}
	st.Store(&state{con: con, reg: old.reg})
	return nil
}

// Registry returns the process encoding registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// RegisterEncoding makes enc resolvable by name in the process registry.
func RegisterEncoding(name string, enc encoding.Encoding) error {
	return st.Load().reg.Register(name, enc)
}

// Stdout returns the standard output writer of the default console.
func Stdout() (apis.Writer, error) {
	return Default().Stdout()
}

// Stderr returns the standard error writer of the default console.
func Stderr() (apis.Writer, error) {
	return Default().Stderr()
}

// Stdin returns the standard input reader of the default console.
func Stdin() (apis.Reader, error) {
	return Default().Stdin()
}

// SetStdout replaces standard output of the default console.
func SetStdout(w io.Writer) error {
	return Default().SetStdout(w)
}

// SetStderr replaces standard error of the default console.
func SetStderr(w io.Writer) error {
	return Default().SetStderr(w)
}

// SetStdin replaces standard input of the default console.
func SetStdin(r io.Reader) error {
	return Default().SetStdin(r)
}

// OutputEncoding returns the output encoding of the default console.
func OutputEncoding() (apis.Encoding, error) {
	return Default().OutputEncoding()
}

// SetOutputEncoding changes the output encoding of the default console.
func SetOutputEncoding(name string) error {
	return Default().SetOutputEncoding(name)
}

// InputEncoding returns the input encoding of the default console.
func InputEncoding() (apis.Encoding, error) {
	return Default().InputEncoding()
}

// SetInputEncoding changes the input encoding of the default console.
func SetInputEncoding(name string) error {
	return Default().SetInputEncoding(name)
}

// IsInputRedirected reports whether standard input is not a terminal.
func IsInputRedirected() (bool, error) {
	return Default().IsInputRedirected()
}

// IsOutputRedirected reports whether standard output is not a terminal.
func IsOutputRedirected() (bool, error) {
	return Default().IsOutputRedirected()
}

// IsErrorRedirected reports whether standard error is not a terminal.
func IsErrorRedirected() (bool, error) {
	return Default().IsErrorRedirected()
}

// Print writes to standard output of the default console.
func Print(a ...any) (int, error) {
	return Default().Print(a...)
}

// Println writes a line to standard output of the default console.
func Println(a ...any) (int, error) {
	return Default().Println(a...)
}

// Printf writes formatted text to standard output of the default console.
func Printf(format string, a ...any) (int, error) {
	return Default().Printf(format, a...)
}

// ReadLine reads a line from standard input of the default console.
func ReadLine() (string, error) {
	return Default().ReadLine()
}

// Flush flushes the standard writers of the default console.
func Flush() error {
	return Default().Flush()
}

// NotifyInterrupt relays Ctrl-C to ch through the default console.
func NotifyInterrupt(ch chan<- os.Signal) error {
	return Default().NotifyInterrupt(ch)
}

// StopInterrupt stops relaying Ctrl-C to ch.
func StopInterrupt(ch chan<- os.Signal) {
	Default().StopInterrupt(ch)
}
