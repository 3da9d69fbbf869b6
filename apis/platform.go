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

import (
	"io"
	"os"
)

// Platform abstracts the process console of one target.
//
// EnsureInitialized may take platform-side locks and is only ever called
// outside the console domain lock. Every other method may run under that lock
// and must not call back into the console.
type Platform interface {
	// Name identifies the platform in errors and diagnostics.
	Name() string

	// EnsureInitialized performs one-time terminal setup. It must be
	// idempotent and safe to call from several goroutines at once.
	EnsureInitialized() error

	// OpenStandardInput returns the raw standard input stream.
	// A nil reader with a nil error means "no input" (null stream).
	OpenStandardInput() (io.Reader, error)
	// OpenStandardOutput returns the raw standard output stream.
	// A nil writer with a nil error means "discard".
	OpenStandardOutput() (io.Writer, error)
	// OpenStandardError returns the raw standard error stream.
	OpenStandardError() (io.Writer, error)

	// InputEncoding returns the platform's current input encoding name.
	InputEncoding() (string, error)
	// OutputEncoding returns the platform's current output encoding name.
	OutputEncoding() (string, error)
	// SetInputEncoding informs the terminal of a new input encoding.
	SetInputEncoding(name string) error
	// SetOutputEncoding informs the terminal of a new output encoding.
	SetOutputEncoding(name string) error

	// IsInputRedirected reports whether stdin is not a terminal.
	IsInputRedirected() (bool, error)
	// IsOutputRedirected reports whether stdout is not a terminal.
	IsOutputRedirected() (bool, error)
	// IsErrorRedirected reports whether stderr is not a terminal.
	IsErrorRedirected() (bool, error)

	// NotifyInterrupt starts relaying interrupt (Ctrl-C) signals to ch.
	NotifyInterrupt(ch chan<- os.Signal) error
	// StopInterrupt stops relaying interrupt signals to ch.
	StopInterrupt(ch chan<- os.Signal)
}
