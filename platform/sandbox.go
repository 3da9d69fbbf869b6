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

package platform

import (
	"io"
	"os"

	"dirpx.dev/cellx/apis"
)

// SandboxName is the platform name reported by Sandbox.
const SandboxName = "sandbox"

// Sandbox is a platform without a terminal, such as a browser host. Output
// goes to the writers given to NewSandbox; input, encoding changes,
// redirection queries and interrupts are unsupported.
type Sandbox struct {
	stdout io.Writer
	stderr io.Writer
}

var _ apis.Platform = (*Sandbox)(nil)

// NewSandbox returns a sandbox writing to stdout and stderr.
// A nil writer discards.
func NewSandbox(stdout, stderr io.Writer) *Sandbox {
	return &Sandbox{stdout: stdout, stderr: stderr}
}

// Name returns SandboxName.
func (s *Sandbox) Name() string { return SandboxName }

// EnsureInitialized has nothing to set up.
func (s *Sandbox) EnsureInitialized() error { return nil }

// OpenStandardInput returns ErrUnsupported.
func (s *Sandbox) OpenStandardInput() (io.Reader, error) {
	return nil, apis.ErrUnsupported
}

// OpenStandardOutput returns the stdout writer given to NewSandbox.
func (s *Sandbox) OpenStandardOutput() (io.Writer, error) { return s.stdout, nil }

// OpenStandardError returns the stderr writer given to NewSandbox.
func (s *Sandbox) OpenStandardError() (io.Writer, error) { return s.stderr, nil }

// InputEncoding returns ErrUnsupported.
func (s *Sandbox) InputEncoding() (string, error) { return "", apis.ErrUnsupported }

// OutputEncoding is always UTF-8.
func (s *Sandbox) OutputEncoding() (string, error) { return apis.UTF8.Name, nil }

// SetInputEncoding returns ErrUnsupported.
func (s *Sandbox) SetInputEncoding(string) error { return apis.ErrUnsupported }

// SetOutputEncoding returns ErrUnsupported.
func (s *Sandbox) SetOutputEncoding(string) error { return apis.ErrUnsupported }

// IsInputRedirected returns ErrUnsupported.
func (s *Sandbox) IsInputRedirected() (bool, error) { return false, apis.ErrUnsupported }

// IsOutputRedirected returns ErrUnsupported.
func (s *Sandbox) IsOutputRedirected() (bool, error) { return false, apis.ErrUnsupported }

// IsErrorRedirected returns ErrUnsupported.
func (s *Sandbox) IsErrorRedirected() (bool, error) { return false, apis.ErrUnsupported }

// NotifyInterrupt returns ErrUnsupported.
func (s *Sandbox) NotifyInterrupt(chan<- os.Signal) error { return apis.ErrUnsupported }

// StopInterrupt does nothing.
func (s *Sandbox) StopInterrupt(chan<- os.Signal) {}
