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
	"os/signal"
	"strings"
	"sync"

	"dirpx.dev/cellx/apis"
)

// OSName is the platform name reported by OS.
const OSName = "os"

// OS is the platform of the running process: the standard file descriptors,
// the locale's charset and SIGINT.
type OS struct {
	once sync.Once

	mu     sync.Mutex
	input  string
	output string
}

var _ apis.Platform = (*OS)(nil)

// NewOS returns the platform of the running process.
func NewOS() *OS {
	return &OS{}
}

// Name returns OSName.
func (p *OS) Name() string {
	return OSName
}

// EnsureInitialized records the locale's charset as the initial encodings,
// unless they were already set. It runs once.
func (p *OS) EnsureInitialized() error {
	p.once.Do(func() {
		cs := LocaleCharset()
		p.mu.Lock()
		if p.input == "" {
			p.input = cs
		}
		if p.output == "" {
			p.output = cs
		}
		p.mu.Unlock()
	})
	return nil
}

// OpenStandardInput returns os.Stdin, or nil when the descriptor is closed.
func (p *OS) OpenStandardInput() (io.Reader, error) {
	if !usable(os.Stdin) {
		return nil, nil
	}
	return os.Stdin, nil
}

// OpenStandardOutput returns os.Stdout, or nil when the descriptor is closed.
func (p *OS) OpenStandardOutput() (io.Writer, error) {
	if !usable(os.Stdout) {
		return nil, nil
	}
	return os.Stdout, nil
}

// OpenStandardError returns os.Stderr, or nil when the descriptor is closed.
func (p *OS) OpenStandardError() (io.Writer, error) {
	if !usable(os.Stderr) {
		return nil, nil
	}
	return os.Stderr, nil
}

// InputEncoding returns the recorded input encoding.
func (p *OS) InputEncoding() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.input == "" {
		return LocaleCharset(), nil
	}
	return p.input, nil
}

// OutputEncoding returns the recorded output encoding.
func (p *OS) OutputEncoding() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.output == "" {
		return LocaleCharset(), nil
	}
	return p.output, nil
}

// SetInputEncoding records name. Terminals are not reconfigured.
func (p *OS) SetInputEncoding(name string) error {
	p.mu.Lock()
	p.input = name
	p.mu.Unlock()
	return nil
}

// SetOutputEncoding records name. Terminals are not reconfigured.
func (p *OS) SetOutputEncoding(name string) error {
	p.mu.Lock()
	p.output = name
	p.mu.Unlock()
	return nil
}

// IsInputRedirected reports whether stdin is not a terminal.
func (p *OS) IsInputRedirected() (bool, error) {
	return !isTerminal(os.Stdin), nil
}

// IsOutputRedirected reports whether stdout is not a terminal.
func (p *OS) IsOutputRedirected() (bool, error) {
	return !isTerminal(os.Stdout), nil
}

// IsErrorRedirected reports whether stderr is not a terminal.
func (p *OS) IsErrorRedirected() (bool, error) {
	return !isTerminal(os.Stderr), nil
}

// NotifyInterrupt relays os.Interrupt to ch.
func (p *OS) NotifyInterrupt(ch chan<- os.Signal) error {
	signal.Notify(ch, os.Interrupt)
	return nil
}

// StopInterrupt stops relaying to ch.
func (p *OS) StopInterrupt(ch chan<- os.Signal) {
	signal.Stop(ch)
}

// LocaleCharset returns the charset of the first non-empty of LC_ALL,
// LC_CTYPE and LANG ("en_US.ISO-8859-1@euro" yields "iso-8859-1"), or
// "utf-8" when none names one.
func LocaleCharset() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		return charsetOf(v)
	}
	return apis.UTF8.Name
}

func charsetOf(locale string) string {
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	i := strings.IndexByte(locale, '.')
	if i < 0 || i == len(locale)-1 {
		return apis.UTF8.Name
	}
	cs := strings.ToLower(locale[i+1:])
	if cs == "utf8" {
		return apis.UTF8.Name
	}
	return cs
}

func usable(f *os.File) bool {
	if f == nil {
		return false
	}
	_, err := f.Stat()
	return err == nil
}
