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

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"dirpx.dev/cellx/apis"
)

// memPlatform is an in-memory terminal.
type memPlatform struct {
	mu     sync.Mutex
	stdin  []byte
	stdout bytes.Buffer
	stderr bytes.Buffer
	outEnc string
	// stdoutErr fails OpenStandardOutput when set.
	stdoutErr error
}

func (m *memPlatform) Name() string             { return "mem" }
func (m *memPlatform) EnsureInitialized() error { return nil }
func (m *memPlatform) OpenStandardInput() (io.Reader, error) {
	return bytes.NewReader(m.stdin), nil
}
func (m *memPlatform) OpenStandardOutput() (io.Writer, error) {
	if m.stdoutErr != nil {
		return nil, m.stdoutErr
	}
	return &m.stdout, nil
}
func (m *memPlatform) OpenStandardError() (io.Writer, error)  { return &m.stderr, nil }
func (m *memPlatform) InputEncoding() (string, error)         { return "utf-8", nil }
func (m *memPlatform) OutputEncoding() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outEnc == "" {
		return "utf-8", nil
	}
	return m.outEnc, nil
}
func (m *memPlatform) SetInputEncoding(string) error { return nil }
func (m *memPlatform) SetOutputEncoding(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outEnc = name
	return nil
}
func (m *memPlatform) IsInputRedirected() (bool, error)       { return true, nil }
func (m *memPlatform) IsOutputRedirected() (bool, error)      { return false, nil }
func (m *memPlatform) IsErrorRedirected() (bool, error)       { return false, nil }
func (m *memPlatform) NotifyInterrupt(chan<- os.Signal) error { return nil }
func (m *memPlatform) StopInterrupt(chan<- os.Signal)         {}

// run executes the CLI against m and returns what the command wrote to its
// own stderr.
func run(t *testing.T, m *memPlatform, args ...string) (string, error) {
	t.Helper()
	prev := newPlatform
	newPlatform = func() apis.Platform { return m }
	t.Cleanup(func() { newPlatform = prev })

	var errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetErr(&errOut)
	err := root.Execute()
	return errOut.String(), err
}

func TestProbe_Text(t *testing.T) {
	m := &memPlatform{}
	if _, err := run(t, m, "probe"); err != nil {
		t.Fatalf("probe: %v", err)
	}
	out := m.stdout.String()
	for _, want := range []string{"platform:        mem", "output encoding: utf-8", "stdin redirected:true", "stdout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestProbe_YAML(t *testing.T) {
	m := &memPlatform{}
	if _, err := run(t, m, "probe", "--format", "yaml", "--metrics"); err != nil {
		t.Fatalf("probe: %v", err)
	}
	var r report
	if err := yaml.Unmarshal(m.stdout.Bytes(), &r); err != nil {
		t.Fatalf("yaml: %v\n%s", err, m.stdout.String())
	}
	if r.Platform != "mem" || r.Stdout != "ok" || r.Redirected["stdin"] != "true" || r.Redirected["stderr"] != "false" {
		t.Fatalf("report = %+v", r)
	}
	if r.Metrics["cellx_cell_populations_total"] == 0 {
		t.Fatalf("no populations counted: %v", r.Metrics)
	}
	found := false
	for _, s := range r.Cells {
		if s.Name == "stdout" {
			found = s.Populated
		}
	}
	if !found {
		t.Fatalf("stdout not populated in %+v", r.Cells)
	}
}

func TestProbe_StdoutFailureReported(t *testing.T) {
	m := &memPlatform{stdoutErr: errors.New("descriptor closed")}
	logs, err := run(t, m, "probe", "--format", "yaml")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if m.stdout.Len() != 0 {
		t.Fatalf("wrote to a failed stdout: %q", m.stdout.String())
	}
	var r report
	if err := yaml.Unmarshal([]byte(logs), &r); err != nil {
		t.Fatalf("yaml: %v\n%s", err, logs)
	}
	if !strings.HasPrefix(r.Stdout, "error: ") || !strings.Contains(r.Stdout, "descriptor closed") {
		t.Fatalf("report stdout = %q", r.Stdout)
	}
}

func TestCat_UnrepresentableRune(t *testing.T) {
	m := &memPlatform{stdin: []byte("a☃b\nc\n")}
	if _, err := run(t, m, "cat", "--output-encoding", "ISO-8859-1"); err != nil {
		t.Fatalf("cat: %v", err)
	}
	got := m.stdout.String()
	if len(got) != len("a?b\nc\n") || !strings.HasPrefix(got, "a") || !strings.HasSuffix(got, "b\nc\n") {
		t.Fatalf("stdout = %q", got)
	}
}

func TestProbe_BadFormat(t *testing.T) {
	if _, err := run(t, &memPlatform{}, "probe", "--format", "json"); err == nil {
		t.Fatal("probe accepted an unknown format")
	}
}

func TestCat_Transcodes(t *testing.T) {
	m := &memPlatform{stdin: []byte{'n', 'a', 0xEF, 'v', 'e', '\n'}}
	if _, err := run(t, m, "cat", "--input-encoding", "ISO-8859-1"); err != nil {
		t.Fatalf("cat: %v", err)
	}
	if got := m.stdout.String(); got != "naïve\n" {
		t.Fatalf("stdout = %q", got)
	}
}

func TestCat_OutputEncoding(t *testing.T) {
	m := &memPlatform{stdin: []byte("ï")}
	if _, err := run(t, m, "cat", "--output-encoding", "ISO-8859-1"); err != nil {
		t.Fatalf("cat: %v", err)
	}
	if got := m.stdout.Bytes(); !bytes.Equal(got, []byte{0xEF}) {
		t.Fatalf("stdout = % x", got)
	}
}

func TestCat_UnknownEncoding(t *testing.T) {
	if _, err := run(t, &memPlatform{}, "cat", "--output-encoding", "nope-42"); err == nil {
		t.Fatal("cat accepted an unknown encoding")
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	if err := os.WriteFile(path, []byte("output_encoding: ISO-8859-1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m := &memPlatform{stdin: []byte("é")}
	if _, err := run(t, m, "--config", path, "cat"); err != nil {
		t.Fatalf("cat: %v", err)
	}
	if got := m.stdout.Bytes(); !bytes.Equal(got, []byte{0xE9}) {
		t.Fatalf("stdout = % x", got)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("no_such_key: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, &memPlatform{}, "--config", bad, "probe"); err == nil {
		t.Fatal("unknown config key accepted")
	}
}

func TestVerbose_LogsLifecycle(t *testing.T) {
	logs, err := run(t, &memPlatform{}, "--verbose", "probe")
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if !strings.Contains(logs, "cell populated") {
		t.Fatalf("no lifecycle logs:\n%s", logs)
	}
}
