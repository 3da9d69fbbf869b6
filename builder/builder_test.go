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

package builder_test

import (
	"bytes"
	"errors"
	"io"
	"runtime"
	"strings"
	"sync"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"dirpx.dev/cellx/apis"
	"dirpx.dev/cellx/builder"
	"dirpx.dev/cellx/config"
)

var latin1 = apis.Encoding{Name: "iso-8859-1", Encoding: charmap.ISO8859_1}

func TestBuildWriter_UTF8AutoFlush(t *testing.T) {
	var out bytes.Buffer
	w := builder.New().BuildWriter(config.DefaultConfig(), "stdout", &out, apis.UTF8)

	if _, err := w.WriteString("héllo\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if got := out.String(); got != "héllo\n" {
		t.Fatalf("out = %q", got)
	}
	if w.Name() != "stdout" || !w.Encoding().IsUTF8() {
		t.Fatalf("Name/Encoding = %q/%v", w.Name(), w.Encoding())
	}
}

func TestBuildWriter_Encodes(t *testing.T) {
	var out bytes.Buffer
	w := builder.New().BuildWriter(config.DefaultConfig(), "stdout", &out, latin1)

	if _, err := w.Write([]byte("é")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := out.Bytes(); !bytes.Equal(got, []byte{0xE9}) {
		t.Fatalf("out = % x, want e9", got)
	}
	if w.Encoding().Name != "iso-8859-1" {
		t.Fatalf("Encoding = %v", w.Encoding())
	}
}

func TestBuildWriter_UnrepresentableRune(t *testing.T) {
	var out bytes.Buffer
	w := builder.New().BuildWriter(config.DefaultConfig(), "stdout", &out, latin1)

	if _, err := w.WriteString("snowman ☃\n"); err != nil {
		t.Fatalf("first WriteString: %v", err)
	}
	if _, err := w.WriteString("plain ascii\n"); err != nil {
		t.Fatalf("second WriteString: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "snowman ") || !strings.HasSuffix(got, "\nplain ascii\n") {
		t.Fatalf("out = %q", got)
	}
	if strings.Contains(got, "☃") {
		t.Fatalf("unrepresentable rune written verbatim: %q", got)
	}
	if len(got) != len("snowman ?\nplain ascii\n") {
		t.Fatalf("out = %q, want one replacement byte", got)
	}
}

func TestBuildWriter_BuffersWithoutAutoFlush(t *testing.T) {
	var out bytes.Buffer
	cfg := config.NewConfig(config.WithAutoFlush(false))
	w := builder.New().BuildWriter(cfg, "stdout", &out, apis.UTF8)

	_, _ = w.WriteString("pending")
	if out.Len() != 0 {
		t.Fatalf("written before Flush: %q", out.String())
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != "pending" {
		t.Fatalf("out = %q", out.String())
	}
}

func TestBuildWriter_NilDiscards(t *testing.T) {
	w := builder.New().BuildWriter(config.DefaultConfig(), "stderr", nil, apis.UTF8)
	n, err := w.WriteString("dropped")
	if err != nil || n != len("dropped") {
		t.Fatalf("WriteString = %d, %v", n, err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestBuildReader_Lines(t *testing.T) {
	in := strings.NewReader("one\r\ntwo\nthree")
	r := builder.New().BuildReader(config.DefaultConfig(), "stdin", in, apis.UTF8)

	for _, want := range []string{"one", "two", "three"} {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != want {
			t.Fatalf("ReadLine = %q, want %q", got, want)
		}
	}
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadLine at end = %v, want io.EOF", err)
	}
}

func TestBuildReader_Decodes(t *testing.T) {
	in := bytes.NewReader([]byte{'c', 'a', 'f', 0xE9, '\n'})
	r := builder.New().BuildReader(config.DefaultConfig(), "stdin", in, latin1)

	got, err := r.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if got != "café" {
		t.Fatalf("ReadLine = %q, want café", got)
	}
}

func TestBuildReader_ReadRune(t *testing.T) {
	r := builder.New().BuildReader(config.DefaultConfig(), "stdin", strings.NewReader("ü"), apis.UTF8)
	c, size, err := r.ReadRune()
	if err != nil || c != 'ü' || size != 2 {
		t.Fatalf("ReadRune = %q, %d, %v", c, size, err)
	}
}

func TestBuildReader_NilIsEOF(t *testing.T) {
	r := builder.New().BuildReader(config.DefaultConfig(), "stdin", nil, apis.UTF8)
	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("ReadLine = %v, want io.EOF", err)
	}
	if n, err := r.Read(make([]byte, 4)); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("Read = %d, %v", n, err)
	}
}

// flusher records Flush calls.
type flusher struct {
	bytes.Buffer
	flushes int
}

func (f *flusher) Flush() error {
	f.flushes++
	return nil
}

func TestSyncWriter_PassesThrough(t *testing.T) {
	b := builder.New()
	f := &flusher{}
	w := b.SyncWriter("stdout", f)

	_, _ = w.WriteString("x")
	if f.String() != "x" {
		t.Fatalf("out = %q", f.String())
	}
	if err := w.Flush(); err != nil || f.flushes != 1 {
		t.Fatalf("Flush = %v, flushes = %d", err, f.flushes)
	}
	if b.SyncWriter("again", w) != w {
		t.Fatalf("SyncWriter rewrapped a synchronized writer")
	}
	if !w.Encoding().IsUTF8() {
		t.Fatalf("Encoding = %v", w.Encoding())
	}
}

func TestSyncReader(t *testing.T) {
	b := builder.New()
	r := b.SyncReader("stdin", strings.NewReader("a\nb\n"))
	if line, _ := r.ReadLine(); line != "a" {
		t.Fatalf("ReadLine = %q", line)
	}
	if b.SyncReader("again", r) != r {
		t.Fatalf("SyncReader rewrapped a synchronized reader")
	}
}

func TestWriter_ConcurrentLinesStayWhole(t *testing.T) {
	var out bytes.Buffer
	w := builder.New().BuildWriter(config.DefaultConfig(), "stdout", &out, apis.UTF8)

	workers := runtime.GOMAXPROCS(0) * 4
	const perWorker = 50
	line := strings.Repeat("z", 40) + "\n"

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for range perWorker {
				_, _ = w.WriteString(line)
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != workers*perWorker {
		t.Fatalf("lines = %d, want %d", len(lines), workers*perWorker)
	}
	for _, l := range lines {
		if l+"\n" != line {
			t.Fatalf("torn line %q", l)
		}
	}
}
