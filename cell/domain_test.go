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

package cell_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"dirpx.dev/cellx/cell"
)

// recorder is an apis.Observer that records events.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(ev string) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recorder) Populated(domain, c string, _ time.Duration) { r.add("populated " + domain + "/" + c) }
func (r *recorder) Failed(domain, c string, _ error)             { r.add("failed " + domain + "/" + c) }
func (r *recorder) Invalidated(domain, c string)                 { r.add("invalidated " + domain + "/" + c) }
func (r *recorder) Replaced(domain, c string)                    { r.add("replaced " + domain + "/" + c) }

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// encoding-style dependency: a writer cell built from an encoding cell.
func TestUpdate_InvalidatesDependentsAtomically(t *testing.T) {
	d := cell.NewDomain("console")
	enc := cell.New(d, "encoding", func(*cell.Tx) (string, error) { return "utf-8", nil })
	type writer struct{ enc string }
	out := cell.New(d, "out", func(tx *cell.Tx) (*writer, error) {
		e, err := enc.GetIn(tx)
		if err != nil {
			return nil, err
		}
		return &writer{enc: e}, nil
	})

	w1, err := out.Get()
	if err != nil || w1.enc != "utf-8" {
		t.Fatalf("Get = %+v, %v", w1, err)
	}

	err = d.Update(func(tx *cell.Tx) error {
		if err := enc.SetIn(tx, "latin1"); err != nil {
			return err
		}
		if !out.InvalidateIn(tx) {
			t.Errorf("InvalidateIn returned false for populated cell")
		}
		if _, ok := out.PeekIn(tx); ok {
			t.Errorf("PeekIn after InvalidateIn found a value")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	w2, _ := out.Get()
	if w2.enc != "latin1" {
		t.Fatalf("dependent cell not rebuilt with new setting: %+v", w2)
	}
}

func TestUpdate_ReturnsError(t *testing.T) {
	d := cell.NewDomain("test")
	want := errors.New("nope")
	if err := d.Update(func(*cell.Tx) error { return want }); err != want {
		t.Fatalf("Update err = %v, want %v", err, want)
	}
}

func TestTx_ForeignOrStalePanics(t *testing.T) {
	d1 := cell.NewDomain("one")
	d2 := cell.NewDomain("two")
	c := cell.New(d1, "c", func(*cell.Tx) (int, error) { return 1, nil })

	expectPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if r := recover(); r != cell.ErrForeignTx {
				t.Fatalf("%s: recovered %v, want ErrForeignTx", name, r)
			}
		}()
		fn()
	}

	expectPanic("foreign", func() {
		_ = d2.Update(func(tx *cell.Tx) error {
			c.InvalidateIn(tx)
			return nil
		})
	})

	var stale *cell.Tx
	_ = d1.Update(func(tx *cell.Tx) error {
		stale = tx
		return nil
	})
	expectPanic("stale", func() { _, _ = c.GetIn(stale) })
	expectPanic("nil", func() { _ = c.SetIn(nil, 2) })

	// The domain lock must have been released by the panicking Update.
	if _, err := c.Get(); err != nil {
		t.Fatalf("Get after panics: %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	d := cell.NewDomain("test")
	a := cell.New(d, "b-cell", func(*cell.Tx) (int, error) { return 1, nil })
	b := cell.New(d, "a-cell", func(*cell.Tx) (int, error) { return 2, nil })

	_, _ = a.Get()
	_ = b.Set(5)

	got := d.Snapshot()
	want := []cell.Status{
		{Name: "a-cell", Populated: true, Pinned: true, Epoch: 1},
		{Name: "b-cell", Populated: true, Pinned: false, Epoch: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Snapshot len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Snapshot[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestObserver_ReceivesLifecycle(t *testing.T) {
	rec := &recorder{}
	d := cell.NewDomain("dom", cell.WithObserver(rec), cell.WithLogger(nil))
	fail := true
	c := cell.New(d, "c", func(*cell.Tx) (int, error) {
		if fail {
			return 0, errors.New("x")
		}
		return 1, nil
	})

	_, _ = c.Get()
	fail = false
	_, _ = c.Get()
	c.Invalidate()
	_ = c.Set(3)
	c.Reset()

	want := []string{
		"failed dom/c",
		"populated dom/c",
		"invalidated dom/c",
		"replaced dom/c",
		"invalidated dom/c",
	}
	got := rec.list()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
