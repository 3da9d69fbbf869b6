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

package cell

import (
	"sync/atomic"
	"time"

	uref "dirpx.dev/cellx/utils/reflect"
)

// Factory builds the value of a cell. It runs with the domain lock held and
// receives the open transaction so it can read sibling cells with GetIn.
type Factory[T any] func(tx *Tx) (T, error)

// Option configures a Cell.
type Option func(*options)

type options struct {
	preInit func() error
}

// WithPreInit sets a hook that Get runs before taking the domain lock, each
// time it finds the cell empty. The hook must be idempotent and safe to run
// from several goroutines at once; an error aborts the Get and is returned
// unchanged. Use it for platform setup that may itself take locks.
func WithPreInit(fn func() error) Option {
	return func(o *options) {
		o.preInit = fn
	}
}

// Cell is a lazily populated, replaceable value shared by many goroutines.
type Cell[T any] struct {
	d       *Domain
	name    string
	factory Factory[T]
	preInit func() error

	// v is the published value; nil means empty. Written only with d.mu held.
	v atomic.Pointer[slot[T]]
	// epoch counts published values. Written only with d.mu held.
	epoch atomic.Uint64
}

// slot is an immutable published value together with its ownership flag.
type slot[T any] struct {
	val    T
	pinned bool
}

// New constructs an empty cell in domain d. An empty name defaults to the
// name of T. New panics with ErrNilFactory if factory is nil.
func New[T any](d *Domain, name string, factory Factory[T], opts ...Option) *Cell[T] {
	if factory == nil {
		panic(ErrNilFactory)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if name == "" {
		name = uref.TypeName[T]()
	}
	c := &Cell[T]{
		d:       d,
		name:    name,
		factory: factory,
		preInit: o.preInit,
	}
	d.register(c)
	return c
}

// Name returns the cell name.
func (c *Cell[T]) Name() string {
	return c.name
}

// Domain returns the domain the cell belongs to.
func (c *Cell[T]) Domain() *Domain {
	return c.d
}

// Get returns the cached value, building it first if the cell is empty.
// The factory runs at most once per epoch. A factory or pre-init error is
// returned unchanged and leaves the cell empty.
func (c *Cell[T]) Get() (T, error) {
	if s := c.v.Load(); s != nil {
		return s.val, nil
	}
	return c.slowGet()
}

func (c *Cell[T]) slowGet() (T, error) {
	// Outside the lock: the hook may take platform locks.
	if c.preInit != nil {
		if err := c.preInit(); err != nil {
			c.d.failed(c.name, err)
			var zero T
			return zero, err
		}
	}

	tx := c.d.lock()
	defer c.d.unlock()
	return c.populate(tx)
}

// GetIn is Get for callers already holding the domain lock through tx.
// The pre-init hook is not run.
func (c *Cell[T]) GetIn(tx *Tx) (T, error) {
	c.d.check(tx)
	return c.populate(tx)
}

// populate returns the current value or builds one. Requires the domain lock.
func (c *Cell[T]) populate(tx *Tx) (T, error) {
	if s := c.v.Load(); s != nil {
		return s.val, nil
	}

	start := time.Now()
	v, err := c.factory(tx)
	if err != nil {
		c.d.failed(c.name, err)
		var zero T
		return zero, err
	}

	c.v.Store(&slot[T]{val: v})
	epoch := c.epoch.Add(1)
	c.d.populated(c.name, epoch, time.Since(start))
	return v, nil
}

// Peek returns the cached value without building one.
func (c *Cell[T]) Peek() (T, bool) {
	if s := c.v.Load(); s != nil {
		return s.val, true
	}
	var zero T
	return zero, false
}

// PeekIn is Peek inside a transaction. Its answer stays valid until tx ends.
func (c *Cell[T]) PeekIn(tx *Tx) (T, bool) {
	c.d.check(tx)
	return c.Peek()
}

// Set replaces the value and pins the cell. Nil values are rejected with
// ErrNilValue.
func (c *Cell[T]) Set(v T) error {
	if uref.IsNil(v) {
		return ErrNilValue
	}
	tx := c.d.lock()
	defer c.d.unlock()
	c.store(tx, v)
	return nil
}

// SetIn is Set inside a transaction.
func (c *Cell[T]) SetIn(tx *Tx, v T) error {
	c.d.check(tx)
	if uref.IsNil(v) {
		return ErrNilValue
	}
	c.store(tx, v)
	return nil
}

func (c *Cell[T]) store(_ *Tx, v T) {
	c.v.Store(&slot[T]{val: v, pinned: true})
	epoch := c.epoch.Add(1)
	c.d.replaced(c.name, epoch)
}

// Invalidate drops the cached value, pinned or not, so the next Get builds a
// new one. It reports whether a value was dropped. Callers that must keep
// caller-supplied values check Pinned first.
func (c *Cell[T]) Invalidate() bool {
	tx := c.d.lock()
	defer c.d.unlock()
	return c.InvalidateIn(tx)
}

// InvalidateIn is Invalidate inside a transaction.
func (c *Cell[T]) InvalidateIn(tx *Tx) bool {
	c.d.check(tx)
	if c.v.Swap(nil) == nil {
		return false
	}
	c.d.invalidated(c.name, c.epoch.Load())
	return true
}

// Reset drops the value and the pin. It is Invalidate for callers that do
// not need the result.
func (c *Cell[T]) Reset() {
	tx := c.d.lock()
	defer c.d.unlock()
	c.ResetIn(tx)
}

// ResetIn is Reset inside a transaction.
func (c *Cell[T]) ResetIn(tx *Tx) {
	c.InvalidateIn(tx)
}

// Pinned reports whether the current value was supplied through Set.
func (c *Cell[T]) Pinned() bool {
	s := c.v.Load()
	return s != nil && s.pinned
}

// Unpin releases caller ownership; the value stays cached.
func (c *Cell[T]) Unpin() {
	tx := c.d.lock()
	defer c.d.unlock()
	c.UnpinIn(tx)
}

// UnpinIn is Unpin inside a transaction.
func (c *Cell[T]) UnpinIn(tx *Tx) {
	c.d.check(tx)
	if s := c.v.Load(); s != nil && s.pinned {
		c.v.Store(&slot[T]{val: s.val})
	}
}

// Epoch returns the number of values published so far.
func (c *Cell[T]) Epoch() uint64 {
	return c.epoch.Load()
}

func (c *Cell[T]) status() Status {
	s := c.v.Load()
	return Status{
		Name:      c.name,
		Populated: s != nil,
		Pinned:    s != nil && s.pinned,
		Epoch:     c.epoch.Load(),
	}
}
