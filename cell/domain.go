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
	"context"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"dirpx.dev/cellx/apis"
)

// Domain is the mutual-exclusion domain shared by a group of related cells.
type Domain struct {
	name string
	log  *slog.Logger
	obs  apis.Observer

	// mu is the domain lock. Every cell mutation and every factory call
	// happens while it is held.
	mu sync.Mutex
	// cur is the transaction of the Update (or slow-path Get) holding mu.
	cur atomic.Pointer[Tx]

	// members tracks cells for Snapshot. It has its own lock so Snapshot
	// never waits on a running factory.
	membersMu sync.Mutex
	members   []member
}

// member is the non-generic view of a cell used by Snapshot.
type member interface {
	status() Status
}

// Status describes one cell of a domain.
type Status struct {
	// Name is the cell name.
	Name string `yaml:"name"`
	// Populated reports whether a value is cached.
	Populated bool `yaml:"populated"`
	// Pinned reports whether the value was supplied by a caller.
	Pinned bool `yaml:"pinned"`
	// Epoch is the number of values published so far.
	Epoch uint64 `yaml:"epoch"`
}

// DomainOption configures a Domain.
type DomainOption func(*Domain)

// WithLogger sets the logger used for lifecycle events (Debug level).
// A nil logger disables logging.
func WithLogger(l *slog.Logger) DomainOption {
	return func(d *Domain) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		d.log = l
	}
}

// WithObserver sets the observer notified of lifecycle events.
func WithObserver(o apis.Observer) DomainOption {
	return func(d *Domain) {
		d.obs = o
	}
}

// NewDomain constructs an empty domain.
func NewDomain(name string, opts ...DomainOption) *Domain {
	d := &Domain{
		name: name,
		log:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the domain name.
func (d *Domain) Name() string {
	return d.name
}

// Tx is the proof that the domain lock is held. It is only valid inside the
// function passed to Update, or inside a factory.
type Tx struct {
	d *Domain
}

// Domain returns the domain whose lock tx holds.
func (tx *Tx) Domain() *Domain {
	return tx.d
}

// Update runs fn while holding the domain lock. Cells of this domain must be
// accessed through their *In methods with the given Tx. The error returned
// by fn is returned unchanged.
func (d *Domain) Update(fn func(tx *Tx) error) error {
	tx := d.lock()
	defer d.unlock()
	return fn(tx)
}

// Snapshot returns the status of every cell of the domain, sorted by name.
// It does not take the domain lock and never populates anything.
func (d *Domain) Snapshot() []Status {
	d.membersMu.Lock()
	out := make([]Status, 0, len(d.members))
	for _, m := range d.members {
		out = append(out, m.status())
	}
	d.membersMu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// lock acquires the domain lock and opens a transaction.
func (d *Domain) lock() *Tx {
	d.mu.Lock()
	tx := &Tx{d: d}
	d.cur.Store(tx)
	return tx
}

// unlock closes the current transaction and releases the domain lock.
func (d *Domain) unlock() {
	d.cur.Store(nil)
	d.mu.Unlock()
}

// check panics unless tx is the live transaction of d.
func (d *Domain) check(tx *Tx) {
	if tx == nil || tx.d != d || d.cur.Load() != tx {
		panic(ErrForeignTx)
	}
}

// register adds a cell to the Snapshot set.
func (d *Domain) register(m member) {
	d.membersMu.Lock()
	d.members = append(d.members, m)
	d.membersMu.Unlock()
}

func (d *Domain) populated(cell string, epoch uint64, took time.Duration) {
	d.log.LogAttrs(context.Background(), slog.LevelDebug, "cell populated",
		slog.String("domain", d.name), slog.String("cell", cell),
		slog.Uint64("epoch", epoch), slog.Duration("took", took))
	if d.obs != nil {
		d.obs.Populated(d.name, cell, took)
	}
}

func (d *Domain) failed(cell string, err error) {
	if d.obs != nil {
		d.obs.Failed(d.name, cell, err)
	}
}

func (d *Domain) invalidated(cell string, epoch uint64) {
	d.log.LogAttrs(context.Background(), slog.LevelDebug, "cell invalidated",
		slog.String("domain", d.name), slog.String("cell", cell), slog.Uint64("epoch", epoch))
	if d.obs != nil {
		d.obs.Invalidated(d.name, cell)
	}
}

func (d *Domain) replaced(cell string, epoch uint64) {
	d.log.LogAttrs(context.Background(), slog.LevelDebug, "cell replaced",
		slog.String("domain", d.name), slog.String("cell", cell), slog.Uint64("epoch", epoch))
	if d.obs != nil {
		d.obs.Replaced(d.name, cell)
	}
}
