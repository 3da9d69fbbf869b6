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

// Package cell provides lazily constructed, process-scoped shared values.
//
// A Cell holds at most one value of type T. The value is built by a factory on
// the first Get, cached, and handed to every later caller until it is
// invalidated or replaced. Cells are grouped in a Domain: all cells of one
// domain share a single mutex, so that dropping one cell and repopulating a
// dependent cell are observed atomically by every goroutine.
//
// # Read path
//
// Get is a double-checked lazy initialization. The common path is a single
// atomic load with no locking. When the cell is empty, Get runs the cell's
// pre-init hook (outside the lock), takes the domain lock, checks again and
// only then calls the factory. The factory therefore runs at most once per
// epoch, however many goroutines race on an empty cell.
//
// Published values are never mutated by the cell. A new value is fully built
// first and then stored; readers see the old value or the new one.
//
// # Write path
//
// Set replaces the value and pins the cell: Pinned reports that the value
// is owned by the caller. Invalidate and Reset drop any value, pinned or not;
// owners that must keep caller-supplied overrides across a configuration
// change check Pinned before invalidating. Unpin releases the pin only.
//
// Multi-cell mutations go through Domain.Update, which runs a function under
// the domain lock and hands it a *Tx. The *In variants of the cell methods
// accept that Tx:
//
//	err := d.Update(func(tx *cell.Tx) error {
//		if err := enc.SetIn(tx, next); err != nil {
//			return err
//		}
//		out.InvalidateIn(tx)
//		return nil
//	})
//
// # Lock ordering
//
// The domain lock is not reentrant. While it is held (inside factories,
// Update functions and observers):
//
//   - never call Get, Set, Invalidate, Reset, Unpin or Update on a cell or
//     domain that is already locked; use the *In variants with the given Tx;
//   - never call code that may take other locks which, elsewhere, are held
//     while calling into this domain. Platform initialization of that kind
//     belongs in a pre-init hook (WithPreInit), which Get runs before locking.
//
// # Failures
//
// A factory error is returned to the caller of Get unchanged and nothing is
// cached; the next Get calls the factory again. There is no automatic retry.
package cell
