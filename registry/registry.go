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

package registry

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"golang.org/x/text/encoding"

	"dirpx.dev/cellx/apis"
)

var (
	// ErrNilEncoding is returned when a nil encoding is provided.
	ErrNilEncoding = errors.New("cellx(registry): nil encoding provided")
	// ErrEmptyName is returned when an empty name is provided.
	ErrEmptyName = errors.New("cellx(registry): empty name provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a name with a different encoding.
	ErrConflictingRegistration = errors.New("cellx(registry): conflicting encoding registration")
)

// New constructs an empty Registry.
func New() apis.Registry {
	return &registry{}
}

// NormalizeName folds an encoding name to the registry key form:
// trimmed, lower case, with '_' treated as '-'.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps normalized names to encodings.
	m sync.Map // map[string]encoding.Encoding
	// count tracks the number of registered entries.
	count int
}

// Register associates name with enc.
// It is idempotent for the same (name, encoding) pair.
func (r *registry) Register(name string, enc encoding.Encoding) error {
	// Validate inputs early.
	if enc == nil {
		return ErrNilEncoding
	}
	key := NormalizeName(name)
	if key == "" {
		return ErrEmptyName
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(key); ok {
		if same(old.(encoding.Encoding), enc) {
			return nil // idempotent re-registration
		}
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(key); ok {
		if same(old.(encoding.Encoding), enc) {
			return nil
		}
		return ErrConflictingRegistration
	}

	r.m.Store(key, enc)
	r.count++
	return nil
}

// Lookup returns the encoding registered under name, if present.
func (r *registry) Lookup(name string) (encoding.Encoding, bool) {
	key := NormalizeName(name)
	if key == "" {
		return nil, false
	}
	if v, ok := r.m.Load(key); ok {
		return v.(encoding.Encoding), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Name:     key.(string),
			Encoding: value.(encoding.Encoding),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}

// same compares encodings without panicking on non-comparable dynamic types.
func same(a, b encoding.Encoding) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
