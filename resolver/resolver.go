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

package resolver

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/cellx/apis"
	"dirpx.dev/cellx/strategy"
)

var (
	// ErrEmptyName is returned when an empty encoding name is resolved.
	ErrEmptyName = errors.New("cellx(resolver): empty encoding name")
	// ErrUnknownEncoding is returned when no strategy knows the name.
	ErrUnknownEncoding = errors.New("cellx(resolver): unknown encoding")
)

// New constructs an apis.Resolver that tries the given strategies in order.
// Nil strategies are ignored. The returned resolver is safe for concurrent use
// provided strategies themselves are safe for concurrent TryResolve calls.
func New(strategies ...apis.Strategy) apis.Resolver {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// Default returns the standard chain: reg (if non-nil), then the IANA index,
// then the WHATWG index.
func Default(reg apis.Registry) apis.Resolver {
	var rs apis.Strategy
	if reg != nil {
		rs = strategy.NewRegistryStrategy(reg)
	}
	return New(rs, strategy.NewIANAStrategy(), strategy.NewHTMLStrategy())
}

// chain is an immutable, order-preserving resolver over a set of strategies.
type chain struct {
	strats []apis.Strategy
}

// Resolve runs strategies in order until one handles the name.
func (r chain) Resolve(name string) (apis.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return apis.Encoding{}, ErrEmptyName
	}
	for _, s := range r.strats {
		if enc, ok := s.TryResolve(name); ok {
			return enc, nil
		}
	}
	return apis.Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}
