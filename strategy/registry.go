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

package strategy

import (
	"dirpx.dev/cellx/apis"
	"dirpx.dev/cellx/registry"
)

// NewRegistryStrategy creates an apis.Strategy that consults an apis.Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults caller-registered encodings first, so that
// applications can shadow or extend the standard indexes.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryResolve looks name up in the registry.
func (s *registryStrategy) TryResolve(name string) (apis.Encoding, bool) {
	if name == "" || s.reg == nil {
		return apis.Encoding{}, false
	}
	enc, ok := s.reg.Lookup(name)
	if !ok {
		return apis.Encoding{}, false
	}
	return apis.Encoding{Name: registry.NormalizeName(name), Encoding: enc}, true
}
