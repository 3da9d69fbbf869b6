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

package metrics

import (
	"time"

	"dirpx.dev/cellx/apis"
)

// Multi returns an observer that forwards every event to each non-nil
// observer, in order.
func Multi(observers ...apis.Observer) apis.Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multi []apis.Observer

// Populated forwards to every observer.
func (m multi) Populated(domain, cell string, took time.Duration) {
	for _, o := range m {
		o.Populated(domain, cell, took)
	}
}

// Failed forwards to every observer.
func (m multi) Failed(domain, cell string, err error) {
	for _, o := range m {
		o.Failed(domain, cell, err)
	}
}

// Invalidated forwards to every observer.
func (m multi) Invalidated(domain, cell string) {
	for _, o := range m {
		o.Invalidated(domain, cell)
	}
}

// Replaced forwards to every observer.
func (m multi) Replaced(domain, cell string) {
	for _, o := range m {
		o.Replaced(domain, cell)
	}
}
