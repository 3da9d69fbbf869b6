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

package apis

import "time"

// Observer receives cell lifecycle events.
//
// Observers are invoked while the domain lock is held: they must be cheap and
// must not call back into cells of the reporting domain.
type Observer interface {
	// Populated is called after a factory published a value.
	Populated(domain, cell string, took time.Duration)
	// Failed is called when a pre-init hook or factory returned an error.
	Failed(domain, cell string, err error)
	// Invalidated is called when a cached value was dropped.
	Invalidated(domain, cell string)
	// Replaced is called when a caller replaced the value explicitly.
	Replaced(domain, cell string)
}
