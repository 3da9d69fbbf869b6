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

import "errors"

var (
	// ErrNilValue is returned when a nil value is passed to Set.
	ErrNilValue = errors.New("cellx(cell): nil value provided")
	// ErrNilFactory is raised when a cell is constructed without a factory.
	ErrNilFactory = errors.New("cellx(cell): nil factory provided")
	// ErrForeignTx is raised when a Tx is used with a cell of another domain,
	// or after the Update that created it has returned.
	ErrForeignTx = errors.New("cellx(cell): transaction does not belong to this domain")
)
