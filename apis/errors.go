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

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned by platforms for operations the target cannot
// perform (e.g. reading stdin inside a sandbox).
var ErrUnsupported = fmt.Errorf("cellx: %w", errors.ErrUnsupported)

// InitError reports that a platform resource could not be constructed.
// Cells surface it verbatim; the failed cell stays empty and retryable.
type InitError struct {
	// Resource names what was being constructed (e.g. "stdout").
	Resource string
	// Platform is the name of the platform that failed.
	Platform string
	// Err is the platform-specific cause.
	Err error
}

// Error implements error.
func (e *InitError) Error() string {
	return fmt.Sprintf("cellx(%s): init %s: %v", e.Platform, e.Resource, e.Err)
}

// Unwrap returns the platform-specific cause.
func (e *InitError) Unwrap() error {
	return e.Err
}
