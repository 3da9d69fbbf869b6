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
	"golang.org/x/text/encoding/ianaindex"

	"dirpx.dev/cellx/apis"
)

// NewIANAStrategy creates an apis.Strategy backed by the IANA character set
// registry. Names and aliases are matched case-insensitively; the reported
// name is the preferred MIME name when one exists.
func NewIANAStrategy() apis.Strategy {
	return ianaStrategy{}
}

type ianaStrategy struct{}

// Ensure ianaStrategy implements apis.Strategy.
var _ apis.Strategy = ianaStrategy{}

// TryResolve looks name up in the IANA index.
func (ianaStrategy) TryResolve(name string) (apis.Encoding, bool) {
	if name == "" {
		return apis.Encoding{}, false
	}
	enc, err := ianaindex.IANA.Encoding(name)
	// Known but unsupported character sets come back as (nil, nil).
	if err != nil || enc == nil {
		return apis.Encoding{}, false
	}

	canonical, err := ianaindex.MIME.Name(enc)
	if err != nil || canonical == "" {
		if canonical, err = ianaindex.IANA.Name(enc); err != nil {
			canonical = name
		}
	}
	return apis.Encoding{Name: canonical, Encoding: enc}, true
}
