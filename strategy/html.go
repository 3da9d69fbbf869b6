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
	"golang.org/x/text/encoding/htmlindex"

	"dirpx.dev/cellx/apis"
)

// NewHTMLStrategy creates an apis.Strategy backed by the WHATWG encoding
// index. It accepts the labels browsers accept, which makes it a useful
// last resort for names seen in the wild.
func NewHTMLStrategy() apis.Strategy {
	return htmlStrategy{}
}

type htmlStrategy struct{}

// Ensure htmlStrategy implements apis.Strategy.
var _ apis.Strategy = htmlStrategy{}

// TryResolve looks name up in the WHATWG index.
func (htmlStrategy) TryResolve(name string) (apis.Encoding, bool) {
	if name == "" {
		return apis.Encoding{}, false
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return apis.Encoding{}, false
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = name
	}
	return apis.Encoding{Name: canonical, Encoding: enc}, true
}
