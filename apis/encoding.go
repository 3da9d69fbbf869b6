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
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is a named text encoding.
// The zero value is treated as UTF-8.
type Encoding struct {
	// Name is the canonical name reported by the strategy that resolved it.
	Name string
	// Encoding performs the conversion. nil means UTF-8.
	encoding.Encoding
}

// UTF8 is the encoding used when nothing else is known.
var UTF8 = Encoding{Name: "utf-8", Encoding: unicode.UTF8}

// IsUTF8 reports whether e needs no transcoding.
func (e Encoding) IsUTF8() bool {
	return e.Encoding == nil || e.Encoding == unicode.UTF8
}

// String returns the encoding name.
func (e Encoding) String() string {
	if e.Name == "" {
		return UTF8.Name
	}
	return e.Name
}
