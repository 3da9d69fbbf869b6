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

package resolver_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"dirpx.dev/cellx/apis"
	"dirpx.dev/cellx/registry"
	"dirpx.dev/cellx/resolver"
)

// fixed is a strategy that handles exactly one name.
type fixed struct {
	name  string
	enc   apis.Encoding
	calls int
}

func (f *fixed) TryResolve(name string) (apis.Encoding, bool) {
	f.calls++
	if name == f.name {
		return f.enc, true
	}
	return apis.Encoding{}, false
}

func TestResolve_Order(t *testing.T) {
	first := &fixed{name: "x", enc: apis.Encoding{Name: "first"}}
	second := &fixed{name: "x", enc: apis.Encoding{Name: "second"}}
	r := resolver.New(nil, first, nil, second)

	got, err := r.Resolve(" x ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Name != "first" {
		t.Fatalf("Resolve = %q, want first strategy's answer", got.Name)
	}
	if second.calls != 0 {
		t.Fatalf("second strategy consulted after first handled the name")
	}
}

func TestResolve_Errors(t *testing.T) {
	r := resolver.New()
	if _, err := r.Resolve("  "); !errors.Is(err, resolver.ErrEmptyName) {
		t.Fatalf("Resolve(blank) err = %v, want ErrEmptyName", err)
	}
	_, err := r.Resolve("klingon")
	if !errors.Is(err, resolver.ErrUnknownEncoding) {
		t.Fatalf("Resolve(klingon) err = %v, want ErrUnknownEncoding", err)
	}
	if !strings.Contains(err.Error(), "klingon") {
		t.Fatalf("error does not name the encoding: %v", err)
	}
}

func TestDefault_RegistryShadowsIndexes(t *testing.T) {
	reg := registry.New()
	if err := reg.Register("latin1", charmap.ISO8859_15); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r := resolver.Default(reg)

	got, err := r.Resolve("latin1")
	if err != nil {
		t.Fatalf("Resolve(latin1): %v", err)
	}
	if got.Encoding != charmap.ISO8859_15 {
		t.Fatalf("registry entry not preferred: %+v", got)
	}

	got, err = r.Resolve("UTF-8")
	if err != nil || !got.IsUTF8() {
		t.Fatalf("Resolve(UTF-8) = %+v, %v", got, err)
	}

	// A WHATWG label for UTF-8.
	got, err = resolver.Default(nil).Resolve("unicode-1-1-utf-8")
	if err != nil || !got.IsUTF8() {
		t.Fatalf("Resolve(unicode-1-1-utf-8) = %+v, %v", got, err)
	}
}
