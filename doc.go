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

// Package cellx provides a process-wide console whose streams, encodings and
// terminal state are lazily built, cached and replaceable.
//
// # Design
//
// Every piece of console state lives in a cell (package cell): a value built
// by a factory on first use and cached for every later caller. The cells of
// a console share one domain lock, so that changing the output encoding and
// dropping the writers that depend on it are observed atomically.
//
//	cellx.Println("hello")             // opens stdout on first use
//	cellx.SetOutputEncoding("latin1")  // flushes and drops stdout
//	cellx.Println("héllo")             // reopens stdout, encoding to ISO-8859-1
//
// Reads are lock-free once a cell is populated. Writes take the domain lock
// for a short critical section.
//
// # Layers
//
//   - cell: the lazy shared resource cell and its domain.
//   - console: a Console built from cells over an apis.Platform.
//   - platform: the OS platform and a terminal-less Sandbox.
//   - registry, strategy, resolver: encoding name resolution (custom
//     registry, then the IANA index, then the WHATWG index).
//   - builder: synchronized, buffered, transcoding streams.
//   - config: buffer sizes, auto-flush and encodings, loadable from YAML.
//   - metrics: a Prometheus observer of cell lifecycle events.
//
// # Default console
//
// The package publishes one Console in an atomic snapshot, the same way for
// every reader. SetDefault and Reset swap in a new one; tests use them to
// install a console over a fake platform:
//
//	old := cellx.Default()
//	defer cellx.SetDefault(old)
//	_ = cellx.Reset(console.WithPlatform(platform.NewSandbox(&buf, nil)))
//
// # Pinning
//
// Writers installed with SetStdout or SetStderr are pinned: an output
// encoding change does not replace them. Console-opened writers are rebuilt
// with the new encoding on next use. An input encoding change always drops
// the current reader, including one installed with SetStdin.
package cellx
