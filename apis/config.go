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

// Config carries the console knobs that shape stream construction.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// WriteBufferSize is the buffer size of stdout/stderr writers.
	// Writers auto-flush by default so a small buffer is enough.
	WriteBufferSize int `yaml:"write_buffer_size" validate:"gte=1"`

	// ReadBufferSize is the buffer size of the stdin reader.
	ReadBufferSize int `yaml:"read_buffer_size" validate:"gte=16"`

	// AutoFlush flushes writers after every write.
	AutoFlush bool `yaml:"auto_flush"`

	// InputEncoding names the initial input encoding. Empty means "ask the platform".
	InputEncoding string `yaml:"input_encoding" validate:"omitempty,printascii,max=64"`

	// OutputEncoding names the initial output encoding. Empty means "ask the platform".
	OutputEncoding string `yaml:"output_encoding" validate:"omitempty,printascii,max=64"`
}
