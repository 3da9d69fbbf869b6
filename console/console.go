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

package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"dirpx.dev/cellx/apis"
	"dirpx.dev/cellx/builder"
	"dirpx.dev/cellx/cell"
	"dirpx.dev/cellx/config"
	"dirpx.dev/cellx/platform"
	"dirpx.dev/cellx/registry"
	"dirpx.dev/cellx/resolver"
	uref "dirpx.dev/cellx/utils/reflect"
)

// DomainName is the name of the cell domain of every Console.
const DomainName = "console"

// Cell names, as reported by Snapshot.
const (
	CellStdin            = "stdin"
	CellStdout           = "stdout"
	CellStderr           = "stderr"
	CellInputEncoding    = "input-encoding"
	CellOutputEncoding   = "output-encoding"
	CellStdinRedirected  = "stdin-redirected"
	CellStdoutRedirected = "stdout-redirected"
	CellStderrRedirected = "stderr-redirected"
	CellInterrupt        = "interrupt"
)

// Console is a process console: standard streams, their encodings,
// redirection flags and interrupt subscriptions, each held in a cell of one
// domain. A Console is safe for concurrent use.
type Console struct {
	pal apis.Platform
	bld apis.Builder
	res apis.Resolver
	cfg apis.Config
	log *slog.Logger

	d *cell.Domain

	inEnc  *cell.Cell[apis.Encoding]
	outEnc *cell.Cell[apis.Encoding]

	stdin  *cell.Cell[apis.Reader]
	stdout *cell.Cell[apis.Writer]
	stderr *cell.Cell[apis.Writer]

	stdinRedir  *cell.Cell[bool]
	stdoutRedir *cell.Cell[bool]
	stderrRedir *cell.Cell[bool]

	interrupt *cell.Cell[*registrar]
}

// New constructs a Console. Nothing is opened until first use.
func New(opts ...Option) (*Console, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.platform == nil {
		o.platform = platform.NewOS()
	}
	if o.builder == nil {
		o.builder = builder.New()
	}
	if o.resolver == nil {
		o.resolver = resolver.Default(registry.New())
	}
	cfg := config.DefaultConfig()
	if o.config != nil {
		cfg = *o.config
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	c := &Console{
		pal: o.platform,
		bld: o.builder,
		res: o.resolver,
		cfg: cfg,
		log: o.logger.With(slog.String("platform", o.platform.Name())),
	}
	c.d = cell.NewDomain(DomainName, cell.WithLogger(c.log), cell.WithObserver(o.observer))

	c.inEnc = cell.New(c.d, CellInputEncoding, c.encodingFactory(CellInputEncoding, cfg.InputEncoding, c.pal.InputEncoding))
	c.outEnc = cell.New(c.d, CellOutputEncoding, c.encodingFactory(CellOutputEncoding, cfg.OutputEncoding, c.pal.OutputEncoding))

	c.stdin = cell.New(c.d, CellStdin, c.readStdin, cell.WithPreInit(c.pal.EnsureInitialized))
	c.stdout = cell.New(c.d, CellStdout, c.writerFactory(CellStdout, c.pal.OpenStandardOutput))
	c.stderr = cell.New(c.d, CellStderr, c.writerFactory(CellStderr, c.pal.OpenStandardError))

	c.stdinRedir = cell.New(c.d, CellStdinRedirected, redirected(c.pal.IsInputRedirected))
	c.stdoutRedir = cell.New(c.d, CellStdoutRedirected, redirected(c.pal.IsOutputRedirected))
	c.stderrRedir = cell.New(c.d, CellStderrRedirected, redirected(c.pal.IsErrorRedirected))

	c.interrupt = cell.New(c.d, CellInterrupt, func(*cell.Tx) (*registrar, error) {
		return &registrar{}, nil
	}, cell.WithPreInit(c.pal.EnsureInitialized))

	return c, nil
}

// encodingFactory resolves the configured name, or else the platform's.
// An unknown platform name falls back to UTF-8; an unknown configured name
// is an error.
func (c *Console) encodingFactory(resource, configured string, current func() (string, error)) cell.Factory[apis.Encoding] {
	return func(*cell.Tx) (apis.Encoding, error) {
		if configured != "" {
			return c.res.Resolve(configured)
		}
		name, err := current()
		if err != nil {
			return apis.Encoding{}, &apis.InitError{Resource: resource, Platform: c.pal.Name(), Err: err}
		}
		enc, err := c.res.Resolve(name)
		if err != nil {
			c.log.LogAttrs(context.Background(), slog.LevelWarn, "unknown platform encoding, using utf-8",
				slog.String("cell", resource), slog.String("encoding", name))
			return apis.UTF8, nil
		}
		return enc, nil
	}
}

func (c *Console) writerFactory(name string, open func() (io.Writer, error)) cell.Factory[apis.Writer] {
	return func(tx *cell.Tx) (apis.Writer, error) {
		enc, err := c.outEnc.GetIn(tx)
		if err != nil {
			return nil, err
		}
		w, err := open()
		if err != nil {
			return nil, &apis.InitError{Resource: name, Platform: c.pal.Name(), Err: err}
		}
		return c.bld.BuildWriter(c.cfg, name, w, enc), nil
	}
}

func (c *Console) readStdin(tx *cell.Tx) (apis.Reader, error) {
	enc, err := c.inEnc.GetIn(tx)
	if err != nil {
		return nil, err
	}
	r, err := c.pal.OpenStandardInput()
	if err != nil {
		return nil, &apis.InitError{Resource: CellStdin, Platform: c.pal.Name(), Err: err}
	}
	return c.bld.BuildReader(c.cfg, CellStdin, r, enc), nil
}

func redirected(query func() (bool, error)) cell.Factory[bool] {
	return func(*cell.Tx) (bool, error) {
		return query()
	}
}

// Platform returns the console's platform.
func (c *Console) Platform() apis.Platform {
	return c.pal
}

// Config returns the console's configuration.
func (c *Console) Config() apis.Config {
	return c.cfg
}

// Domain returns the cell domain of the console.
func (c *Console) Domain() *cell.Domain {
	return c.d
}

// Snapshot returns the status of every console cell.
func (c *Console) Snapshot() []cell.Status {
	return c.d.Snapshot()
}

// Stdout returns the standard output writer, opening it on first use.
func (c *Console) Stdout() (apis.Writer, error) {
	return c.stdout.Get()
}

// Stderr returns the standard error writer, opening it on first use.
func (c *Console) Stderr() (apis.Writer, error) {
	return c.stderr.Get()
}

// Stdin returns the standard input reader, opening it on first use.
func (c *Console) Stdin() (apis.Reader, error) {
	return c.stdin.Get()
}

// SetStdout replaces standard output with w. The writer is synchronized and
// survives encoding changes until the next SetStdout.
func (c *Console) SetStdout(w io.Writer) error {
	return setWriter(c, c.stdout, CellStdout, w)
}

// SetStderr replaces standard error with w.
func (c *Console) SetStderr(w io.Writer) error {
	return setWriter(c, c.stderr, CellStderr, w)
}

// SetStdin replaces standard input with r until the next SetStdin or
// SetInputEncoding.
func (c *Console) SetStdin(r io.Reader) error {
	if uref.IsNil(r) {
		return cell.ErrNilValue
	}
	return c.stdin.Set(c.bld.SyncReader(CellStdin, r))
}

func setWriter(c *Console, target *cell.Cell[apis.Writer], name string, w io.Writer) error {
	if uref.IsNil(w) {
		return cell.ErrNilValue
	}
	return target.Set(c.bld.SyncWriter(name, w))
}

// OutputEncoding returns the encoding of Stdout and Stderr.
func (c *Console) OutputEncoding() (apis.Encoding, error) {
	return c.outEnc.Get()
}

// InputEncoding returns the encoding of Stdin.
func (c *Console) InputEncoding() (apis.Encoding, error) {
	return c.inEnc.Get()
}

// SetOutputEncoding switches the output encoding. Writers opened by the
// console are flushed and dropped in the same critical section, so the next
// write reopens them with the new encoding. Writers set with SetStdout or
// SetStderr are kept.
func (c *Console) SetOutputEncoding(name string) error {
	enc, err := c.res.Resolve(name)
	if err != nil {
		return err
	}
	err = c.d.Update(func(tx *cell.Tx) error {
		for _, w := range []*cell.Cell[apis.Writer]{c.stdout, c.stderr} {
			cur, ok := w.PeekIn(tx)
			if !ok || w.Pinned() {
				continue
			}
			if err := cur.Flush(); err != nil {
				return fmt.Errorf("cellx(console): flush %s: %w", w.Name(), err)
			}
		}
		if err := c.pal.SetOutputEncoding(enc.Name); err != nil {
			return err
		}
		for _, w := range []*cell.Cell[apis.Writer]{c.stdout, c.stderr} {
			if !w.Pinned() {
				w.InvalidateIn(tx)
			}
		}
		return c.outEnc.SetIn(tx, enc)
	})
	if err != nil {
		return err
	}
	c.log.LogAttrs(context.Background(), slog.LevelDebug, "output encoding changed", slog.String("encoding", enc.Name))
	return nil
}

// SetInputEncoding switches the input encoding. The current reader is
// dropped along with any input it had buffered, including one set with
// SetStdin; the next read reopens the platform input with the new encoding.
func (c *Console) SetInputEncoding(name string) error {
	enc, err := c.res.Resolve(name)
	if err != nil {
		return err
	}
	err = c.d.Update(func(tx *cell.Tx) error {
		if err := c.pal.SetInputEncoding(enc.Name); err != nil {
			return err
		}
		c.stdin.InvalidateIn(tx)
		return c.inEnc.SetIn(tx, enc)
	})
	if err != nil {
		return err
	}
	c.log.LogAttrs(context.Background(), slog.LevelDebug, "input encoding changed", slog.String("encoding", enc.Name))
	return nil
}

// IsInputRedirected reports whether standard input is not a terminal.
// The answer is cached until RefreshRedirection.
func (c *Console) IsInputRedirected() (bool, error) {
	return c.stdinRedir.Get()
}

// IsOutputRedirected reports whether standard output is not a terminal.
func (c *Console) IsOutputRedirected() (bool, error) {
	return c.stdoutRedir.Get()
}

// IsErrorRedirected reports whether standard error is not a terminal.
func (c *Console) IsErrorRedirected() (bool, error) {
	return c.stderrRedir.Get()
}

// RefreshRedirection forgets the cached redirection flags.
func (c *Console) RefreshRedirection() {
	_ = c.d.Update(func(tx *cell.Tx) error {
		c.stdinRedir.InvalidateIn(tx)
		c.stdoutRedir.InvalidateIn(tx)
		c.stderrRedir.InvalidateIn(tx)
		return nil
	})
}

// OpenStandardInput returns the raw platform input stream, bypassing the
// console's reader. bufferSize must not be negative and is otherwise unused.
func (c *Console) OpenStandardInput(bufferSize int) (io.Reader, error) {
	if bufferSize < 0 {
		return nil, ErrNegativeBufferSize
	}
	r, err := c.pal.OpenStandardInput()
	if err != nil {
		return nil, err
	}
	if r == nil {
		return strings.NewReader(""), nil
	}
	return r, nil
}

// OpenStandardOutput returns the raw platform output stream.
func (c *Console) OpenStandardOutput(bufferSize int) (io.Writer, error) {
	return openWriter(bufferSize, c.pal.OpenStandardOutput)
}

// OpenStandardError returns the raw platform error stream.
func (c *Console) OpenStandardError(bufferSize int) (io.Writer, error) {
	return openWriter(bufferSize, c.pal.OpenStandardError)
}

func openWriter(bufferSize int, open func() (io.Writer, error)) (io.Writer, error) {
	if bufferSize < 0 {
		return nil, ErrNegativeBufferSize
	}
	w, err := open()
	if err != nil {
		return nil, err
	}
	if w == nil {
		return io.Discard, nil
	}
	return w, nil
}

// Print formats a as fmt.Print does and writes it to Stdout.
func (c *Console) Print(a ...any) (int, error) {
	w, err := c.Stdout()
	if err != nil {
		return 0, err
	}
	return fmt.Fprint(w, a...)
}

// Println formats a as fmt.Println does and writes it to Stdout.
func (c *Console) Println(a ...any) (int, error) {
	w, err := c.Stdout()
	if err != nil {
		return 0, err
	}
	return fmt.Fprintln(w, a...)
}

// Printf formats as fmt.Printf does and writes to Stdout.
func (c *Console) Printf(format string, a ...any) (int, error) {
	w, err := c.Stdout()
	if err != nil {
		return 0, err
	}
	return fmt.Fprintf(w, format, a...)
}

// ReadLine reads one line from Stdin.
func (c *Console) ReadLine() (string, error) {
	r, err := c.Stdin()
	if err != nil {
		return "", err
	}
	return r.ReadLine()
}

// Flush flushes Stdout and Stderr if they are open.
func (c *Console) Flush() error {
	var g errgroup.Group
	for _, w := range []*cell.Cell[apis.Writer]{c.stdout, c.stderr} {
		if cur, ok := w.Peek(); ok {
			g.Go(cur.Flush)
		}
	}
	return g.Wait()
}
