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

package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// errInterrupted is returned by cat when Ctrl-C stops the copy.
var errInterrupted = errors.New("interrupted")

func newCatCmd(rf *rootFlags) *cobra.Command {
	var inEnc, outEnc string
	cmd := &cobra.Command{
		Use:   "cat",
		Short: "Copy standard input to standard output, transcoding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := openConsole(cmd, rf)
			if err != nil {
				return err
			}
			if inEnc != "" {
				if err := c.SetInputEncoding(inEnc); err != nil {
					return err
				}
			}
			if outEnc != "" {
				if err := c.SetOutputEncoding(outEnc); err != nil {
					return err
				}
			}

			in, err := c.Stdin()
			if err != nil {
				return err
			}
			out, err := c.Stdout()
			if err != nil {
				return err
			}

			sig := make(chan os.Signal, 1)
			if err := c.NotifyInterrupt(sig); err != nil {
				return err
			}
			defer c.StopInterrupt(sig)

			done := make(chan error, 1)
			go func() {
				_, err := io.Copy(out, in)
				done <- err
			}()

			select {
			case err = <-done:
			case <-sig:
				err = errInterrupted
			}
			if ferr := c.Flush(); err == nil {
				err = ferr
			}
			return err
		},
	}
	cmd.Flags().StringVar(&inEnc, "input-encoding", "", "Decode standard input with this encoding")
	cmd.Flags().StringVar(&outEnc, "output-encoding", "", "Encode standard output with this encoding")
	return cmd
}
