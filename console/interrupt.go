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
	"os"
	"slices"

	"dirpx.dev/cellx/cell"
)

// registrar is the published interrupt subscription state. It is replaced,
// never modified.
type registrar struct {
	relay chan os.Signal
	done  chan struct{}
	subs  []chan<- os.Signal
}

// NotifyInterrupt relays interrupt signals (Ctrl-C) to ch. Like
// signal.Notify, sends do not block: ch should be buffered. The first
// subscription registers the platform handler.
func (c *Console) NotifyInterrupt(ch chan<- os.Signal) error {
	if ch == nil {
		return cell.ErrNilValue
	}
	// Populates the registrar cell, running platform setup outside the lock.
	if _, err := c.interrupt.Get(); err != nil {
		return err
	}
	return c.d.Update(func(tx *cell.Tx) error {
		cur, err := c.interrupt.GetIn(tx)
		if err != nil {
			return err
		}
		if slices.Contains(cur.subs, ch) {
			return nil
		}
		next := &registrar{relay: cur.relay, done: cur.done}
		if next.relay == nil {
			next.relay = make(chan os.Signal, 1)
			next.done = make(chan struct{})
			if err := c.pal.NotifyInterrupt(next.relay); err != nil {
				return err
			}
			go c.relayInterrupts(next.relay, next.done)
		}
		next.subs = append(slices.Clone(cur.subs), ch)
		return c.interrupt.SetIn(tx, next)
	})
}

// StopInterrupt stops relaying to ch. The last unsubscription unregisters
// the platform handler.
func (c *Console) StopInterrupt(ch chan<- os.Signal) {
	_ = c.d.Update(func(tx *cell.Tx) error {
		cur, ok := c.interrupt.PeekIn(tx)
		if !ok {
			return nil
		}
		i := slices.Index(cur.subs, ch)
		if i < 0 {
			return nil
		}
		subs := slices.Delete(slices.Clone(cur.subs), i, i+1)
		if len(subs) == 0 {
			c.pal.StopInterrupt(cur.relay)
			close(cur.done)
			c.interrupt.ResetIn(tx)
			return nil
		}
		return c.interrupt.SetIn(tx, &registrar{relay: cur.relay, done: cur.done, subs: subs})
	})
}

func (c *Console) relayInterrupts(relay <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case sig := <-relay:
			r, ok := c.interrupt.Peek()
			if !ok {
				continue
			}
			for _, sub := range r.subs {
				select {
				case sub <- sig:
				default:
				}
			}
		}
	}
}
