// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/presencecache/background"
)

// counts until shut down, then records that it saw the signal
type counter struct {
	ticks   int64
	stopped int32
	seen    interface{}
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {
	c.seen = args
	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-tick.C:
			atomic.AddInt64(&c.ticks, 1)
		}
	}
	atomic.StoreInt32(&c.stopped, 1)
}

func TestStartStop(t *testing.T) {
	c1 := &counter{}
	c2 := &counter{}

	p := background.Start(background.Processes{c1, c2}, "args")
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	for i, c := range []*counter{c1, c2} {
		assert.Equal(t, int32(1), atomic.LoadInt32(&c.stopped), "process[%d] not stopped", i)
		assert.True(t, atomic.LoadInt64(&c.ticks) > 0, "process[%d] never ran", i)
		assert.Equal(t, "args", c.seen, "process[%d] wrong args", i)
	}
}

func TestStopTwice(t *testing.T) {
	c := &counter{}

	p := background.Start(background.Processes{c}, nil)
	p.Stop()
	p.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&c.stopped), "process not stopped")
}

func TestStopWhenNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
