// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/presencecache/disco"
)

// scripted disco peer: nodes with a scenario answer are answered at
// once, others wait for a reply event
type scripted struct {
	sync.Mutex
	log      *logger.L
	answers  map[string]Answer
	requests int
	answered int
}

func newScripted(log *logger.L, answers map[string]Answer) *scripted {
	return &scripted{
		log:     log,
		answers: answers,
	}
}

func (s *scripted) RequestInfo(target string, node string, reply disco.ReplyFunc) {
	s.Lock()
	s.requests += 1
	a, ok := s.answers[node]
	if ok {
		s.answered += 1
	}
	s.Unlock()

	if !ok {
		s.log.Infof("request: %s  node: %q  awaiting scripted reply", target, node)
		return
	}

	s.log.Infof("request: %s  node: %q  answered", target, node)
	reply(answer(target, node, a.Features, a.Error))
}

func (s *scripted) counts() (int, int) {
	s.Lock()
	defer s.Unlock()
	return s.requests, s.answered
}
