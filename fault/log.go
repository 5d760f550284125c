// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/bitmark-inc/logger"
)

// channel for messages that must reach the log whatever the caller's
// own channel is doing
var log *logger.L

// Initialise - open the PANIC logger channel
func Initialise() error {
	if nil != log {
		return ErrAlreadyInitialised
	}
	log = logger.New("PANIC")
	if nil == log {
		return ErrInvalidLoggerChannel
	}
	return nil
}

// Finalise - flush the PANIC channel
func Finalise() {
	if nil == log {
		return
	}
	log.Flush()
	log = nil
}

// Criticalf - report a broken invariant together with the caller's
// location; the caller abandons the operation and carries on
func Criticalf(format string, arguments ...interface{}) {
	message := fmt.Sprintf(format, arguments...)
	if _, file, line, ok := runtime.Caller(1); ok {
		message = fmt.Sprintf("%s:%d: %s", filepath.Base(file), line, message)
	}

	if nil == log {
		fmt.Printf("*** %s\n", message)
		return
	}
	log.Critical(message)
	log.Flush()
}
