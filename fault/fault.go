// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ExistsError("already initialised")
	ErrDiscoFailed          = ProcessError("disco request failed")
	ErrInvalidAddress       = InvalidError("invalid address")
	ErrInvalidBundleID      = InvalidError("invalid capability bundle id")
	ErrInvalidConfiguration = InvalidError("configuration did not return a table")
	ErrInvalidHandle        = InvalidError("invalid handle")
	ErrInvalidLoggerChannel = InvalidError("invalid logger channel")
	ErrInvalidScenario      = InvalidError("invalid scenario")
	ErrInvalidStructPointer = InvalidError("invalid struct pointer")
	ErrMissingFrom          = InvalidError("stanza has no from address")
	ErrMissingNode          = InvalidError("missing capability node")
	ErrNotAccepting         = ProcessError("cache is not accepting stanzas")
	ErrNotInitialised       = NotFoundError("not initialised")
	ErrSelfStanza           = InvalidError("stanza from own address")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
