// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package disco - service discovery requests for capability bundles
//
// The transport is supplied by the caller as a Requester; this package
// computes request targets, maps returned features to capability flags
// and keeps request metrics.
package disco
