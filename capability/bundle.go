// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package capability

import (
	"strings"
)

// separator between node and token in a bundle id
const bundleSeparator = "#"

// Hint - the capability advertisement carried by a stanza
type Hint struct {
	Node string
	Ver  string
	Ext  string
}

// BundleID - form a bundle id from a node and a ver/ext token
func BundleID(node string, token string) string {
	return node + bundleSeparator + token
}

// BundleIDs - all bundle ids advertised by a hint, one for the
// version and one per extension token
//
// a hint without a node advertises nothing
func (h *Hint) BundleIDs() []string {
	if nil == h || "" == h.Node {
		return nil
	}

	ids := make([]string, 0, 4)
	if "" != h.Ver {
		ids = append(ids, BundleID(h.Node, h.Ver))
	}
	for _, ext := range strings.Split(h.Ext, " ") {
		if "" == ext {
			continue
		}
		ids = append(ids, BundleID(h.Node, ext))
	}
	return ids
}

// ValidBundleID - a bundle id needs a node and a token
func ValidBundleID(id string) bool {
	n := strings.LastIndex(id, bundleSeparator)
	return n > 0 && n < len(id)-1
}
