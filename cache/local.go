// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package cache

import (
	"github.com/bitmark-inc/presencecache/capability"
	"github.com/bitmark-inc/presencecache/fault"
)

// AddBundleCaps - record caps of a bundle id the local client
// advertises; these never need confirmation
func (c *Cache) AddBundleCaps(id string, caps capability.Set) error {
	if !capability.ValidBundleID(id) {
		return fault.ErrInvalidBundleID
	}
	c.registry.Seed(id, c.handles.Inspect(c.self), caps)
	return nil
}

// FillLocalBundles - seed every bundle of the local client
func (c *Cache) FillLocalBundles(node string, version string) error {
	if "" == node {
		return fault.ErrMissingNode
	}
	for id, caps := range capability.LocalBundles(node, version) {
		if err := c.AddBundleCaps(id, caps); nil != err {
			return err
		}
	}
	return nil
}
