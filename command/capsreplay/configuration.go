// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/presencecache/configuration"
	"github.com/bitmark-inc/presencecache/handle"
	"github.com/bitmark-inc/presencecache/messagebus"
)

// basic defaults (directories are relative to the configuration file)
const (
	defaultClientNode    = "http://telepathy.freedesktop.org/caps"
	defaultClientVersion = "0.1"

	defaultLogDirectory = "log"
	defaultLogFile      = "capsreplay.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// Configuration - contents of the Lua configuration file
type Configuration struct {
	SelfJID       string               `gluamapper:"self_jid"`
	ClientNode    string               `gluamapper:"client_node"`
	ClientVersion string               `gluamapper:"client_version"`
	LocalBundles  []string             `gluamapper:"local_bundles"`
	QueueSize     int                  `gluamapper:"queue_size"`
	Logging       logger.Configuration `gluamapper:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		ClientNode:    defaultClientNode,
		ClientVersion: defaultClientVersion,
		QueueSize:     messagebus.DefaultQueueSize,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if _, err := handle.BareJID(options.SelfJID); nil != err {
		return nil, fmt.Errorf("self_jid: %q  error: %s", options.SelfJID, err)
	}

	// log directory relative to the configuration file and must exist
	if !filepath.IsAbs(options.Logging.Directory) {
		options.Logging.Directory = filepath.Join(dataDirectory, options.Logging.Directory)
	}
	if err := os.MkdirAll(options.Logging.Directory, 0700); nil != err {
		return nil, err
	}

	return options, nil
}
