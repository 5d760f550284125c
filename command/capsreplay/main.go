// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/presencecache/fault"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "scenario", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		fmt.Printf("%s: version: %s\n", program, version)
		return
	}

	if len(options["help"]) > 0 {
		usage(program)
		return
	}

	if len(arguments) > 0 {
		exitwithstatus.Message("%s: unexpected arguments: %q", program, arguments)
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}
	if 1 != len(options["scenario"]) {
		exitwithstatus.Message("%s: only one scenario option is required, %d were detected", program, len(options["scenario"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	verbose := len(options["verbose"]) > 0
	if verbose {
		theConfiguration.Logging.Console = true
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	if err = fault.Initialise(); nil != err {
		exitwithstatus.Message("%s: fault setup failed with error: %s", program, err)
	}
	defer fault.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	scenarioFile := options["scenario"][0]
	scenario, err := readScenario(scenarioFile)
	if nil != err {
		log.Criticalf("scenario: %q  error: %s", scenarioFile, err)
		exitwithstatus.Message("%s: failed to read scenario from: %q  error: %s", program, scenarioFile, err)
	}
	log.Infof("scenario: %q  events: %d  answers: %d", scenarioFile, len(scenario.Events), len(scenario.Answers))

	summary, err := replay(theConfiguration, scenario, os.Stdout)
	if nil != err {
		log.Criticalf("replay error: %s", err)
		exitwithstatus.Message("%s: replay error: %s", program, err)
	}

	summary.write(os.Stdout)
	if 0 != summary.LeakedRefs {
		exitwithstatus.Exit(1)
	}
}

func usage(program string) {
	fmt.Printf("usage: %s [--verbose] --config-file=FILE --scenario=FILE\n", program)
	fmt.Printf("       %s --version\n", program)
	fmt.Printf("       %s --help\n", program)
	fmt.Printf("\nreplay a scripted presence session through the capability cache\n")
}
