// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/background"
	"github.com/bitmark-inc/ledgerd/keychain"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/operation"
	"github.com/bitmark-inc/ledgerd/register"
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
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "define", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'D'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// NAME=VALUE pairs visible to the configuration script
	variables := make(map[string]string)
	for _, d := range options["define"] {
		v := strings.SplitN(d, "=", 2)
		if 2 != len(v) {
			exitwithstatus.Message("%s: define: %q is not NAME=VALUE", program, d)
		}
		variables[v[0]] = v[1]
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// every keychain is owned by the registry
	log.Info("initialise keychain registry")
	registry := keychain.NewRegistry(theConfiguration.Keychain.Directory, theConfiguration.keychainOptions())
	defer registry.Close()

	log.Info("initialise registers")
	registers, err := register.Open(registry, theConfiguration.Sectors.Directory, theConfiguration.sectorOptions())
	if nil != err {
		log.Criticalf("register initialise error: %s", err)
		exitwithstatus.Message("register initialise error: %s", err)
	}
	defer registers.Close()

	log.Info("initialise ledger")
	theLedger, err := ledger.Open(theConfiguration.Ledger, false)
	if nil != err {
		log.Criticalf("ledger initialise error: %s", err)
		exitwithstatus.Message("ledger initialise error: %s", err)
	}
	defer theLedger.Close()

	// these commands are allowed to access the stores
	if len(arguments) > 0 && processDataCommand(arguments, registry, registers, theLedger) {
		return
	}

	log.Info("initialise executor")
	executor, err := operation.New(registers, theLedger, theConfiguration.machineOptions())
	if nil != err {
		log.Criticalf("executor initialise error: %s", err)
		exitwithstatus.Message("executor initialise error: %s", err)
	}

	spool, err := newSpooler(theConfiguration.Executor.Spool, executor, theLedger)
	if nil != err {
		log.Criticalf("spool initialise error: %s", err)
		exitwithstatus.Message("spool initialise error: %s", err)
	}

	// cache budgets follow the configuration file
	reload := func() {
		c, err := getConfiguration(configurationFile, variables)
		if nil != err {
			log.Errorf("failed to read configuration from: %q  error: %s", configurationFile, err)
			return
		}
		registers.Sector().SetCacheSize(c.Sectors.CacheSize)
		log.Infof("cache size: %d", c.Sectors.CacheSize)
	}
	watcher, err := newConfigWatcher(configurationFile, reload)
	if nil != err {
		log.Criticalf("watcher initialise error: %s", err)
		exitwithstatus.Message("watcher initialise error: %s", err)
	}

	processes := background.Start(background.Processes{
		watcher,
		&background.Periodic{
			Interval: time.Duration(theConfiguration.Executor.PollInterval) * time.Second,
			Tick:     spool.tick,
		},
	}, nil)
	defer processes.Stop()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
