// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/ledgerd/cachepool"
	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/keychain"
	"github.com/bitmark-inc/ledgerd/sector"
	"github.com/bitmark-inc/ledgerd/util"
	"github.com/bitmark-inc/ledgerd/validate"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeychainDirectory = "keychain"
	defaultSectorDirectory   = "sectors"
	defaultLedgerDatabase    = "ledgerd"
	defaultSpoolDirectory    = "spool"

	defaultKeyCacheExpiration = 300 // seconds
	defaultCacheSize          = 64 * 1024 * 1024
	defaultCleanInterval      = 10 // seconds
	defaultFlushInterval      = 5  // seconds
	defaultPollInterval       = 2  // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		"main":            "info",
		logger.DefaultTag: "critical",
	}
)

type KeychainType struct {
	Directory       string `gluamapper:"directory" json:"directory"`
	MaximumFileSize uint64 `gluamapper:"maximum_file_size" json:"maximum_file_size"`
	CacheExpiration int    `gluamapper:"cache_expiration" json:"cache_expiration"`
}

type SectorType struct {
	Directory       string `gluamapper:"directory" json:"directory"`
	MaximumFileSize uint64 `gluamapper:"maximum_file_size" json:"maximum_file_size"`
	WriteBack       bool   `gluamapper:"write_back" json:"write_back"`
	FlushInterval   int    `gluamapper:"flush_interval" json:"flush_interval"`
	CacheSize       uint64 `gluamapper:"cache_size" json:"cache_size"`
	CleanInterval   int    `gluamapper:"clean_interval" json:"clean_interval"`
}

type ExecutorType struct {
	ComputationLimit int    `gluamapper:"computation_limit" json:"computation_limit"`
	Spool            string `gluamapper:"spool" json:"spool"`
	PollInterval     int    `gluamapper:"poll_interval" json:"poll_interval"`
}

type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Ledger        string               `gluamapper:"ledger" json:"ledger"`
	Keychain      KeychainType         `gluamapper:"keychain" json:"keychain"`
	Sectors       SectorType           `gluamapper:"sectors" json:"sectors"`
	Executor      ExecutorType         `gluamapper:"executor" json:"executor"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Ledger:        defaultLedgerDatabase,

		Keychain: KeychainType{
			Directory:       defaultKeychainDirectory,
			MaximumFileSize: keychain.MaximumFileSize,
			CacheExpiration: defaultKeyCacheExpiration,
		},

		Sectors: SectorType{
			Directory:       defaultSectorDirectory,
			MaximumFileSize: keychain.MaximumFileSize,
			WriteBack:       false,
			FlushInterval:   defaultFlushInterval,
			CacheSize:       defaultCacheSize,
			CleanInterval:   defaultCleanInterval,
		},

		Executor: ExecutorType{
			ComputationLimit: validate.DefaultLimit,
			Spool:            defaultSpoolDirectory,
			PollInterval:     defaultPollInterval,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options, variables); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// out of range numbers revert to their defaults
	if options.Keychain.CacheExpiration <= 0 {
		options.Keychain.CacheExpiration = defaultKeyCacheExpiration
	}
	if options.Sectors.FlushInterval <= 0 {
		options.Sectors.FlushInterval = defaultFlushInterval
	}
	if options.Sectors.CleanInterval <= 0 {
		options.Sectors.CleanInterval = defaultCleanInterval
	}
	if options.Executor.PollInterval <= 0 {
		options.Executor.PollInterval = defaultPollInterval
	}
	if options.Executor.ComputationLimit <= 0 {
		return nil, fmt.Errorf("Executor: computation limit: %d must be positive", options.Executor.ComputationLimit)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// the ledger name is a path prefix, the database adds its own suffix
	options.Ledger = util.EnsureAbsolute(options.DataDirectory, options.Ledger)

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator
	mustNotBePaths := []*string{
		&options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Keychain.Directory,
		&options.Sectors.Directory,
		&options.Executor.Spool,
		&options.Logging.Directory,
	} {
		*d, err = util.EnsureDirectory(options.DataDirectory, *d)
		if nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

func (c *Configuration) keychainOptions() keychain.Options {
	return keychain.Options{
		MaximumFileSize: c.Keychain.MaximumFileSize,
		CacheExpiration: time.Duration(c.Keychain.CacheExpiration) * time.Second,
	}
}

func (c *Configuration) sectorOptions() sector.Options {
	return sector.Options{
		MaximumFileSize: c.Sectors.MaximumFileSize,
		WriteBack:       c.Sectors.WriteBack,
		FlushInterval:   time.Duration(c.Sectors.FlushInterval) * time.Second,
		Cache: cachepool.Options{
			MaximumSize:   c.Sectors.CacheSize,
			CleanInterval: time.Duration(c.Sectors.CleanInterval) * time.Second,
		},
	}
}

func (c *Configuration) machineOptions() validate.Options {
	return validate.Options{
		Limit: c.Executor.ComputationLimit,
	}
}
