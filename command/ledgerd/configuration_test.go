// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/keychain"
	"github.com/bitmark-inc/ledgerd/validate"
)

func TestGetConfigurationDefaults(t *testing.T) {
	directory, fileName := setupConfiguration(t, `return { data_directory = "." }`)
	defer os.RemoveAll(directory)

	c, err := getConfiguration(fileName, nil)
	require.Nil(t, err, "configuration error")

	dataDirectory, err := filepath.Abs(directory)
	require.Nil(t, err, "absolute path error")

	assert.Equal(t, filepath.Clean(dataDirectory), c.DataDirectory, "data directory")
	assert.Equal(t, filepath.Join(c.DataDirectory, defaultLedgerDatabase), c.Ledger, "ledger")
	assert.Equal(t, filepath.Join(c.DataDirectory, defaultKeychainDirectory), c.Keychain.Directory, "keychain directory")
	assert.Equal(t, filepath.Join(c.DataDirectory, defaultSectorDirectory), c.Sectors.Directory, "sector directory")
	assert.Equal(t, filepath.Join(c.DataDirectory, defaultSpoolDirectory), c.Executor.Spool, "spool directory")
	assert.Equal(t, "", c.PidFile, "pid file")

	for _, d := range []string{c.Keychain.Directory, c.Sectors.Directory, c.Executor.Spool, c.Logging.Directory} {
		info, err := os.Stat(d)
		require.Nil(t, err, "missing directory: %s", d)
		assert.True(t, info.IsDir(), "not a directory: %s", d)
	}

	k := c.keychainOptions()
	assert.Equal(t, uint64(keychain.MaximumFileSize), k.MaximumFileSize, "keychain file size")
	assert.Equal(t, time.Duration(defaultKeyCacheExpiration)*time.Second, k.CacheExpiration, "key cache expiration")

	s := c.sectorOptions()
	assert.False(t, s.WriteBack, "write back")
	assert.Equal(t, uint64(defaultCacheSize), s.Cache.MaximumSize, "cache size")
	assert.Equal(t, time.Duration(defaultCleanInterval)*time.Second, s.Cache.CleanInterval, "clean interval")
	assert.Equal(t, time.Duration(defaultFlushInterval)*time.Second, s.FlushInterval, "flush interval")

	assert.Equal(t, validate.DefaultLimit, c.machineOptions().Limit, "computation limit")
}

func TestGetConfigurationValues(t *testing.T) {
	directory, fileName := setupConfiguration(t, `
local M = {}
M.data_directory = "."
M.pidfile = "ledgerd.pid"
M.ledger = "main"
M.sectors = {
    write_back = true,
    cache_size = 1024 * 1024 * tonumber(cache_megabytes),
    flush_interval = 0,
}
M.executor = {
    computation_limit = 8192,
    spool = "incoming",
}
return M
`)
	defer os.RemoveAll(directory)

	c, err := getConfiguration(fileName, map[string]string{
		"cache_megabytes": "3",
	})
	require.Nil(t, err, "configuration error")

	assert.Equal(t, filepath.Join(c.DataDirectory, "ledgerd.pid"), c.PidFile, "pid file")
	assert.Equal(t, filepath.Join(c.DataDirectory, "main"), c.Ledger, "ledger")
	assert.Equal(t, filepath.Join(c.DataDirectory, "incoming"), c.Executor.Spool, "spool")
	assert.True(t, c.Sectors.WriteBack, "write back")
	assert.Equal(t, uint64(3*1024*1024), c.Sectors.CacheSize, "cache size")
	assert.Equal(t, defaultFlushInterval, c.Sectors.FlushInterval, "flush interval reset")
	assert.Equal(t, 8192, c.machineOptions().Limit, "computation limit")

	// untouched blocks keep their defaults
	assert.Equal(t, filepath.Join(c.DataDirectory, defaultKeychainDirectory), c.Keychain.Directory, "keychain directory")
	assert.Equal(t, defaultPollInterval, c.Executor.PollInterval, "poll interval")
}

func TestGetConfigurationErrors(t *testing.T) {
	items := []struct {
		name string
		text string
	}{
		{"no data directory", `return {}`},
		{"home data directory", `return { data_directory = "~" }`},
		{"missing data directory", `return { data_directory = "/nonexistent/ledgerd" }`},
		{"log file path", `return { data_directory = ".", logging = { file = "log/ledgerd.log" } }`},
		{"computation limit", `return { data_directory = ".", executor = { computation_limit = 0 } }`},
		{"not a table", `return 42`},
	}

	for _, item := range items {
		directory, fileName := setupConfiguration(t, item.text)
		_, err := getConfiguration(fileName, nil)
		assert.NotNil(t, err, item.name)
		_ = os.RemoveAll(directory)
	}
}
