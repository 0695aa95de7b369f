// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/fault"
)

type cacheType struct {
	MaximumSize uint64 `gluamapper:"maximum_size"`
	Interval    int    `gluamapper:"interval"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Name          string            `gluamapper:"name"`
	WriteBack     bool              `gluamapper:"write_back"`
	Cache         cacheType         `gluamapper:"cache"`
	Levels        map[string]string `gluamapper:"levels"`
}

func writeConfiguration(t *testing.T, text string) (string, func()) {
	directory, err := ioutil.TempDir("", "configuration")
	require.Nil(t, err, "temporary directory error")

	fileName := filepath.Join(directory, "test.conf")
	err = ioutil.WriteFile(fileName, []byte(text), 0600)
	require.Nil(t, err, "write configuration error")

	return fileName, func() {
		_ = os.RemoveAll(directory)
	}
}

func TestParse(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `
local M = {}
M.data_directory = "."
M.name = instance .. "-registers"
M.write_back = true
M.cache = {
    maximum_size = 64 * 1024 * 1024,
    interval = 30,
}
M.levels = {
    main = "info",
    DEFAULT = "critical",
}
return M
`)
	defer cleanup()

	config := &testConfiguration{
		DataDirectory: "unset",
		Cache: cacheType{
			Interval: 5,
		},
	}
	err := configuration.ParseConfigurationFile(fileName, config, map[string]string{
		"instance": "node1",
	})
	require.Nil(t, err, "parse error")

	assert.Equal(t, ".", config.DataDirectory, "data directory")
	assert.Equal(t, "node1-registers", config.Name, "name")
	assert.True(t, config.WriteBack, "write back")
	assert.Equal(t, uint64(64*1024*1024), config.Cache.MaximumSize, "cache size")
	assert.Equal(t, 30, config.Cache.Interval, "cache interval")
	assert.Equal(t, "info", config.Levels["main"], "main level")
	assert.Equal(t, "critical", config.Levels["DEFAULT"], "default level")
}

func TestParseKeepsDefaults(t *testing.T) {
	fileName, cleanup := writeConfiguration(t, `return { name = arg[0] }`)
	defer cleanup()

	config := &testConfiguration{
		DataDirectory: "/var/lib/ledgerd",
		Cache: cacheType{
			Interval: 5,
		},
	}
	err := configuration.ParseConfigurationFile(fileName, config, nil)
	require.Nil(t, err, "parse error")

	assert.Equal(t, fileName, config.Name, "arg[0]")
	assert.Equal(t, "/var/lib/ledgerd", config.DataDirectory, "data directory")
	assert.Equal(t, 5, config.Cache.Interval, "cache interval")
}

func TestParseErrors(t *testing.T) {
	config := &testConfiguration{}

	fileName, cleanup := writeConfiguration(t, `return "not a table"`)
	defer cleanup()
	err := configuration.ParseConfigurationFile(fileName, config, nil)
	assert.Equal(t, fault.ErrInvalidConfiguration, err, "string result")

	badSyntax, cleanupSyntax := writeConfiguration(t, `return {`)
	defer cleanupSyntax()
	err = configuration.ParseConfigurationFile(badSyntax, config, nil)
	assert.NotNil(t, err, "syntax error accepted")

	err = configuration.ParseConfigurationFile(fileName, *config, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "non-pointer")

	err = configuration.ParseConfigurationFile(filepath.Join(os.TempDir(), "ledgerd-missing.conf"), config, nil)
	assert.NotNil(t, err, "missing file accepted")
}
