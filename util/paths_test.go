// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "./x/../log"), "clean")
}

func TestEnsureDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "util-paths-")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	path, err := util.EnsureDirectory(dir, "a/b")
	assert.Nil(t, err, "ensure directory")
	assert.Equal(t, filepath.Join(dir, "a", "b"), path, "wrong path")

	info, err := os.Stat(path)
	assert.Nil(t, err, "stat")
	assert.True(t, info.IsDir(), "not a directory")

	// a second call is harmless
	_, err = util.EnsureDirectory(dir, "a/b")
	assert.Nil(t, err, "repeat")
}
