// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// configWatcher - calls reload whenever the configuration file changes
//
// the parent directory is watched so that editors which replace the
// file by rename are still seen
type configWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	fileName string
	reload   func()
}

func newConfigWatcher(targetFile string, reload func()) (*configWatcher, error) {
	log := logger.New("watcher")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}

	fileName, err := filepath.Abs(filepath.Clean(targetFile))
	if nil != err {
		log.Errorf("parse file %s error: %s", targetFile, err)
		return nil, err
	}

	if _, err := os.Stat(fileName); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(fileName))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		_ = watcher.Close()
		return nil, err
	}

	return &configWatcher{
		log:      log,
		watcher:  watcher,
		fileName: fileName,
		reload:   reload,
	}, nil
}

// Run - background loop, the watcher is closed on shutdown
func (w *configWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	defer w.watcher.Close()

	for {
		select {
		case <-shutdown:
			w.log.Info("shutting down")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.fileName) {
				continue
			}
			w.log.Debugf("file event: %v", event)
			if watcherEventFileChange(event) {
				w.log.Infof("configuration changed: %q", w.fileName)
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
