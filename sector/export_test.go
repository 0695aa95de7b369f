// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sector

// StopAfterFirstPhase - run only the first phase of a commit, as a
// crash between the phases would leave it
func (db *Database) StopAfterFirstPhase() error {
	db.Lock()
	defer db.Unlock()

	db.inTransaction = false
	_, err := db.prepare()
	return err
}
