// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"
	"time"

	"github.com/bitmark-inc/ledgerd/background"
)

func Example() {

	p := background.Start(background.Processes{
		&background.Periodic{
			Interval: time.Hour,
			Tick:     func() { fmt.Println("tick") },
		},
	}, nil)

	// Stop blocks until the loop has observed shutdown
	p.Stop()
	fmt.Println("stopped")

	// Output:
	// stopped
}
