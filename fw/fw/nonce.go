/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import "math/rand"

// freshNonce returns a nonce guaranteed to differ from avoid.
func freshNonce(avoid uint32) uint32 {
	for {
		n := rand.Uint32()
		if n != avoid {
			return n
		}
	}
}
