/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "github.com/named-data/ndnd-pathsel/fw/defn"

// Face is the send-side contract a strategy needs. The face I/O layer
// itself (transports, link state) is out of scope; callers supply a Face
// implementation that actually moves bytes.
type Face interface {
	ID() defn.FaceId
	// SendInterest emits interest on this face. If newNonce is true, the
	// Interest's nonce is replaced with a fresh one before sending.
	SendInterest(interest *defn.Interest, newNonce bool)
	// SendData emits data on this face in response to a satisfied PIT entry.
	SendData(data *defn.Data)
}
