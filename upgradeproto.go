// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

import (
	"github.com/intuitivelabs/bytescase"
)

// UpgradeProto is a coarse classification of an Upgrade header's value,
// informational only: the parser itself treats any upgrade as an opaque
// handoff (spec §9 "Upgrade/CONNECT handoff") and never inspects the
// sub-protocol to make parsing decisions. Trimmed from the teacher's
// UpgProtoResolve (parse_upgrade.go), which additionally tracked
// SIP-specific multi-value bookkeeping this module has no use for.
type UpgradeProto uint8

const (
	UpgradeProtoOther UpgradeProto = iota
	UpgradeProtoWebSocket
	UpgradeProtoHTTP2
)

// ResolveUpgradeProto classifies a single Upgrade protocol token (one
// comma-separated value from an Upgrade header).
func ResolveUpgradeProto(tok []byte) UpgradeProto {
	switch {
	case bytescase.CmpEq(tok, []byte("websocket")):
		return UpgradeProtoWebSocket
	case bytescase.CmpEq(tok, []byte("h2c")):
		return UpgradeProtoHTTP2
	case bytescase.CmpEq(tok, []byte("http/2.0")):
		return UpgradeProtoHTTP2
	}
	return UpgradeProtoOther
}
