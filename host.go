// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package httpwire

// parseHost walks the combined "authority" field the URL FSM recorded into
// u.Host (userinfo@host:port, or a bracketed IPv6 literal with optional
// zone id) and splits it into Userinfo / Host / Port sub-fields (spec
// §4.3). It fails if the field ends in an intermediate state: an unclosed
// '[' or a trailing '@'/':' with nothing after it.
func parseHost(buf []byte, u *URL) ErrorCode {
	authority := u.Host.Get(buf)
	base := int(u.Host.Offs)
	if len(authority) == 0 {
		return ErrInvalidHost
	}

	// Split off userinfo at the last unbracketed '@'.
	hostport := authority
	hpBase := base
	if at := lastAtOutsideBrackets(authority); at >= 0 {
		if at == 0 {
			return ErrInvalidHost // empty userinfo ("@host") is rejected
		}
		var f Field
		f.Set(base, base+at)
		u.Userinfo = f
		u.Set |= URLFieldUserinfo
		hostport = authority[at+1:]
		hpBase = base + at + 1
		if len(hostport) == 0 {
			return ErrInvalidHost // trailing '@' with nothing after it
		}
	}

	if hostport[0] == '[' {
		end := -1
		for i := 1; i < len(hostport); i++ {
			if hostport[i] == ']' {
				end = i
				break
			}
		}
		if end < 0 {
			return ErrInvalidHost // unclosed '['
		}
		inner := hostport[1:end]
		if len(inner) == 0 {
			return ErrInvalidHost
		}
		var f Field
		f.Set(hpBase+1, hpBase+end)
		u.Host = f
		rest := hostport[end+1:]
		if len(rest) == 0 {
			return OK
		}
		if rest[0] != ':' {
			return ErrInvalidHost
		}
		if len(rest) == 1 {
			return ErrInvalidHost // trailing ':' with no port digits
		}
		var pf Field
		pf.Set(hpBase+end+2, hpBase+len(hostport))
		u.Port = pf
		u.Set |= URLFieldPort
		return OK
	}

	// reg-name, optionally followed by ':port'.
	colon := -1
	for i, c := range hostport {
		if c == ':' {
			colon = i
			break
		}
	}
	if colon < 0 {
		var f Field
		f.Set(hpBase, hpBase+len(hostport))
		u.Host = f
		return OK
	}
	if colon == 0 {
		return ErrInvalidHost // empty hostname before ':'
	}
	var f Field
	f.Set(hpBase, hpBase+colon)
	u.Host = f
	if colon == len(hostport)-1 {
		return ErrInvalidHost // trailing ':' with no port digits
	}
	var pf Field
	pf.Set(hpBase+colon+1, hpBase+len(hostport))
	u.Port = pf
	u.Set |= URLFieldPort
	return OK
}

// lastAtOutsideBrackets finds the offset of the last '@' not enclosed in a
// bracketed IPv6 literal, or -1 if there is none.
func lastAtOutsideBrackets(s []byte) int {
	depth := 0
	last := -1
	for i, c := range s {
		switch c {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '@':
			if depth == 0 {
				last = i
			}
		}
	}
	return last
}
