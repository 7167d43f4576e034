// Package ipgate decides whether a client address may clock in or out.
package ipgate

import (
	"net/netip"
	"strings"
)

// Gate is an allow-list of networks. The zero value allows everything.
type Gate struct {
	configured bool
	prefixes   []netip.Prefix
}

// New parses a comma-separated list of CIDR ranges or single hosts.
// A nil list means the setting is absent and every address is allowed.
// Entries that do not parse are skipped.
func New(allowed *string) Gate {
	if allowed == nil {
		return Gate{}
	}
	g := Gate{configured: true}
	for _, entry := range strings.Split(*allowed, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, ok := parseEntry(entry); ok {
			g.prefixes = append(g.prefixes, prefix)
		}
	}
	return g
}

// parseEntry accepts host bits set in a CIDR (10.0.0.5/24 means 10.0.0.0/24).
func parseEntry(entry string) (netip.Prefix, bool) {
	if strings.Contains(entry, "/") {
		prefix, err := netip.ParsePrefix(entry)
		if err != nil {
			return netip.Prefix{}, false
		}
		return prefix.Masked(), true
	}
	addr, err := netip.ParseAddr(entry)
	if err != nil {
		return netip.Prefix{}, false
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), true
}

// Allowed reports whether source may pass. An unparseable source is denied
// once a list is configured.
func (g Gate) Allowed(source string) bool {
	if !g.configured {
		return true
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(source))
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range g.prefixes {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// Configured reports whether an allow-list is in force.
func (g Gate) Configured() bool {
	return g.configured
}
