// Package hostinfo resolves client addresses to hostnames. Lookups are
// informational only; callers fire them from a goroutine and never block a
// state transition on the result.
package hostinfo

import (
	"context"
	"net"
	"strings"
	"time"
)

// LookupTimeout bounds a single reverse lookup.
const LookupTimeout = 2 * time.Second

// Lookup returns the first PTR name for addr. On lookup failure the address
// itself is returned; an empty PTR set yields "unknown".
func Lookup(ctx context.Context, addr string) string {
	names, err := net.DefaultResolver.LookupAddr(ctx, addr)
	if err != nil {
		return addr
	}
	if len(names) == 0 {
		return "unknown"
	}
	return strings.TrimSuffix(names[0], ".")
}
