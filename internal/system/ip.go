package system

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// DefaultIPCacheDuration is how long IPAddressChecker trusts a lookup.
const DefaultIPCacheDuration = 4 * time.Hour

// IPAddressChecker finds the address of the interface that routes to the
// internet and caches it. It is safe for concurrent use.
type IPAddressChecker struct {
	cacheFor time.Duration

	mu      sync.Mutex
	ip      string
	checked time.Time

	now    func() time.Time
	lookup func(ctx context.Context) (string, error)
}

// NewIPAddressChecker returns a checker caching for cacheFor; zero or less
// means DefaultIPCacheDuration.
func NewIPAddressChecker(cacheFor time.Duration) *IPAddressChecker {
	if cacheFor <= 0 {
		cacheFor = DefaultIPCacheDuration
	}
	return &IPAddressChecker{cacheFor: cacheFor, now: time.Now, lookup: outboundIP}
}

// IPAddress returns the cached address, looking it up again once the cache
// has expired. A failed lookup yields "" and the error, and is cached like
// a success so a missing network is not probed every frame.
func (c *IPAddressChecker) IPAddress(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if !c.checked.IsZero() && now.Sub(c.checked) <= c.cacheFor {
		return c.ip, nil
	}
	ip, err := c.lookup(ctx)
	c.ip, c.checked = ip, now
	return ip, err
}

// outboundIP "connects" a UDP socket to a public address, which picks the
// outgoing interface without sending a packet.
func outboundIP(ctx context.Context) (string, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp4", "8.8.8.8:80")
	if err != nil {
		return "", fmt.Errorf("ip address: %w", err)
	}
	defer conn.Close()
	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("ip address: unexpected local address %v", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}
