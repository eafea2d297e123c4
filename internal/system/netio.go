package system

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ProcNetDev is the kernel's per-interface counter table.
var ProcNetDev = "/proc/net/dev"

// ErrNoInterface is returned by NetIO for an interface that does not exist.
var ErrNoInterface = errors.New("system: no such interface")

// NetCounters are the byte and packet totals of one interface.
type NetCounters struct {
	Name        string
	BytesRecv   uint64
	PacketsRecv uint64
	BytesSent   uint64
	PacketsSent uint64
}

// NetIO returns the counters of iface.
func NetIO(iface string) (NetCounters, error) {
	f, err := os.Open(ProcNetDev)
	if err != nil {
		return NetCounters{}, fmt.Errorf("net io: %w", err)
	}
	defer f.Close()
	all, err := parseNetDev(f)
	if err != nil {
		return NetCounters{}, err
	}
	c, ok := all[iface]
	if !ok {
		return NetCounters{}, fmt.Errorf("%w: %s", ErrNoInterface, iface)
	}
	return c, nil
}

// parseNetDev reads the /proc/net/dev format: two header lines, then
// "iface: rx_bytes rx_packets ... (8 receive fields) tx_bytes tx_packets ...".
func parseNetDev(r io.Reader) (map[string]NetCounters, error) {
	out := make(map[string]NetCounters)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		name, rest, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) < 10 {
			continue
		}
		var v [10]uint64
		for i := range v {
			n, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("net io: %s: %w", strings.TrimSpace(name), err)
			}
			v[i] = n
		}
		name = strings.TrimSpace(name)
		out[name] = NetCounters{
			Name:        name,
			BytesRecv:   v[0],
			PacketsRecv: v[1],
			BytesSent:   v[8],
			PacketsSent: v[9],
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("net io: %w", err)
	}
	return out, nil
}
