package system

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestBytesToHuman(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1K"},
		{10000, "9K"},
		{100001221, "95M"},
		{3 << 30, "3G"},
		{1 << 40, "1T"},
	}
	for _, tt := range tests {
		if got := BytesToHuman(tt.n); got != tt.want {
			t.Errorf("BytesToHuman(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDurations(t *testing.T) {
	d := 3*24*time.Hour + 4*time.Hour + 12*time.Minute + 59*time.Second
	if got := FormatUptime(d); got != "3d4h12m" {
		t.Errorf("FormatUptime = %q", got)
	}
	if got := FormatClock(26*time.Hour + 5*time.Minute + 7*time.Second); got != "26:05:07" {
		t.Errorf("FormatClock = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := (Memory{Total: 200, Used: 50}).Percent(); got != 25 {
		t.Errorf("Memory.Percent = %v", got)
	}
	if got := (DiskUsage{}).Percent(); got != 0 {
		t.Errorf("empty DiskUsage.Percent = %v", got)
	}
}

const netDev = `Inter-|   Receive                                                |  Transmit
 face |bytes    packets errs drop fifo frame compressed multicast|bytes    packets errs drop fifo colls carrier compressed
    lo:  123456     100    0    0    0     0          0         0   123456     100    0    0    0     0       0          0
 wlan0: 98765432   54321    0    0    0     0          0        12  1234567    7654    0    0    0     0       0          0
`

func TestParseNetDev(t *testing.T) {
	all, err := parseNetDev(strings.NewReader(netDev))
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("parsed %d interfaces, want 2", len(all))
	}
	want := NetCounters{Name: "wlan0", BytesRecv: 98765432, PacketsRecv: 54321, BytesSent: 1234567, PacketsSent: 7654}
	if got := all["wlan0"]; got != want {
		t.Errorf("wlan0 = %+v, want %+v", got, want)
	}

	if _, err := parseNetDev(strings.NewReader("eth0: 1 2 3 4 5 6 7 8 x 10\n")); err == nil {
		t.Error("bad counter accepted")
	}
}

func TestNetIO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dev")
	if err := os.WriteFile(path, []byte(netDev), 0o644); err != nil {
		t.Fatal(err)
	}
	old := ProcNetDev
	ProcNetDev = path
	t.Cleanup(func() { ProcNetDev = old })

	c, err := NetIO("lo")
	if err != nil {
		t.Fatal(err)
	}
	if c.BytesSent != 123456 {
		t.Errorf("lo sent = %d", c.BytesSent)
	}
	if _, err := NetIO("eth9"); !errors.Is(err, ErrNoInterface) {
		t.Errorf("NetIO(eth9) = %v, want ErrNoInterface", err)
	}
}

func TestIPAddressCheckerCaches(t *testing.T) {
	now := time.Unix(0, 0)
	lookups := 0
	results := []struct {
		ip  string
		err error
	}{
		{"192.168.1.20", nil},
		{"", errors.New("network is unreachable")},
		{"10.0.0.5", nil},
	}

	c := NewIPAddressChecker(0)
	c.now = func() time.Time { return now }
	c.lookup = func(context.Context) (string, error) {
		r := results[lookups]
		lookups++
		return r.ip, r.err
	}
	ctx := context.Background()

	steps := []struct {
		advance time.Duration
		want    string
		wantErr bool
		lookups int
	}{
		{0, "192.168.1.20", false, 1},
		{time.Hour, "192.168.1.20", false, 1},
		{3 * time.Hour, "192.168.1.20", false, 1},
		{time.Second, "", true, 2},
		{time.Minute, "", false, 2},
		{DefaultIPCacheDuration + time.Second, "10.0.0.5", false, 3},
	}
	for i, s := range steps {
		now = now.Add(s.advance)
		got, err := c.IPAddress(ctx)
		if (err != nil) != s.wantErr {
			t.Errorf("step %d: error = %v, wantErr %v", i, err, s.wantErr)
		}
		if got != s.want {
			t.Errorf("step %d: IPAddress = %q, want %q", i, got, s.want)
		}
		if lookups != s.lookups {
			t.Errorf("step %d: %d lookups, want %d", i, lookups, s.lookups)
		}
	}
}
