package demos

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/render"
	"github.com/rook-computer/panels/internal/system"
)

const (
	sysInfoInterval = 5 * time.Second
	sysInfoIface    = "wlan0"
)

// cpuPercent estimates CPU usage from the one minute load average.
func cpuPercent(l system.Load) int {
	p := l.One / float64(runtime.NumCPU()) * 100
	return int(min(p, 100))
}

func cpuUsage() string {
	var cpu, up string
	if l, err := system.LoadAverage(); err == nil {
		cpu = fmt.Sprintf("%d%%", cpuPercent(l))
	} else {
		cpu = "n/a"
	}
	if d, err := system.Uptime(); err == nil {
		up = system.FormatUptime(d)
	} else {
		up = "n/a"
	}
	return fmt.Sprintf("CPU: %s Up: %s", cpu, up)
}

func memUsage() string {
	m, err := system.VirtualMemory()
	if err != nil {
		return "RAM: n/a"
	}
	return fmt.Sprintf("RAM: %s/%s (%.0f%%)", system.BytesToHuman(m.Used), system.BytesToHuman(m.Total), m.Percent())
}

func diskUsage(path string) string {
	d, err := system.Disk(path)
	if err != nil {
		return "SD: n/a"
	}
	return fmt.Sprintf("SD: %s/%s (%.0f%%)", system.BytesToHuman(d.Used), system.BytesToHuman(d.Total), d.Percent())
}

func network(iface string) (string, bool) {
	n, err := system.NetIO(iface)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%s: Tx%s, Rx%s", iface, system.BytesToHuman(n.BytesSent), system.BytesToHuman(n.BytesRecv)), true
}

// sysInfoLines returns at most rows status lines. Without the wireless
// interface the network and address lines are left out.
func sysInfoLines(ctx context.Context, env app.Env, rows int) []string {
	lines := []string{cpuUsage()}
	if rows >= 2 {
		lines = append(lines, memUsage())
	}
	if rows >= 3 {
		lines = append(lines, diskUsage("/"))
		net, ok := network(sysInfoIface)
		if !ok {
			return lines
		}
		if rows >= 4 {
			lines = append(lines, net)
		}
		if rows >= 5 && env.IP != nil {
			ip, err := env.IP.IPAddress(ctx)
			if err != nil {
				env.Logger.Errorf("sys_info", "%v", err)
			}
			lines = append(lines, ip)
		}
	}
	return lines
}

func sysInfo(ctx context.Context, env app.Env) error {
	dev := env.Device
	face := render.FaceOrDefault("gomono", 10)
	m := face.Metrics()
	lineHeight := max(1, (m.Ascent + m.Descent).Ceil())

	for {
		lines := sysInfoLines(ctx, env, dev.Height()/lineHeight)
		err := render.Draw(dev, func(c *render.Canvas) {
			c.Rectangle(c.Bounds(), render.White, nil)
			for i, line := range lines {
				c.Text(image.Pt(2, i*lineHeight), line, face, render.White)
			}
		})
		if err != nil {
			return err
		}
		if err := app.Sleep(ctx, sysInfoInterval); err != nil {
			return err
		}
	}
}
