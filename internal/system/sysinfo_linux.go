//go:build linux

package system

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// ThermalZone is where CPUTemperature reads from.
var ThermalZone = "/sys/class/thermal/thermal_zone0/temp"

// loadScale is 1 << SI_LOAD_SHIFT.
const loadScale = 1 << 16

func sysinfo() (*unix.Sysinfo_t, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return nil, fmt.Errorf("sysinfo: %w", err)
	}
	return &info, nil
}

// Uptime is the time since boot.
func Uptime() (time.Duration, error) {
	info, err := sysinfo()
	if err != nil {
		return 0, err
	}
	return time.Duration(info.Uptime) * time.Second, nil
}

func LoadAverage() (Load, error) {
	info, err := sysinfo()
	if err != nil {
		return Load{}, err
	}
	return Load{
		One:     float64(info.Loads[0]) / loadScale,
		Five:    float64(info.Loads[1]) / loadScale,
		Fifteen: float64(info.Loads[2]) / loadScale,
	}, nil
}

// VirtualMemory reports RAM in use, not counting buffers.
func VirtualMemory() (Memory, error) {
	info, err := sysinfo()
	if err != nil {
		return Memory{}, err
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	total := uint64(info.Totalram) * unit
	free := (uint64(info.Freeram) + uint64(info.Bufferram)) * unit
	if free > total {
		free = total
	}
	return Memory{Total: total, Used: total - free}, nil
}

// Disk reports usage of the filesystem holding path.
func Disk(path string) (DiskUsage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return DiskUsage{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	bsize := uint64(st.Bsize)
	total := st.Blocks * bsize
	free := st.Bavail * bsize
	used := (st.Blocks - st.Bfree) * bsize
	return DiskUsage{Total: total, Used: used, Free: free}, nil
}

// CPUTemperature reads ThermalZone in degrees Celsius.
func CPUTemperature() (float64, error) {
	raw, err := os.ReadFile(ThermalZone)
	if err != nil {
		return 0, fmt.Errorf("cpu temperature: %w", err)
	}
	return parseMilliCelsius(string(raw))
}

func parseMilliCelsius(s string) (float64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cpu temperature: %w", err)
	}
	return float64(v) / 1000, nil
}
