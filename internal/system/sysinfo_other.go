//go:build !linux

package system

import "time"

func Uptime() (time.Duration, error) { return 0, ErrUnsupported }

func LoadAverage() (Load, error) { return Load{}, ErrUnsupported }

func VirtualMemory() (Memory, error) { return Memory{}, ErrUnsupported }

func Disk(path string) (DiskUsage, error) { return DiskUsage{}, ErrUnsupported }

func CPUTemperature() (float64, error) { return 0, ErrUnsupported }
