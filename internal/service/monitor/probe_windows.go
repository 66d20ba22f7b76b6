//go:build windows

package monitor

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

//nolint:gochecknoglobals // Lazy DLL handles are process-wide by design of the API.
var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32.NewProc("GetTickCount")
)

// lastInputInfo mirrors the Win32 LASTINPUTINFO structure.
type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// winProbe reads the last-input tick via GetLastInputInfo, which covers all
// keyboard, mouse, touch and pen input.
type winProbe struct{}

// NewProbe returns the Windows input probe.
func NewProbe() (Probe, error) {
	return winProbe{}, nil
}

// IdleFor returns the time since the last input event. Tick counters are
// 32-bit and wrap roughly every 49.7 days, which the subtraction accounts for.
func (winProbe) IdleFor() (time.Duration, error) {
	var info lastInputInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	ret, _, _ := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", windows.GetLastError())
	}

	now, _, _ := procGetTickCount.Call()

	var elapsed uint64
	if uint64(now) >= uint64(info.dwTime) {
		elapsed = uint64(now) - uint64(info.dwTime)
	} else {
		elapsed = (uint64(0xFFFFFFFF) - uint64(info.dwTime)) + uint64(now)
	}

	return time.Duration(elapsed) * time.Millisecond, nil
}

// Close is a no-op: the probe holds no resources.
func (winProbe) Close() error {
	return nil
}
