//go:build linux

package capture

import "golang.org/x/sys/unix"

// SysReset is the Linux reset primitive: it flushes filesystem buffers and
// restarts the machine. The restart must be a warm reset for the region
// contents to survive; power cycling clears them. SysReset never returns.
// The caller needs CAP_SYS_BOOT.
func SysReset() {
	unix.Sync()
	_ = unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART)
	// Reboot only fails without CAP_SYS_BOOT. There is nothing left to
	// do in a faulting process, so park instead of returning.
	for {
		_ = unix.Pause()
	}
}
