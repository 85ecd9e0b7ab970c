//go:build linux || darwin || netbsd || freebsd || solaris || openbsd

package main

import (
	"os"
	"syscall"
)

const supportsGetOwnership = true

func getOwnership(info os.FileInfo) (uid, gid int, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(stat.Uid), int(stat.Gid), true
}
