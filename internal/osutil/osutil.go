// Package osutil holds platform names and process constants
package osutil

const Windows = "windows"

const (
	DirPermission  = 0o755
	FilePermission = 0o600
)
