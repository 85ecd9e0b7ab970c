package main

import (
	"os"
	"path/filepath"

	"github.com/djherbis/atime"
)

// preserveAttributes copies the mode, ownership and timestamps of src to dst, and of their parent directories up to
// but excluding root.
func preserveAttributes(src, root, dst string) {
	if src == "" || dst == "" {
		return
	}

	rel, err := filepath.Rel(root, src)
	if err != nil {
		logger.Error("source is not part of root path", "src", src, "root", root)
		return
	}

	for {
		info, err := os.Stat(filepath.Join(root, rel))
		if err != nil {
			logger.Warn(err)
			return
		}

		if preserveMode {
			if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
				logger.Warn(err)
			}
		}
		if preserveOwnership {
			if uid, gid, ok := getOwnership(info); ok {
				if err := os.Chown(dst, uid, gid); err != nil {
					logger.Warn(err)
				}
			}
		}
		if preserveTimestamps {
			if err := os.Chtimes(dst, atime.Get(info), info.ModTime()); err != nil {
				logger.Warn(err)
			}
		}

		rel, dst = filepath.Dir(rel), filepath.Dir(dst)
		if rel == "." {
			return
		}
	}
}
