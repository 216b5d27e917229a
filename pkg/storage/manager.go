package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/ucqdev/cuahquick/config"
	"github.com/ucqdev/cuahquick/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager.
// Call once at application startup (in internal/server/server.go).
func Connect() {
	defaultDisk = config.Get("STORAGE_DISK", "local")

	// Always boot local disk.
	disks["local"] = newLocalDisk()

	// Boot S3 disk only if bucket is configured.
	if config.Get("S3_BUCKET", "") != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
//
//	storage.Use("s3").Put("products/7.jpg", data)
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk lets you plug in a custom Disk implementation at boot time.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Fake swaps the default disk for a local disk rooted at dir and returns
// a restore func. Meant for tests.
func Fake(dir string) func() {
	managerMu.Lock()
	prevDisks, prevDefault := disks, defaultDisk
	disks = map[string]Disk{"fake": &localDisk{root: dir, baseURL: "http://localhost/storage"}}
	defaultDisk = "fake"
	managerMu.Unlock()

	return func() {
		managerMu.Lock()
		disks, defaultDisk = prevDisks, prevDefault
		managerMu.Unlock()
	}
}

// Default disk helpers — proxy to STORAGE_DISK (default "local").

func defaultD() Disk { return Use(defaultDisk) }

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return defaultD().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return defaultD().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return defaultD().Get(path) }

// GetStream returns a ReadCloser from the default disk.
func GetStream(path string) (io.ReadCloser, error) { return defaultD().GetStream(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return defaultD().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return defaultD().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return defaultD().URL(path) }
