package pcl

import "github.com/pclgo/pcl-go/pkg/pcl/internal/backend"

var (
	Version    = "v0.0.0-in-progress"
	PCLVersion = "1.14.1"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// NativeVersion returns the version reported by the linked PCL when the cgo
// backend is built; otherwise it falls back to the pinned PCLVersion.
func NativeVersion() string {
	if v := backend.Version(); v != "" {
		return v
	}
	return PCLVersion
}

// Backend names the backend compiled into the binary: "libpcl" or
// "portable".
func Backend() string {
	return backend.Name()
}
