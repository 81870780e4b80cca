package version

// Version is the current version of the kernel.
// Set at build time with:
// -ldflags "-X github.com/rxtech-lab/argo-kernel/internal/version.Version=1.2.3"
// The value "main" marks a development build.
var Version = "v1.0.0"

// GetVersion returns the current version of the kernel.
func GetVersion() string {
	return Version
}
