package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/tmaxmax/paclike/internal/version.Version=...
	Commit  = "unknown" // -X github.com/tmaxmax/paclike/internal/version.Commit=...
)

// String formats the build information for --version output.
func String() string {
	return Version + " (" + Commit + ")"
}
