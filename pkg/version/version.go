package version

// Set at build time via:
//   go build -ldflags "-X 'github.com/austinkregel/g935-battery/pkg/version.Version=...'"
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Short returns the version, with the commit when one was stamped.
func Short() string {
	if Commit == "" || Commit == "unknown" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
