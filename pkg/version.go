package gnunite

var (
	// Version of GNunite. It is set during the build.
	Version = "v0.1.0"

	// Build timestamp. It is set during the build.
	Build = "n/a"
)
