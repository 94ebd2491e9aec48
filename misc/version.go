// Package misc keeps build time information.
package misc

// Set with -ldflags at build time.
var (
	appName = "stylekit"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
