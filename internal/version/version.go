// Package version holds build identity, overridable at link time:
//
//	go build -ldflags "-X groovebot/internal/version.Version=v1.2.0"
package version

var (
	AppName = "Groovebot"
	Version = "dev"
)
