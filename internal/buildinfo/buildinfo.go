// Package buildinfo carries the values stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X effects/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Line is the startup log form: "effects <short> commit=<c> date=<d>".
func Line() string {
	return fmt.Sprintf("effects %s commit=%s date=%s", Short(), Commit, Date)
}
