package version

import (
	"runtime/debug"
)

const modulePath = "github.com/curtisnewbie/datecodec"

func init() {
	ver := readBuildVersion()
	if ver != "" {
		Version = ver
	}
}

// Version of the datecodec module in the build info, empty if it's unknown.
func readBuildVersion() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	if buildInfo.Main.Path == modulePath && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	for _, dep := range buildInfo.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}
	return ""
}
