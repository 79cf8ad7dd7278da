package utils

import (
	"runtime/debug"
)

const (
	unknownVersion        = "unknown"
	develVersion          = "(devel)"
	revisionSettingKey    = "vcs.revision"
	modifiedSettingKey    = "vcs.modified"
	shortRevisionLength   = 12
	dirtyRevisionSuffix   = "-dirty"
	revisionVersionPrefix = "devel-"
)

// GetApplicationVersion reports the module version from build information.
// Development builds fall back to the VCS revision stamped by the Go toolchain.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	return versionFromBuildInfo(buildInfo)
}

func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case revisionSettingKey:
			revision = setting.Value
		case modifiedSettingKey:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionLength {
		revision = revision[:shortRevisionLength]
	}
	version := revisionVersionPrefix + revision
	if modified {
		version += dirtyRevisionSuffix
	}
	return version
}
