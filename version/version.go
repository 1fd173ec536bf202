// Package version reports which build of the levelmeter binaries is running.
package version

import "runtime/debug"

// Version is empty unless set at build time:
//
//	go build -ldflags "-X github.com/vsariola/levelmeter/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short VCS revision of the build, suffixed with -dirty if the
// tree had local modifications. Empty if there is no VCS info.
var Hash = vcsHash()

// VersionOrHash prefers Version and falls back to Hash.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()

func vcsHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision string
	modified := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		revision += "-dirty"
	}
	return revision
}

// String is what the -version flags print.
func String(program string) string {
	v := VersionOrHash
	if v == "" {
		v = "(devel)"
	}
	return program + " " + v
}
