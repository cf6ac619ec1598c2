package cli

import (
	"fmt"
	"io"

	goversion "github.com/caarlos0/go-version"
)

// BuildInfo is stamped into the binary via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	Date      string
	BuiltBy   string
	TreeState string
}

// VersionInfo assembles go-version details from the stamped build info,
// falling back to what the Go toolchain recorded.
func VersionInfo(b BuildInfo) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("zsynth", "synthetic employee and student records", "https://github.com/zarlcorp/zsynth"),
		func(i *goversion.Info) {
			if b.Version != "" {
				i.GitVersion = b.Version
			}
			if b.Commit != "" {
				i.GitCommit = b.Commit
			}
			if b.TreeState != "" {
				i.GitTreeState = b.TreeState
			}
			if b.Date != "" {
				i.BuildDate = b.Date
			}
			if b.BuiltBy != "" {
				i.BuiltBy = b.BuiltBy
			}
		},
	)
}

// CmdVersion prints the version banner.
func CmdVersion(w io.Writer, b BuildInfo, args []string) error {
	info := VersionInfo(b)
	if hasFlag(args, "--json") {
		return printJSON(w, info)
	}
	if hasFlag(args, "--short") {
		fmt.Fprintf(w, "zsynth %s\n", info.GitVersion)
		return nil
	}
	fmt.Fprintln(w, info.String())
	return nil
}
