package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// displayVersion canonicalizes release versions ("1.2" becomes "v1.2.0").
func displayVersion(v string) string {
	if !semver.IsValid(v) && semver.IsValid("v"+v) {
		v = "v" + v
	}
	if semver.IsValid(v) {
		return semver.Canonical(v)
	}
	return v
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "gamecompletion", displayVersion(version))
		},
	}
}
