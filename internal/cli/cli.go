// Package cli implements the probetable command line.
package cli

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// Main runs the command line against the real file system and the
// process's standard streams
func Main() int {
	// Log to stderr unless the user asks for log files.
	_ = flag.Set("logtostderr", "true")
	defer glog.Flush()

	cmd := NewRootCommand(afero.NewOsFs())
	cmd.SetIn(os.Stdin)
	cmd.SetOut(os.Stdout)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// NewRootCommand builds the command tree. All file access goes through fs.
func NewRootCommand(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:   "probetable",
		Short: "Experiment with a linear probing hash table",
		Long: `probetable loads word lists into a linear probing hash table and reports
how the hash base and table capacity affect collisions and probe lengths.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		newLoadCommand(fs),
		newReportCommand(fs),
		newRankCommand(fs),
		newMenuCommand(fs),
	)
	return root
}
