package scans

import (
	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/opendatahub-io/secscan/cmd/scans/configure"
	"github.com/opendatahub-io/secscan/cmd/scans/describe"
	"github.com/opendatahub-io/secscan/cmd/scans/list"
	"github.com/opendatahub-io/secscan/cmd/scans/validate"
)

const (
	cmdName  = "scans"
	cmdShort = "Work with the registered security scans"
	cmdLong  = `
The scans command lists and inspects the security scans known to secscan:
the built-in scans plus those contributed by plugin manifests (--plugin-dir).

Available subcommands:
  list       List scans, optionally only those applicable to a test step
  describe   Show the details and default settings of a scan
  configure  Show the configuration form of a scan
  validate   Validate a file of scan configurations
`
)

// AddCommand adds the scans command and its subcommands to the root command.
func AddCommand(root *cobra.Command, streams genericiooptions.IOStreams) {
	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		Long:          cmdLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	list.AddCommand(cmd, streams)
	describe.AddCommand(cmd, streams)
	configure.AddCommand(cmd, streams)
	validate.AddCommand(cmd, streams)

	root.AddCommand(cmd)
}
