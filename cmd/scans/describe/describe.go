package describe

import (
	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/opendatahub-io/secscan/pkg/cmd/scans"
	"github.com/opendatahub-io/secscan/pkg/util/iostreams"
)

const (
	cmdName  = "describe NAME|TYPE"
	cmdShort = "Show the details of a security scan"
)

const cmdLong = `
Show the type, source, applicable step kinds and default settings of a scan.
The scan is looked up by type first and by display name second.
`

const cmdExample = `
  secscan scans describe XSSSecurityScan
  secscan scans describe "SQL Injection" -o yaml
`

// AddCommand adds the describe subcommand to the scans command.
func AddCommand(parent *cobra.Command, streams genericiooptions.IOStreams) {
	o := scans.NewDescribeOptions(scans.NewSharedOptions(iostreams.FromGeneric(streams)))

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		Long:          cmdLong,
		Example:       cmdExample,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd.Context(), cmd.Flags(), args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}

			return o.Run(cmd.Context())
		},
	}

	o.AddFlags(cmd.Flags())
	parent.AddCommand(cmd)
}
