package configure

import (
	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/opendatahub-io/secscan/pkg/cmd/scans"
	"github.com/opendatahub-io/secscan/pkg/util/iostreams"
)

const (
	cmdName  = "configure NAME|TYPE"
	cmdShort = "Show the configuration form of a security scan"
)

const cmdLong = `
Build the configuration form of a scan: one field per setting with its kind,
default value and description. Use -o json to feed the form to another front end.
`

const cmdExample = `
  secscan scans configure FuzzerSecurityScan
  secscan scans configure "Cross Site Scripting" -o json
`

// AddCommand adds the configure subcommand to the scans command.
func AddCommand(parent *cobra.Command, streams genericiooptions.IOStreams) {
	o := scans.NewConfigureOptions(scans.NewSharedOptions(iostreams.FromGeneric(streams)))

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
