package validate

import (
	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/opendatahub-io/secscan/pkg/cmd/scans"
	"github.com/opendatahub-io/secscan/pkg/util/iostreams"
)

const (
	cmdName  = "validate FILE"
	cmdShort = "Validate scan configurations"
)

const cmdLong = `
Validate a file of scan configurations. Every entry must reference a registered
scan type and its settings must match the settings the scan accepts.

Exits with a non-zero code when any configuration is invalid.
`

const cmdExample = `
  secscan scans validate scans.yaml
  secscan scans validate scans.yaml --plugin-dir ./plugins -o json
`

// AddCommand adds the validate subcommand to the scans command.
func AddCommand(parent *cobra.Command, streams genericiooptions.IOStreams) {
	o := scans.NewValidateOptions(scans.NewSharedOptions(iostreams.FromGeneric(streams)))

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
