package list

import (
	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/opendatahub-io/secscan/pkg/cmd/scans"
	"github.com/opendatahub-io/secscan/pkg/util/iostreams"
)

const (
	cmdName  = "list"
	cmdShort = "List registered security scans"
)

const cmdLong = `
List the registered security scans sorted by name.

Use --selector to filter by type with a glob pattern. With --steps, list the scans
applicable to each step of a test step file; add --step to list the scans of one step.
`

const cmdExample = `
  secscan scans list
  secscan scans list --selector '*Injection*'
  secscan scans list --steps steps.yaml
  secscan scans list --steps steps.yaml --step "Get Order" -o json
`

// AddCommand adds the list subcommand to the scans command.
func AddCommand(parent *cobra.Command, streams genericiooptions.IOStreams) {
	o := scans.NewListOptions(scans.NewSharedOptions(iostreams.FromGeneric(streams)))

	cmd := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		Long:          cmdLong,
		Example:       cmdExample,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.Complete(cmd.Context(), cmd.Flags()); err != nil {
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
