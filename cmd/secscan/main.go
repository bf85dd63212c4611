package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/opendatahub-io/secscan/cmd/scans"
	"github.com/opendatahub-io/secscan/pkg/config"
)

const (
	cmdName  = "secscan"
	cmdShort = "Inspect and configure the security scans available to test steps"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	streams := genericiooptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}

	root := &cobra.Command{
		Use:           cmdName,
		Short:         cmdShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.AddFlags(root.PersistentFlags())
	scans.AddCommand(root, streams)

	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
