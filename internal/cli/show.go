package cli

import (
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one property",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := newAPIClient().Get(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(p)
	}

	printPropertySummary(p)
	return nil
}
