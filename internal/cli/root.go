// Package cli defines the cobra command tree for immolist.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"immolist/internal/client"
)

var (
	flagFormat string
	flagServer string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "immolist",
		Short:         "Manage a real-estate listing catalog",
		Long:          "A small real-estate listing application: a JSON API plus a server-rendered web UI over a flat-file property catalog, with CLI commands that talk to a running server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "base URL of a running immolist server (default: $IMMOLIST_SERVER or http://localhost:8080)")

	root.AddCommand(
		newServeCmd(),
		newSeedCmd(),
		newListCmd(),
		newShowCmd(),
		newRemoveCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the immolist API.
func newAPIClient() *client.Client {
	return client.New(serverURL())
}

func serverURL() string {
	if flagServer != "" {
		return flagServer
	}
	if env := os.Getenv("IMMOLIST_SERVER"); env != "" {
		return env
	}
	return "http://localhost:8080"
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
