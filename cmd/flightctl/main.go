// Package main is the entry point for the flightctl CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Domenick1991/flightbook/internal/client"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// errShown marks failures the command already rendered to the user.
var errShown = errors.New("error already shown")

var serverURL string

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errShown) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flightctl",
	Short: "flightctl - manage flights on a flights API server",
	Long: `flightctl lists, shows, adds, updates and deletes flights through the
flights HTTP API.

The server defaults to $FLIGHTCTL_SERVER, or http://localhost:3000 when unset.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("flightctl version {{.Version}}\n")

	defaultServer := os.Getenv("FLIGHTCTL_SERVER")
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "flights API base URL")
}

func newStore() *client.Store {
	return client.NewStore(client.NewAPI(serverURL))
}
