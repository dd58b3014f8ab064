package main

import (
	"fmt"
	"os"

	"github.com/deploymenttheory/go-api-sdk-billforward/cmd/billforward/commands"
	"github.com/deploymenttheory/go-api-sdk-billforward/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "billforward",
	Short: "BillForward API CLI",
	Long: `A command-line interface for issuing raw requests against the BillForward API.

Connection settings come from a config file (--config) or BILLFORWARD_* environment
variables, e.g. BILLFORWARD_HOST, BILLFORWARD_ENVIRONMENT and BILLFORWARD_API_TOKEN.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (json, yaml or toml); defaults to BILLFORWARD_* environment variables")
	rootCmd.PersistentFlags().StringP("output", "o", "json", "output format (json, yaml, table)")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	// Add commands
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewPostCommand())
	rootCmd.AddCommand(commands.NewPutCommand())
	rootCmd.AddCommand(commands.NewRetireCommand())
	rootCmd.AddCommand(commands.NewOrganizationCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
