package commands

import (
	"fmt"

	"github.com/deploymenttheory/go-api-sdk-billforward/version"
	"github.com/spf13/cobra"
)

// NewOrganizationCommand creates the org-id command
func NewOrganizationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "org-id",
		Short: "Print the organization ID of the authenticated user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			id, err := client.OrganizationID(cmd.Context())
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), map[string]any{
				"host":           client.Host(),
				"environment":    client.Environment(),
				"organizationID": id,
			})
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the SDK version and User-Agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\nUser-Agent: %s\n",
				version.GetAppName(), version.GetVersion(), version.GetUserAgentHeader())
			return err
		},
	}
}
