package commands

import (
	bferrors "github.com/deploymenttheory/go-api-sdk-billforward/errors"
	"github.com/deploymenttheory/go-api-sdk-billforward/response"
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command
func NewGetCommand() *cobra.Command {
	var (
		params []string
		first  bool
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "GET a resource",
		Long:  "Send a GET request to a path relative to the configured host, e.g. 'accounts' or 'subscriptions/SUB-123'.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			var result any
			if first && len(query) == 0 {
				result, err = client.GetFirst(cmd.Context(), args[0])
			} else {
				result, err = client.Get(cmd.Context(), args[0], query)
				if err == nil && first {
					result, err = firstResult(result)
				}
			}
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&first, "first", false, "print only the first entity of the results list")

	return cmd
}

// NewPostCommand creates the post command
func NewPostCommand() *cobra.Command {
	var (
		data     string
		dataFile string
		strict   bool
		first    bool
	)

	cmd := &cobra.Command{
		Use:   "post <path>",
		Short: "POST a JSON payload",
		Long: `Send a POST request with a JSON body.

Without --strict a missing API token is not an error and nothing is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(data, dataFile)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			var result any
			switch {
			case strict && first:
				result, err = client.MustPostFirst(cmd.Context(), args[0], payload)
			case strict:
				result, err = client.MustPost(cmd.Context(), args[0], payload)
			case first:
				result, err = client.PostFirst(cmd.Context(), args[0], payload)
			default:
				result, err = client.Post(cmd.Context(), args[0], payload)
			}
			if err != nil {
				return err
			}

			return printIfPresent(cmd, result)
		},
	}

	addPayloadFlags(cmd, &data, &dataFile)
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when no API token is available")
	cmd.Flags().BoolVar(&first, "first", false, "print only the first entity of the results list")

	return cmd
}

// NewPutCommand creates the put command
func NewPutCommand() *cobra.Command {
	var (
		data     string
		dataFile string
		first    bool
	)

	cmd := &cobra.Command{
		Use:   "put <path>",
		Short: "PUT a JSON payload",
		Long: `Send a PUT request with a JSON body.

Failures are logged by the client and nothing is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(data, dataFile)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			var result any
			if first {
				result, err = client.PutFirst(cmd.Context(), args[0], payload)
			} else {
				result, err = client.Put(cmd.Context(), args[0], payload)
			}
			if err != nil {
				return err
			}

			return printIfPresent(cmd, result)
		},
	}

	addPayloadFlags(cmd, &data, &dataFile)
	cmd.Flags().BoolVar(&first, "first", false, "print only the first entity of the results list")

	return cmd
}

// NewRetireCommand creates the retire command
func NewRetireCommand() *cobra.Command {
	var first bool

	cmd := &cobra.Command{
		Use:     "retire <path>",
		Aliases: []string{"delete"},
		Short:   "Retire (DELETE) a resource",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			var result any
			if first {
				result, err = client.RetireFirst(cmd.Context(), args[0])
			} else {
				result, err = client.Retire(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			return printIfPresent(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&first, "first", false, "print only the first entity of the results list")

	return cmd
}

func addPayloadFlags(cmd *cobra.Command, data, dataFile *string) {
	cmd.Flags().StringVarP(data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVar(dataFile, "data-file", "", "path to a file holding the JSON request body")
}

// printIfPresent skips output for the nil results returned when a call was skipped or swallowed.
func printIfPresent(cmd *cobra.Command, result any) error {
	if result == nil {
		return nil
	}
	return printResult(cmd.OutOrStdout(), result)
}

func firstResult(payload any) (any, error) {
	first, ok := response.FirstResult(payload)
	if !ok {
		return nil, bferrors.ErrEmptyResults
	}
	return first, nil
}
