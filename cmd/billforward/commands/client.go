package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/deploymenttheory/go-api-sdk-billforward/httpclient"
	"github.com/spf13/viper"
)

// createClient builds a client from the --config file, or from the environment when no file is given.
func createClient() (*httpclient.Client, error) {
	var (
		config *httpclient.ClientConfig
		err    error
	)

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		config, err = httpclient.LoadConfigFromFile(cfgFile)
	} else {
		config, err = httpclient.LoadConfigFromEnv()
	}
	if err != nil {
		return nil, err
	}

	return httpclient.BuildClient(*config, true)
}

// parseParams turns repeated key=value flags into query parameters.
func parseParams(pairs []string) (map[string]string, error) {
	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

// readPayload decodes the JSON request body from --data, or from the file named by --data-file.
func readPayload(data, dataFile string) (any, error) {
	if data != "" && dataFile != "" {
		return nil, fmt.Errorf("--data and --data-file are mutually exclusive")
	}

	raw := []byte(data)
	if dataFile != "" {
		contents, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}
		raw = contents
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	return payload, nil
}
