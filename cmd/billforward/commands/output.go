package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/deploymenttheory/go-api-sdk-billforward/response"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTable = "table"
)

// printResult writes payload to w in the format selected by --output.
func printResult(w io.Writer, payload any) error {
	return renderOutput(w, viper.GetString("output"), payload)
}

func renderOutput(w io.Writer, format string, payload any) error {
	switch format {
	case OutputJSON, "":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()
		return encoder.Encode(payload)
	case OutputTable:
		return renderTable(w, payload)
	default:
		return fmt.Errorf("unsupported output format %q (expected json, yaml or table)", format)
	}
}

// renderTable prints a results list one row per entity, and any other object as Property/Value pairs.
func renderTable(w io.Writer, payload any) error {
	table := tablewriter.NewWriter(w)

	if obj, ok := payload.(map[string]any); ok {
		if _, hasResults := obj["results"]; hasResults {
			results := response.Results(payload)
			columns := resultColumns(results)
			if len(columns) == 0 {
				columns = []string{"Value"}
			}

			header := make([]any, len(columns))
			for i, column := range columns {
				header[i] = column
			}
			table.Header(header...)

			for _, result := range results {
				_ = table.Append(resultRow(result, columns))
			}
			return table.Render()
		}

		table.Header("Property", "Value")
		for _, key := range sortedKeys(obj) {
			_ = table.Append(key, cellValue(obj[key]))
		}
		return table.Render()
	}

	table.Header("Value")
	_ = table.Append(cellValue(payload))
	return table.Render()
}

// resultColumns is the sorted union of keys across all object results.
func resultColumns(results []any) []string {
	seen := map[string]struct{}{}
	for _, result := range results {
		if obj, ok := result.(map[string]any); ok {
			for key := range obj {
				seen[key] = struct{}{}
			}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}

func resultRow(result any, columns []string) []string {
	obj, ok := result.(map[string]any)
	if !ok {
		return []string{cellValue(result)}
	}

	row := make([]string, len(columns))
	for i, column := range columns {
		if value, present := obj[column]; present {
			row[i] = cellValue(value)
		}
	}
	return row
}

// cellValue renders scalars as-is and nested values as compact JSON.
func cellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
