package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/awncorp/api-basecamp/pkg/basecamp"
	"github.com/awncorp/api-basecamp/pkg/bcclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"

	// JSON formatting.
	defaultJSONIndent = 2

	Masked = "***"
)

// Common static errors used throughout the commands package.
var (
	ErrInvalidQueryFormat = errors.New("invalid query format, expected key=value")
	ErrInvalidDataPayload = errors.New("data payload is not valid JSON")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrAccountRequired    = errors.New("account is required (use --account, BC3_ACCOUNT, or bc3 login)")
)

// createClient builds a basecamp client from the merged viper configuration.
func createClient() (basecamp.Client, error) {
	if viper.GetString("account") == "" {
		return nil, ErrAccountRequired
	}

	config := &basecamp.Config{
		Account:  viper.GetString("account"),
		Username: viper.GetString("username"),
		Password: viper.GetString("password"),
		Version:  viper.GetInt("api_version"),
		BaseURL:  viper.GetString("base_url"),
		Debug:    viper.GetBool("debug"),
		Fatal:    viper.GetBool("fatal"),
		Retries:  viper.GetInt("retries"),
		Timeout:  viper.GetDuration("timeout"),
	}

	client, err := bcclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// parseQueryFlags converts repeated key=value flags into url.Values.
func parseQueryFlags(pairs []string) (url.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	values := url.Values{}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidQueryFormat, pair)
		}

		values.Add(key, value)
	}

	return values, nil
}

// parseDataFlag decodes the --data payload, reading from a file when the
// value starts with "@".
func parseDataFlag(data string) (interface{}, error) {
	if data == "" {
		return nil, nil
	}

	raw := []byte(data)

	if strings.HasPrefix(data, "@") {
		fileData, err := os.ReadFile(strings.TrimPrefix(data, "@"))
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}

		raw = fileData
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataPayload, err)
	}

	return decoded, nil
}

// renderResult writes the action result in the configured output format.
func renderResult(result *basecamp.Result) error {
	decoded := result.Data
	if decoded == nil && len(result.Body) > 0 {
		// Failed results keep the raw body; decode best-effort for display.
		var fallback interface{}
		if err := json.Unmarshal(result.Body, &fallback); err == nil {
			decoded = fallback
		} else {
			fmt.Println(string(result.Body))

			return nil
		}
	}

	switch viper.GetString("output") {
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(decoded)
	case OutputFormatTable:
		return renderTable(decoded)
	default:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(decoded)
	}
}

// renderTable renders a decoded JSON value as a table: one row per element
// for arrays of objects, key/value rows otherwise.
func renderTable(decoded interface{}) error {
	table := tablewriter.NewWriter(os.Stdout)

	switch value := decoded.(type) {
	case []interface{}:
		columns := collectColumns(value)
		if len(columns) == 0 {
			return nil
		}

		header := make([]any, 0, len(columns))
		for _, column := range columns {
			header = append(header, column)
		}

		table.Header(header...)

		for _, element := range value {
			row, ok := element.(map[string]interface{})
			if !ok {
				continue
			}

			cells := make([]string, 0, len(columns))
			for _, column := range columns {
				cells = append(cells, formatCell(row[column]))
			}

			_ = table.Append(cells)
		}
	case map[string]interface{}:
		table.Header("Field", "Value")

		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			_ = table.Append(key, formatCell(value[key]))
		}
	default:
		table.Header("Value")
		_ = table.Append(formatCell(value))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// collectColumns gathers the union of object keys across array elements,
// sorted for stable output.
func collectColumns(elements []interface{}) []string {
	seen := map[string]bool{}

	for _, element := range elements {
		row, ok := element.(map[string]interface{})
		if !ok {
			continue
		}

		for key := range row {
			seen[key] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}

	sort.Strings(columns)

	return columns
}

func formatCell(value interface{}) string {
	switch cell := value.(type) {
	case nil:
		return NotAvailable
	case string:
		return cell
	case float64:
		return strconv.FormatFloat(cell, 'f', -1, 64)
	case bool:
		return fmt.Sprintf("%t", cell)
	default:
		encoded, err := json.Marshal(cell)
		if err != nil {
			return fmt.Sprintf("%v", cell)
		}

		return string(encoded)
	}
}
