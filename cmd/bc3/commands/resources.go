package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/awncorp/api-basecamp/internal/client"
)

// NewResourcesCommand creates the resources command.
func NewResourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List known resource names",
		Long:  "List the top-level resource names exposed as accessor sugar; any other name composes through path segments",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch viper.GetString("output") {
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(client.ResourceNames)
			case OutputFormatTable:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Resource")

				for _, name := range client.ResourceNames {
					_ = table.Append(name)
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			default:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

				return encoder.Encode(client.ResourceNames)
			}
		},
	}
}
