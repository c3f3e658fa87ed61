package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/companyinfo-cli/internal/extract"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the extraction tool schema",
	Long:  "Prints the JSON schema the structured extraction call is constrained to, for inspection and downstream validation.",
	RunE: func(_ *cobra.Command, _ []string) error {
		s := extract.Schema()
		out := map[string]any{
			"name":       extract.ToolName,
			"version":    extract.SchemaVersion,
			"type":       "object",
			"properties": s.Properties,
			"required":   s.Required,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return eris.Wrap(err, "schema: marshal")
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
