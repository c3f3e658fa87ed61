package extract

import "github.com/sells-group/companyinfo-cli/pkg/anthropic"

// SchemaVersion identifies the extraction schema revision. Bump when the
// shape of the tool input changes.
const SchemaVersion = "v1"

// ToolName is the tool the model is forced to call.
const ToolName = "extract_company_info"

// enum values shared by manufactures_in_house and outsourced.
var yesNoPartial = []string{"Yes", "No", "Partial"}

// statusValues are the statuses the model may return. parse_error is
// reserved for the client side and deliberately absent here.
var statusValues = []string{"explicit", "deduced", "not_found"}

// Schema returns the extraction tool input schema. The returned structure is
// built fresh on each call so callers can't mutate the shared definition.
func Schema() anthropic.InputSchema {
	return anthropic.InputSchema{
		Properties: map[string]any{
			"domain": map[string]any{
				"type":        "string",
				"description": "Company website domain.",
			},
			"company_name": map[string]any{
				"type":        "string",
				"description": "Official company name.",
			},
			"manufactures_in_house": map[string]any{
				"type":        "string",
				"enum":        yesNoPartial,
				"description": "Whether the company manufactures in-house.",
			},
			"in_house_details": map[string]any{
				"type":        "string",
				"description": "Details of in-house production if applicable.",
			},
			"outsourced": map[string]any{
				"type":        "string",
				"enum":        yesNoPartial,
				"description": "Whether any production is outsourced.",
			},
			"outsourcing_partners": map[string]any{
				"type":        "array",
				"description": "List of third-party manufacturers if outsourced.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Partner company name.",
						},
						"website": map[string]any{
							"type":        "string",
							"description": "Partner website URL.",
						},
						"contact": map[string]any{
							"type":        "string",
							"description": "Contact email or phone if available.",
						},
					},
					"required":             []string{"name", "website"},
					"additionalProperties": false,
				},
			},
			"parent_company": map[string]any{
				"type":        "string",
				"description": "Name of parent company if any.",
			},
			"affiliate_companies": map[string]any{
				"type":        "array",
				"description": "List of affiliate or sister companies.",
				"items":       map[string]any{"type": "string"},
			},
			"extraction_status": map[string]any{
				"type":        "string",
				"enum":        statusValues,
				"description": "Indicates if data was explicitly mentioned, deduced, or not found.",
			},
		},
		Required: []string{
			"domain",
			"company_name",
			"manufactures_in_house",
			"outsourced",
			"outsourcing_partners",
			"parent_company",
			"affiliate_companies",
			"extraction_status",
		},
	}
}

// Tool returns the full tool declaration for the extraction call.
func Tool() anthropic.Tool {
	return anthropic.Tool{
		Name:        ToolName,
		Description: "Extracts manufacturing, outsourcing, and corporate affiliation details from text.",
		InputSchema: Schema(),
	}
}
