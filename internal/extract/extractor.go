// Package extract fills a company record's structured fields from its
// accumulated page text via a schema-constrained model call.
package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/companyinfo-cli/internal/model"
	"github.com/sells-group/companyinfo-cli/pkg/anthropic"
)

// maxTextChars is the upstream context budget: raw text beyond this is
// truncated to its tail, keeping the most recently appended content.
const maxTextChars = 12000

// maxOutputTokens bounds the structured response.
const maxOutputTokens = 2048

// Extractor runs the structured extraction call for a record.
type Extractor struct {
	client anthropic.Client
	model  string
}

// New creates an Extractor using the given client and model ID.
func New(client anthropic.Client, modelID string) *Extractor {
	return &Extractor{client: client, model: modelID}
}

// extractionArgs mirrors the tool input schema.
type extractionArgs struct {
	Domain              string          `json:"domain"`
	CompanyName         string          `json:"company_name"`
	ManufacturesInHouse *string         `json:"manufactures_in_house"`
	InHouseDetails      *string         `json:"in_house_details"`
	Outsourced          *string         `json:"outsourced"`
	OutsourcingPartners []model.Partner `json:"outsourcing_partners"`
	ParentCompany       *string         `json:"parent_company"`
	AffiliateCompanies  []string        `json:"affiliate_companies"`
	ExtractionStatus    string          `json:"extraction_status"`
}

// Extract runs the model call once for the record and merges the structured
// result into it. Unparseable responses are non-fatal: the structured fields
// stay empty, extraction_status is set to parse_error, and last_updated is
// still stamped. Only a failed API call returns an error, with the record
// untouched.
func (e *Extractor) Extract(ctx context.Context, rec *model.CompanyRecord) error {
	text := TruncateTail(rec.RawText, maxTextChars)

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: maxOutputTokens,
		System: []anthropic.SystemBlock{
			{Text: systemPrompt},
		},
		Messages: []anthropic.Message{
			{Role: "user", Content: buildUserPrompt(rec.Domain, rec.CompanyName, text)},
		},
		Tools:     []anthropic.Tool{Tool()},
		ForceTool: ToolName,
	})
	if err != nil {
		return eris.Wrap(err, "extract: create message")
	}

	resp.Usage.LogCost(e.model, "extract")

	input, ok := resp.ToolInput(ToolName)
	if !ok {
		zap.L().Error("extract: response missing tool_use block",
			zap.String("domain", rec.Domain),
			zap.String("stop_reason", resp.StopReason),
		)
		e.finalize(rec, nil, false)
		return nil
	}

	var args extractionArgs
	if err := json.Unmarshal(input, &args); err != nil {
		zap.L().Error("extract: parse tool arguments",
			zap.String("domain", rec.Domain),
			zap.Error(err),
		)
		e.finalize(rec, nil, false)
		return nil
	}

	e.finalize(rec, &args, true)
	return nil
}

// finalize merges parsed arguments into the record and stamps last_updated.
// The record's domain is set at creation and is never overwritten here.
func (e *Extractor) finalize(rec *model.CompanyRecord, args *extractionArgs, parsed bool) {
	if parsed {
		if args.CompanyName != "" {
			rec.CompanyName = args.CompanyName
		}
		rec.ManufacturesInHouse = args.ManufacturesInHouse
		rec.InHouseDetails = args.InHouseDetails
		rec.Outsourced = args.Outsourced
		rec.OutsourcingPartners = args.OutsourcingPartners
		rec.ParentCompany = args.ParentCompany
		rec.AffiliateCompanies = args.AffiliateCompanies
		rec.ExtractionStatus = model.ExtractionStatus(args.ExtractionStatus)
		if !rec.ExtractionStatus.Valid() {
			rec.ExtractionStatus = model.StatusParseError
		}
	} else {
		rec.ExtractionStatus = model.StatusParseError
	}
	rec.LastUpdated = time.Now().UTC().Format("2006-01-02")
}

// TruncateTail returns the last max characters of s, or s unchanged if it is
// short enough. Counted in runes so a multibyte character is never split.
func TruncateTail(s string, max int) string {
	if len(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[len(r)-max:])
}
