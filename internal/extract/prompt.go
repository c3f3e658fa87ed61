package extract

import "fmt"

// systemPrompt pins the model to the supplied text and defines the status
// semantics.
const systemPrompt = "You are an assistant specialized in extracting structured company information. " +
	"Only use the provided text and do not add external information. " +
	"If a fact is not explicitly mentioned but can be reasonably deduced, set extraction_status to 'deduced'. " +
	"If no information is found for a field, set it to null or 'not_found'."

// userPromptTemplate embeds the known identifying fields, the page text, and
// one worked example demonstrating the exact output shape.
const userPromptTemplate = `Extract the following JSON for the company:
Domain: %s
Company Name: %s
Text:
%s

Example output for a known company:
{
  "domain": "sample.com",
  "company_name": "Sample Inc.",
  "manufactures_in_house": "No",
  "in_house_details": null,
  "outsourced": "Yes",
  "outsourcing_partners": [
    {"name": "ACME Co.", "website": "acme.com", "contact": null}
  ],
  "parent_company": "Global Holdings",
  "affiliate_companies": [],
  "extraction_status": "explicit"
}`

// buildUserPrompt renders the task prompt for one record.
func buildUserPrompt(domain, companyName, text string) string {
	return fmt.Sprintf(userPromptTemplate, domain, companyName, text)
}
