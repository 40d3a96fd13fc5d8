package idanalyzer

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AMLClient searches the ID Analyzer AML database for politically exposed
// persons and for people or organizations under sanctions from worldwide
// governments, supporting customer due diligence and KYC programs.
type AMLClient struct {
	*baseClient
	databases  string
	entityType string
}

// NewAMLClient creates an AML API client.
func NewAMLClient(options ...option) (*AMLClient, error) {
	base, _, err := newBaseClient(options...)
	if err != nil {
		return nil, err
	}
	return &AMLClient{baseClient: base}, nil
}

// SetDatabase restricts searches to specific source databases, e.g. "un_sc",
// "us_ofac". Values may be individual codes or comma-delimited strings.
// Leave empty to search all databases; see the AML API overview for the
// full list of codes.
func (c *AMLClient) SetDatabase(databases ...string) {
	c.databases = joinCodes(databases)
}

// SetEntityType returns only entities of the given type, "person" or
// "legalentity". Pass an empty string to return both.
func (c *AMLClient) SetEntityType(entityType string) error {
	if entityType != "" && entityType != "person" && entityType != "legalentity" {
		return invalidArg("entity", `empty, "person" or "legalentity" accepted`)
	}
	c.entityType = entityType
	return nil
}

// SearchByName searches the AML database by a person or company's name or
// alias. name must contain at least 3 characters; country (ISO 2 code) and
// dob (YYYY-MM-DD, YYYY-MM or YYYY) narrow the match and may be empty.
func (c *AMLClient) SearchByName(ctx context.Context, name, country, dob string) (Response, error) {
	if err := validation.Validate(name, validation.Required, validation.Length(3, 0)); err != nil {
		return nil, &InvalidArgumentError{Field: "name", Err: err}
	}
	return c.search(ctx, map[string]any{"name": name, "country": country, "dob": dob})
}

// SearchByIDNumber searches the AML database by a passport, ID card or other
// identification document number of at least 5 characters. country and dob
// narrow the match and may be empty.
func (c *AMLClient) SearchByIDNumber(ctx context.Context, documentNumber, country, dob string) (Response, error) {
	if err := validation.Validate(documentNumber, validation.Required, validation.Length(5, 0)); err != nil {
		return nil, &InvalidArgumentError{Field: "documentnumber", Err: err}
	}
	return c.search(ctx, map[string]any{"documentnumber": documentNumber, "country": country, "dob": dob})
}

func (c *AMLClient) search(ctx context.Context, payload map[string]any) (Response, error) {
	payload["database"] = c.databases
	payload["entity"] = c.entityType
	return c.post(ctx, "aml", payload)
}
