package idanalyzer

import (
	"context"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// coreDefaults mirrors the Core API's default parameter set. The apikey and
// client fields are attached at submission time.
var coreDefaults = map[string]any{
	"accuracy":               2,
	"authenticate":           false,
	"authenticate_module":    1,
	"ocr_scaledown":          2000,
	"outputimage":            false,
	"outputface":             false,
	"outputmode":             "url",
	"dualsidecheck":          false,
	"verify_expiry":          true,
	"verify_documentno":      "",
	"verify_name":            "",
	"verify_dob":             "",
	"verify_age":             "",
	"verify_address":         "",
	"verify_postcode":        "",
	"country":                "",
	"region":                 "",
	"type":                   "",
	"checkblocklist":         "",
	"vault_save":             true,
	"vault_saveunrecognized": "",
	"vault_noduplicate":      "",
	"vault_automerge":        "",
	"vault_customdata1":      "",
	"vault_customdata2":      "",
	"vault_customdata3":      "",
	"vault_customdata4":      "",
	"vault_customdata5":      "",
	"barcodemode":            false,
	"biometric_threshold":    0.4,
	"aml_check":              false,
	"aml_strict_match":       false,
	"aml_database":           "",
	"contract_generate":      "",
	"contract_format":        "",
	"contract_prefill_data":  "",
}

// CoreClient submits documents and biometric images directly to the Core API
// to scan and validate global driver licenses, passports and ID cards.
//
// Configuration accumulates across setter calls with last-write-wins
// semantics and is reused by every subsequent Scan until changed or reset.
// A CoreClient is not safe for concurrent use; give each goroutine its own
// client or serialize the configure-then-scan sequence.
type CoreClient struct {
	*baseClient
	config map[string]any
}

// NewCoreClient creates a Core API client.
func NewCoreClient(options ...option) (*CoreClient, error) {
	base, _, err := newBaseClient(options...)
	if err != nil {
		return nil, err
	}
	c := &CoreClient{baseClient: base}
	c.ResetConfig()
	return c, nil
}

// ResetConfig restores every scan parameter to its default, keeping the API
// key and region.
func (c *CoreClient) ResetConfig() {
	config := make(map[string]any, len(coreDefaults))
	for k, v := range coreDefaults {
		config[k] = v
	}
	c.config = config
}

// SetAccuracy sets OCR accuracy: 0 fast, 1 balanced, 2 accurate.
func (c *CoreClient) SetAccuracy(accuracy int) {
	c.config["accuracy"] = accuracy
}

// EnableAuthentication validates that the document is authentic and has not
// been tampered with, using the given authentication module: AuthModule1,
// AuthModule2 or AuthModuleQuick.
func (c *CoreClient) EnableAuthentication(enabled bool, module AuthModule) error {
	c.config["authenticate"] = enabled

	if enabled {
		value, err := module.payloadValue()
		if err != nil {
			return err
		}
		c.config["authenticate_module"] = value
	}
	return nil
}

// SetOCRImageResize scales down uploaded images before OCR. Accepts 0 to
// disable resizing, or a value between 500 and 4000. Tune this for large
// full-resolution images.
func (c *CoreClient) SetOCRImageResize(maxScale int) error {
	if maxScale != 0 && (maxScale < 500 || maxScale > 4000) {
		return invalidArg("ocr_scaledown", "0, or 500 to 4000 accepted")
	}
	c.config["ocr_scaledown"] = maxScale
	return nil
}

// SetBiometricThreshold sets the minimum confidence score, between 0 and 1,
// to consider two faces identical. Higher values yield stricter verification.
func (c *CoreClient) SetBiometricThreshold(threshold float64) error {
	if threshold < 0 || threshold > 1 {
		return invalidArg("biometric_threshold", "value between 0 and 1 accepted")
	}
	c.config["biometric_threshold"] = threshold
	return nil
}

// EnableImageOutput returns cropped images of the document and/or detected
// face. outputFormat is "url" or "base64".
func (c *CoreClient) EnableImageOutput(cropDocument, cropFace bool, outputFormat string) error {
	if outputFormat != "url" && outputFormat != "base64" {
		return invalidArg("outputmode", `"url" or "base64" accepted`)
	}
	c.config["outputimage"] = cropDocument
	c.config["outputface"] = cropFace
	c.config["outputmode"] = outputFormat
	return nil
}

// EnableAMLCheck checks the document holder's name and document number
// against the AML database for sanctions, crimes and PEPs.
func (c *CoreClient) EnableAMLCheck(enabled bool) {
	c.config["aml_check"] = enabled
}

// SetAMLDatabase restricts the AML check to specific source databases, e.g.
// "un_sc", "us_ofac". Values may be comma-delimited strings or individual
// codes. Leave empty to check all databases.
func (c *CoreClient) SetAMLDatabase(databases ...string) {
	c.config["aml_database"] = joinCodes(databases)
}

// EnableAMLStrictMatch only matches AML entities whose nationality and
// birthday are identical, reducing false positives.
func (c *CoreClient) EnableAMLStrictMatch(enabled bool) {
	c.config["aml_strict_match"] = enabled
}

// EnableDualsideCheck verifies that names, document number and type match
// between the front and back of the document during dual-side scans.
func (c *CoreClient) EnableDualsideCheck(enabled bool) {
	c.config["dualsidecheck"] = enabled
}

// VerifyExpiry checks whether the document is still valid based on its
// expiry date.
func (c *CoreClient) VerifyExpiry(enabled bool) {
	c.config["verify_expiry"] = enabled
}

// VerifyDocumentNumber checks the supplied document or personal number
// against the document. Pass an empty string to clear.
func (c *CoreClient) VerifyDocumentNumber(documentNumber string) {
	c.config["verify_documentno"] = documentNumber
}

// VerifyName checks the supplied full name against the document. Pass an
// empty string to clear.
func (c *CoreClient) VerifyName(fullName string) {
	c.config["verify_name"] = fullName
}

// VerifyDOB checks the supplied date of birth, in YYYY/MM/DD format, against
// the document. Pass an empty string to clear.
func (c *CoreClient) VerifyDOB(dob string) error {
	if err := validateDOB(dob); err != nil {
		return err
	}
	c.config["verify_dob"] = dob
	return nil
}

// VerifyAge checks that the document holder's age falls in the given range,
// e.g. "18-40". Pass an empty string to clear.
func (c *CoreClient) VerifyAge(ageRange string) error {
	if err := validateAgeRange(ageRange); err != nil {
		return err
	}
	c.config["verify_age"] = ageRange
	return nil
}

// VerifyAddress checks the supplied address against the document. Pass an
// empty string to clear.
func (c *CoreClient) VerifyAddress(address string) {
	c.config["verify_address"] = address
}

// VerifyPostcode checks the supplied postcode against the document. Pass an
// empty string to clear.
func (c *CoreClient) VerifyPostcode(postcode string) {
	c.config["verify_postcode"] = postcode
}

// RestrictCountry only accepts documents issued by the given ISO ALPHA-2
// countries. Values may be individual codes or comma-delimited strings:
// RestrictCountry("US", "CA") and RestrictCountry("US,CA") are equivalent.
// Call with no arguments to clear the restriction.
func (c *CoreClient) RestrictCountry(countryCodes ...string) {
	c.config["country"] = joinCodes(countryCodes)
}

// RestrictState only accepts documents issued by the given states, e.g.
// "CA,TX". Call with no arguments to clear the restriction.
func (c *CoreClient) RestrictState(states ...string) {
	c.config["region"] = joinCodes(states)
}

// RestrictType only accepts the given document types: P passport, D driver's
// license, I identity card. "PD" accepts both passports and driver licenses.
// Pass an empty string to clear the restriction.
func (c *CoreClient) RestrictType(documentType string) {
	c.config["type"] = documentType
}

// EnableBarcodeMode disables visual OCR and reads data from AAMVA barcodes
// only.
func (c *CoreClient) EnableBarcodeMode(enabled bool) {
	c.config["barcodemode"] = enabled
}

// EnableVault saves the document image and parsed information into the
// secured vault. saveUnrecognized stores images even when the document
// cannot be recognized, noDuplicateImage prevents duplicate images from
// being saved, and autoMergeDocument merges images sharing a document number
// into a single vault entry.
func (c *CoreClient) EnableVault(enabled, saveUnrecognized, noDuplicateImage, autoMergeDocument bool) {
	c.config["vault_save"] = enabled
	c.config["vault_saveunrecognized"] = saveUnrecognized
	c.config["vault_noduplicate"] = noDuplicateImage
	c.config["vault_automerge"] = autoMergeDocument
}

// SetVaultData associates up to five custom strings with the vault entry,
// useful for filtering and searching entries later.
func (c *CoreClient) SetVaultData(data ...string) error {
	if len(data) > 5 {
		return invalidArg("vault_customdata", "maximum 5 custom data fields accepted")
	}
	for i := 0; i < 5; i++ {
		value := ""
		if i < len(data) {
			value = data[i]
		}
		c.config["vault_customdata"+strconv.Itoa(i+1)] = value
	}
	return nil
}

// GenerateContract autofills a contract template with data from the scanned
// document. format is "PDF", "DOCX" or "HTML"; prefillData fills dynamic
// template fields.
func (c *CoreClient) GenerateContract(templateID, format string, prefillData map[string]any) error {
	if templateID == "" {
		return invalidArg("contract_generate", "template ID required")
	}
	if prefillData == nil {
		prefillData = map[string]any{}
	}
	c.config["contract_generate"] = templateID
	c.config["contract_format"] = format
	c.config["contract_prefill_data"] = prefillData
	return nil
}

// SetParameter sets any API parameter directly, bypassing the typed setters.
// No local validation is applied.
func (c *CoreClient) SetParameter(key string, value any) {
	c.config[key] = value
}

// ScanOptions carries the images for one Scan call. Document is required;
// every other input is optional and omitted from the request when nil.
type ScanOptions struct {
	// Document is the front of the identity document.
	Document Input
	// DocumentBack is the back of the document, for dual-side scans.
	DocumentBack Input
	// Face is a photo of the document holder for biometric verification.
	Face Input
	// FaceVideo is a video of the document holder for biometric verification.
	FaceVideo Input
	// FaceVideoPasscode is the 4-digit number the holder speaks or displays
	// in the video. Required when FaceVideo is set.
	FaceVideoPasscode string
}

// Scan performs a document scan with the accumulated configuration and
// returns the verification results. The configuration is left untouched and
// is reused by subsequent calls.
func (c *CoreClient) Scan(ctx context.Context, opts ScanOptions) (Response, error) {
	if opts.Document == nil {
		return nil, ErrPrimaryDocumentRequired
	}

	payload := make(map[string]any, len(c.config)+8)
	for k, v := range c.config {
		payload[k] = v
	}

	if err := applyInput(payload, opts.Document, "url", "file_base64"); err != nil {
		return nil, err
	}
	if err := applyInput(payload, opts.DocumentBack, "url_back", "file_back_base64"); err != nil {
		return nil, err
	}
	if err := applyInput(payload, opts.Face, "faceurl", "face_base64"); err != nil {
		return nil, err
	}
	if opts.FaceVideo != nil {
		if err := applyInput(payload, opts.FaceVideo, "videourl", "video_base64"); err != nil {
			return nil, err
		}
		if err := validation.Validate(opts.FaceVideoPasscode, validation.Required, validation.Match(passcodePattern)); err != nil {
			return nil, &InvalidArgumentError{Field: "passcode", Err: err}
		}
		payload["passcode"] = opts.FaceVideoPasscode
	}

	return c.post(ctx, "", payload)
}

// AuthModule selects the document authentication engine.
type AuthModule string

const (
	// AuthModule1 is the first generation authentication module.
	AuthModule1 AuthModule = "1"
	// AuthModule2 is the second generation authentication module.
	AuthModule2 AuthModule = "2"
	// AuthModuleQuick performs a faster, less thorough check.
	AuthModuleQuick AuthModule = "quick"
)

// payloadValue converts the module to the API's expected representation:
// numeric modules are sent as integers.
func (m AuthModule) payloadValue() (any, error) {
	switch m {
	case AuthModule1:
		return 1, nil
	case AuthModule2:
		return 2, nil
	case AuthModuleQuick:
		return "quick", nil
	}
	return nil, invalidArg("authenticate_module", `1, 2 or "quick" accepted`)
}

var (
	agePattern      = regexp.MustCompile(`^\d+-\d+$`)
	passcodePattern = regexp.MustCompile(`^[0-9]{4}$`)
)

// validateDOB accepts an empty string or a YYYY/MM/DD date.
func validateDOB(dob string) error {
	if err := validation.Validate(dob, validation.Date("2006/01/02")); err != nil {
		return &InvalidArgumentError{Field: "verify_dob", Err: err}
	}
	return nil
}

// validateAgeRange accepts an empty string or a minAge-maxAge range.
func validateAgeRange(ageRange string) error {
	if err := validation.Validate(ageRange, validation.Match(agePattern)); err != nil {
		return &InvalidArgumentError{Field: "verify_age", Err: err}
	}
	return nil
}

// validateURL accepts an empty string or a well-formed URL.
func validateURL(field, url string) error {
	if err := validation.Validate(url, is.URL); err != nil {
		return &InvalidArgumentError{Field: field, Err: err}
	}
	return nil
}
