package idanalyzer

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// docuPassDefaults mirrors the DocuPass API's default parameter set.
var docuPassDefaults = map[string]any{
	"companyname":           "",
	"callbackurl":           "",
	"biometric":             0,
	"authenticate_minscore": 0,
	"authenticate_module":   2,
	"maxattempt":            1,
	"documenttype":          "",
	"documentcountry":       "",
	"documentregion":        "",
	"dualsidecheck":         false,
	"verify_expiry":         false,
	"verify_documentno":     "",
	"verify_name":           "",
	"verify_dob":            "",
	"verify_age":            "",
	"verify_address":        "",
	"verify_postcode":       "",
	"successredir":          "",
	"failredir":             "",
	"customid":              "",
	"vault_save":            true,
	"return_documentimage":  true,
	"return_faceimage":      true,
	"return_type":           1,
	"qr_color":              "",
	"qr_bgcolor":            "",
	"qr_size":               "",
	"qr_margin":             "",
	"welcomemessage":        "",
	"nobranding":            "",
	"logo":                  "",
	"language":              "",
	"biometric_threshold":   0.4,
	"reusable":              false,
	"aml_check":             false,
	"aml_strict_match":      false,
	"aml_database":          "",
	"phoneverification":     false,
	"verify_phone":          "",
	"sms_verification_link": "",
	"customhtmlurl":         "",
	"contract_generate":     "",
	"contract_sign":         "",
	"contract_format":       "",
	"contract_prefill_data": "",
	"sms_contract_link":     "",
}

// defaultCompanyName is displayed on DocuPass pages when WithCompanyName is
// not supplied.
const defaultCompanyName = "My Company Name"

// DocuPassClient creates hosted verification and e-signature sessions. Each
// session produces a reference code, a set of session URLs and a QR code that
// you hand to the user; results are delivered asynchronously to the callback
// URL set via SetCallbackURL.
//
// Like CoreClient, configuration accumulates with last-write-wins semantics
// and a client instance is not safe for concurrent use.
type DocuPassClient struct {
	*baseClient
	companyName string
	config      map[string]any
}

// NewDocuPassClient creates a DocuPass API client. Set the name shown to
// your users with WithCompanyName.
func NewDocuPassClient(options ...option) (*DocuPassClient, error) {
	base, config, err := newBaseClient(options...)
	if err != nil {
		return nil, err
	}
	companyName := config.companyName
	if companyName == "" {
		companyName = defaultCompanyName
	}
	c := &DocuPassClient{baseClient: base, companyName: companyName}
	c.ResetConfig()
	return c, nil
}

// ResetConfig restores every session parameter to its default, keeping the
// API key, region and company name.
func (c *DocuPassClient) ResetConfig() {
	config := make(map[string]any, len(docuPassDefaults))
	for k, v := range docuPassDefaults {
		config[k] = v
	}
	config["companyname"] = c.companyName
	c.config = config
}

// SetMaxAttempt sets the number of verification attempts each user gets,
// between 1 and 10.
func (c *DocuPassClient) SetMaxAttempt(maxAttempt int) error {
	if maxAttempt < 1 || maxAttempt > 10 {
		return invalidArg("maxattempt", "integer between 1 and 10 accepted")
	}
	c.config["maxattempt"] = maxAttempt
	return nil
}

// SetCustomID attaches a custom string that is sent back to your callback
// and appended to redirection URLs as a query string, useful for identifying
// the user in your own database. Stored under docupass_customid in the vault.
func (c *DocuPassClient) SetCustomID(customID string) {
	c.config["customid"] = customID
}

// SetWelcomeMessage displays a custom message to the user at the beginning
// of verification.
func (c *DocuPassClient) SetWelcomeMessage(message string) {
	c.config["welcomemessage"] = message
}

// SetLogo replaces the footer logo with your own logo URL.
func (c *DocuPassClient) SetLogo(url string) {
	c.config["logo"] = url
}

// HideBrandingLogo hides all branding logos.
func (c *DocuPassClient) HideBrandingLogo(hidden bool) {
	c.config["nobranding"] = hidden
}

// SetCustomHTMLURL replaces DocuPass page content with your own HTML and CSS,
// served from the given URL.
func (c *DocuPassClient) SetCustomHTMLURL(url string) {
	c.config["customhtmlurl"] = url
}

// SetLanguage overrides automatic language detection. See the API reference
// for supported language codes.
func (c *DocuPassClient) SetLanguage(language string) {
	c.config["language"] = language
}

// SetCallbackURL sets the server-side webhook that receives verification
// results. This SDK only registers the URL; receiving and parsing the
// callback is your application's responsibility.
func (c *DocuPassClient) SetCallbackURL(url string) error {
	if err := validateURL("callbackurl", url); err != nil {
		return err
	}
	c.config["callbackurl"] = url
	return nil
}

// SetRedirectionURL redirects the user's browser after verification. The
// DocuPass reference code and custom ID are appended as query strings, e.g.
// https://example.com/success?reference=XXX&customid=XXX.
func (c *DocuPassClient) SetRedirectionURL(successURL, failURL string) error {
	if err := validateURL("successredir", successURL); err != nil {
		return err
	}
	if err := validateURL("failredir", failURL); err != nil {
		return err
	}
	c.config["successredir"] = successURL
	c.config["failredir"] = failURL
	return nil
}

// EnableAuthentication requires the uploaded document to pass authenticity
// checks with at least minimumScore, a value between 0 (exclusive) and 1.
func (c *DocuPassClient) EnableAuthentication(enabled bool, module AuthModule, minimumScore float64) error {
	if !enabled {
		c.config["authenticate_minscore"] = 0
		return nil
	}
	if minimumScore <= 0 || minimumScore > 1 {
		return invalidArg("authenticate_minscore", "value between 0 and 1 accepted")
	}
	value, err := module.payloadValue()
	if err != nil {
		return err
	}
	c.config["authenticate_module"] = value
	c.config["authenticate_minscore"] = minimumScore
	return nil
}

// FaceVerification selects how DocuPass users prove liveness.
type FaceVerification int

const (
	// FaceVerificationPhoto asks the user for a selfie photo.
	FaceVerificationPhoto FaceVerification = 1
	// FaceVerificationVideo asks the user to record a selfie video.
	FaceVerificationVideo FaceVerification = 2
)

// EnableFaceVerification requires users to submit a selfie photo or video,
// matched against the document photo with the given confidence threshold.
func (c *DocuPassClient) EnableFaceVerification(enabled bool, verificationType FaceVerification, threshold float64) error {
	if !enabled {
		c.config["biometric"] = 0
		return nil
	}
	if verificationType != FaceVerificationPhoto && verificationType != FaceVerificationVideo {
		return invalidArg("biometric", "1 for photo verification, 2 for video verification")
	}
	c.config["biometric"] = int(verificationType)
	c.config["biometric_threshold"] = threshold
	return nil
}

// SetReusable allows multiple users to verify through the same session URL;
// a new reference code is generated for each user automatically.
func (c *DocuPassClient) SetReusable(reusable bool) {
	c.config["reusable"] = reusable
}

// SetCallbackImage controls whether the user's document and face images are
// returned in the callback, and in which form: 0 base64, 1 URL.
func (c *DocuPassClient) SetCallbackImage(returnDocumentImage, returnFaceImage bool, returnType int) {
	c.config["return_documentimage"] = returnDocumentImage
	c.config["return_faceimage"] = returnFaceImage
	if returnType == 0 {
		c.config["return_type"] = 0
	} else {
		c.config["return_type"] = 1
	}
}

// SetQRCodeFormat styles the QR code generated for mobile sessions. Colors
// are hex codes such as "000000", size is 1 to 50 and margin is 0 to 50.
func (c *DocuPassClient) SetQRCodeFormat(foregroundColor, backgroundColor string, size, margin int) error {
	if err := validation.Validate(foregroundColor, validation.Required, is.HexColor); err != nil {
		return &InvalidArgumentError{Field: "qr_color", Err: err}
	}
	if err := validation.Validate(backgroundColor, validation.Required, is.HexColor); err != nil {
		return &InvalidArgumentError{Field: "qr_bgcolor", Err: err}
	}
	if size < 1 || size > 50 {
		return invalidArg("qr_size", "integer between 1 and 50 accepted")
	}
	if margin < 0 || margin > 50 {
		return invalidArg("qr_margin", "integer between 0 and 50 accepted")
	}
	c.config["qr_color"] = foregroundColor
	c.config["qr_bgcolor"] = backgroundColor
	c.config["qr_size"] = size
	c.config["qr_margin"] = margin
	return nil
}

// EnableDualsideCheck verifies that names, document number and type match
// between the front and back of the document during dual-side scans.
func (c *DocuPassClient) EnableDualsideCheck(enabled bool) {
	c.config["dualsidecheck"] = enabled
}

// EnableAMLCheck checks the document holder's name and document number
// against the AML database for sanctions, crimes and PEPs.
func (c *DocuPassClient) EnableAMLCheck(enabled bool) {
	c.config["aml_check"] = enabled
}

// SetAMLDatabase restricts the AML check to specific source databases. Leave
// empty to check all databases.
func (c *DocuPassClient) SetAMLDatabase(databases ...string) {
	c.config["aml_database"] = joinCodes(databases)
}

// EnableAMLStrictMatch only matches AML entities whose nationality and
// birthday are identical, reducing false positives.
func (c *DocuPassClient) EnableAMLStrictMatch(enabled bool) {
	c.config["aml_strict_match"] = enabled
}

// EnablePhoneVerification asks the user to verify a phone number during the
// session; the verified number is returned in the callback.
func (c *DocuPassClient) EnablePhoneVerification(enabled bool) {
	c.config["phoneverification"] = enabled
}

// SMSVerificationLink texts the session link to the given number in
// international format, e.g. "+1333444555". The number is considered
// verified once the user completes verification.
func (c *DocuPassClient) SMSVerificationLink(mobileNumber string) {
	c.config["sms_verification_link"] = mobileNumber
}

// SMSContractLink texts a document review and signing link to the given
// number in international format.
func (c *DocuPassClient) SMSContractLink(mobileNumber string) {
	c.config["sms_contract_link"] = mobileNumber
}

// VerifyPhone verifies the given phone number as part of the session; users
// cannot enter or change the number themselves.
func (c *DocuPassClient) VerifyPhone(phoneNumber string) {
	c.config["verify_phone"] = phoneNumber
}

// VerifyExpiry checks whether the document is still valid based on its
// expiry date.
func (c *DocuPassClient) VerifyExpiry(enabled bool) {
	c.config["verify_expiry"] = enabled
}

// VerifyDocumentNumber checks the supplied document or personal number
// against the document. Pass an empty string to clear.
func (c *DocuPassClient) VerifyDocumentNumber(documentNumber string) {
	c.config["verify_documentno"] = documentNumber
}

// VerifyName checks the supplied full name against the document. Pass an
// empty string to clear.
func (c *DocuPassClient) VerifyName(fullName string) {
	c.config["verify_name"] = fullName
}

// VerifyDOB checks the supplied date of birth, in YYYY/MM/DD format, against
// the document. Pass an empty string to clear.
func (c *DocuPassClient) VerifyDOB(dob string) error {
	if err := validateDOB(dob); err != nil {
		return err
	}
	c.config["verify_dob"] = dob
	return nil
}

// VerifyAge checks that the document holder's age falls in the given range,
// e.g. "18-40". Pass an empty string to clear.
func (c *DocuPassClient) VerifyAge(ageRange string) error {
	if err := validateAgeRange(ageRange); err != nil {
		return err
	}
	c.config["verify_age"] = ageRange
	return nil
}

// VerifyAddress checks the supplied address against the document. Pass an
// empty string to clear.
func (c *DocuPassClient) VerifyAddress(address string) {
	c.config["verify_address"] = address
}

// VerifyPostcode checks the supplied postcode against the document. Pass an
// empty string to clear.
func (c *DocuPassClient) VerifyPostcode(postcode string) {
	c.config["verify_postcode"] = postcode
}

// RestrictCountry only accepts documents issued by the given ISO ALPHA-2
// countries. Values may be individual codes or comma-delimited strings.
// Call with no arguments to clear the restriction.
func (c *DocuPassClient) RestrictCountry(countryCodes ...string) {
	c.config["documentcountry"] = joinCodes(countryCodes)
}

// RestrictState only accepts documents issued by the given states. Call with
// no arguments to clear the restriction.
func (c *DocuPassClient) RestrictState(states ...string) {
	c.config["documentregion"] = joinCodes(states)
}

// RestrictType only accepts the given document types: P passport, D driver's
// license, I identity card. Pass an empty string to clear the restriction.
func (c *DocuPassClient) RestrictType(documentType string) {
	c.config["documenttype"] = documentType
}

// EnableVault saves the document image and parsed information into the
// secured vault.
func (c *DocuPassClient) EnableVault(enabled bool) {
	c.config["vault_save"] = enabled
}

// SetParameter sets any API parameter directly, bypassing the typed setters.
// No local validation is applied.
func (c *DocuPassClient) SetParameter(key string, value any) {
	c.config[key] = value
}

// GenerateContract autofills a contract template with the user's verified
// data once the session completes. format is "PDF", "DOCX" or "HTML".
// Mutually exclusive with SignContract; the later call wins.
func (c *DocuPassClient) GenerateContract(templateID, format string, prefillData map[string]any) error {
	if templateID == "" {
		return invalidArg("contract_generate", "template ID required")
	}
	if prefillData == nil {
		prefillData = map[string]any{}
	}
	c.config["contract_sign"] = ""
	c.config["contract_generate"] = templateID
	c.config["contract_format"] = format
	c.config["contract_prefill_data"] = prefillData
	return nil
}

// SignContract has the user review and sign the autofilled contract after
// successful identity verification. Mutually exclusive with GenerateContract;
// the later call wins.
func (c *DocuPassClient) SignContract(templateID, format string, prefillData map[string]any) error {
	if templateID == "" {
		return invalidArg("contract_sign", "template ID required")
	}
	if prefillData == nil {
		prefillData = map[string]any{}
	}
	c.config["contract_generate"] = ""
	c.config["contract_sign"] = templateID
	c.config["contract_format"] = format
	c.config["contract_prefill_data"] = prefillData
	return nil
}

// CreateSignature creates a standalone e-signature session: the user reviews
// and signs the contract without identity verification. The response carries
// the session reference, URLs and QR code.
func (c *DocuPassClient) CreateSignature(ctx context.Context, templateID, format string, prefillData map[string]any) (Response, error) {
	if templateID == "" {
		return nil, invalidArg("template_id", "template ID required")
	}
	if prefillData == nil {
		prefillData = map[string]any{}
	}
	payload := c.buildPayload()
	payload["template_id"] = templateID
	payload["contract_format"] = format
	payload["contract_prefill_data"] = prefillData
	return c.post(ctx, "docupass/sign", payload)
}

// CreateIframe creates a verification session for embedding in a web page
// as an iframe.
func (c *DocuPassClient) CreateIframe(ctx context.Context) (Response, error) {
	return c.create(ctx, 0)
}

// CreateMobile creates a verification session for users to open on a mobile
// phone or embed in a mobile app.
func (c *DocuPassClient) CreateMobile(ctx context.Context) (Response, error) {
	return c.create(ctx, 1)
}

// CreateRedirection creates a verification session for users to open in any
// browser.
func (c *DocuPassClient) CreateRedirection(ctx context.Context) (Response, error) {
	return c.create(ctx, 2)
}

// CreateLiveMobile creates a Live Mobile verification session for users to
// open on a mobile phone.
func (c *DocuPassClient) CreateLiveMobile(ctx context.Context) (Response, error) {
	return c.create(ctx, 3)
}

func (c *DocuPassClient) create(ctx context.Context, module int) (Response, error) {
	payload := c.buildPayload()
	payload["type"] = module
	return c.post(ctx, "docupass/create", payload)
}

// Validate checks data received through a DocuPass callback against the
// DocuPass server to prevent request spoofing. reference and hash come from
// the callback body.
func (c *DocuPassClient) Validate(ctx context.Context, reference, hash string) (bool, error) {
	result, err := c.post(ctx, "docupass/validate", map[string]any{
		"reference": reference,
		"hash":      hash,
	})
	if err != nil {
		return false, err
	}
	success, _ := result["success"].(bool)
	return success, nil
}

func (c *DocuPassClient) buildPayload() map[string]any {
	payload := make(map[string]any, len(c.config)+4)
	for k, v := range c.config {
		payload[k] = v
	}
	return payload
}
