// Package idanalyzer provides the official Go SDK for the ID Analyzer
// identity verification platform.
//
// ID Analyzer offers document OCR and authenticity scanning, facial biometric
// verification, hosted DocuPass verification and e-signature flows, cloud
// Vault storage for verification records, and an AML/PEP sanction database.
// This SDK wraps the platform's HTTPS API with an idiomatic Go interface:
// each client prepares a request payload from accumulated options and performs
// a single round trip per call. All verification logic runs server side.
//
// # Quick Start
//
// You'll need an ID Analyzer API key from the web portal.
//
//	import idanalyzer "github.com/idanalyzer/id-analyzer-go"
//
//	// Create a Core API client
//	client, err := idanalyzer.NewCoreClient(idanalyzer.WithAPIKey("your-api-key"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Scan an identity document with a selfie photo
//	result, err := client.Scan(context.Background(), idanalyzer.ScanOptions{
//		Document: idanalyzer.FromFile("id.jpg"),
//		Face:     idanalyzer.FromFile("selfie.jpg"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(result["result"])
//
// # Clients
//
// The SDK exposes one client per capability area, each independently usable:
//
//   - CoreClient: scan and validate driver licenses, passports and ID cards
//   - DocuPassClient: hosted identity verification and e-signature sessions
//   - VaultClient: list, search and manage stored verification records
//   - AMLClient: sanction, crime and PEP database lookups
//
// # Document Inputs
//
// Document and face images can be supplied in several forms:
//
//   - Local files: idanalyzer.FromFile("path/to/image.jpg")
//   - Remote URLs: idanalyzer.FromURL("https://example.com/image.jpg")
//   - Raw bytes: idanalyzer.FromBytes(imageData)
//   - Pre-encoded base64: idanalyzer.FromBase64(encoded)
//
// Files and raw bytes are base64-encoded into the request; URLs are passed
// through for the server to fetch. Resolution happens when the request is
// submitted, not when the input is created.
//
// # Regions
//
// The platform runs in two regions. US is the default; select EU with:
//
//	client, err := idanalyzer.NewCoreClient(
//		idanalyzer.WithAPIKey("your-api-key"),
//		idanalyzer.WithRegion(idanalyzer.RegionEU),
//	)
//
// Credentials can also come from the environment (IDANALYZER_APIKEY,
// IDANALYZER_REGION) via idanalyzer.FromEnv().
//
// # Error Handling
//
// Invalid local arguments surface as *InvalidArgumentError at the setter
// call. Unreadable input files surface as *FileReadError. Connectivity
// failures and unparseable responses surface as *TransportError.
//
// When the API itself rejects a request it embeds an error object in the
// response body. By default that body is returned as-is so you can inspect
// it alongside any partial results. Call ThrowAPIError(true) on a client to
// receive a *APIError instead:
//
//	client.ThrowAPIError(true)
//	result, err := client.Scan(ctx, opts)
//	var apiErr *idanalyzer.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("API rejected request: code %d, %s\n", apiErr.Code, apiErr.Message)
//	}
//
// The SDK never retries: every call is exactly one HTTP attempt, and retry
// policy is left to the caller.
//
// For field-level API documentation visit: https://developer.idanalyzer.com
package idanalyzer
