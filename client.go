package idanalyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	endpointUS = "https://api.idanalyzer.com/"
	endpointEU = "https://api-eu.idanalyzer.com/"

	defaultTimeout = 60 * time.Second

	// clientLibrary identifies this SDK in every request payload.
	clientLibrary = "go-sdk"
)

// Region selects which of the platform's deployments a client talks to.
type Region string

const (
	// RegionUS is the United States deployment, the default.
	RegionUS Region = "US"
	// RegionEU is the European deployment.
	RegionEU Region = "EU"
)

// option is a function that configures a client
type option func(*cfg)

// WithAPIKey sets the API key for the client. Keys are issued through the
// ID Analyzer web portal.
func WithAPIKey(apiKey string) option {
	return func(c *cfg) {
		c.apiKey = apiKey
	}
}

// WithRegion selects the API region (RegionUS or RegionEU). Defaults to
// RegionUS when not set.
func WithRegion(region Region) option {
	return func(c *cfg) {
		c.region = region
	}
}

// WithEndpoint points the client at a custom base URL. This is only needed
// for private deployments; it takes precedence over WithRegion.
func WithEndpoint(endpoint string) option {
	return func(c *cfg) {
		c.endpoint = endpoint
	}
}

// WithCompanyName sets the company name displayed on DocuPass pages. Only
// used by DocuPassClient.
func WithCompanyName(name string) option {
	return func(c *cfg) {
		c.companyName = name
	}
}

// WithTimeout sets the request timeout. If not set, the default timeout is
// 60 seconds. Ignored when a custom HTTP client is supplied.
func WithTimeout(timeout time.Duration) option {
	return func(c *cfg) {
		c.timeout = timeout
	}
}

// WithHTTPClient supplies the *http.Client used for all requests. Useful for
// proxies, custom TLS configuration, or testing.
func WithHTTPClient(httpClient *http.Client) option {
	return func(c *cfg) {
		c.httpClient = httpClient
	}
}

// WithLogger attaches a logrus logger for debug-level request logging. The
// SDK logs nothing by default.
func WithLogger(logger *logrus.Logger) option {
	return func(c *cfg) {
		c.logger = logger
	}
}

// envCredentials is filled from IDANALYZER_APIKEY and IDANALYZER_REGION.
type envCredentials struct {
	APIKey string `envconfig:"APIKEY"`
	Region string `envconfig:"REGION" default:"US"`
}

// FromEnv reads the API key and region from the IDANALYZER_APIKEY and
// IDANALYZER_REGION environment variables. Options placed after FromEnv
// override the environment.
func FromEnv() option {
	return func(c *cfg) {
		var env envCredentials
		if err := envconfig.Process("idanalyzer", &env); err != nil {
			c.err = fmt.Errorf("failed to read environment configuration: %w", err)
			return
		}
		c.apiKey = env.APIKey
		c.region = Region(env.Region)
	}
}

// cfg holds construction-time configuration shared by all clients
type cfg struct {
	apiKey      string
	region      Region
	endpoint    string
	companyName string
	timeout     time.Duration
	httpClient  *http.Client
	logger      *logrus.Logger

	// err records an option that failed to apply, surfaced by the constructor
	err error
}

// baseClient performs the HTTP exchange shared by all four service clients:
// attach credentials, POST the JSON payload, classify the response. The
// credential and endpoint are immutable after construction.
type baseClient struct {
	apiKey        string
	endpoint      string
	throwAPIError bool
	httpClient    *http.Client
	logger        *logrus.Logger
}

func newBaseClient(options ...option) (*baseClient, *cfg, error) {
	config := &cfg{
		region:  RegionUS,
		timeout: defaultTimeout,
	}
	for _, option := range options {
		option(config)
	}

	if config.err != nil {
		return nil, nil, config.err
	}
	if config.apiKey == "" {
		return nil, nil, ErrAPIKeyRequired
	}

	endpoint := config.endpoint
	if endpoint == "" {
		switch Region(strings.ToUpper(string(config.region))) {
		case RegionUS:
			endpoint = endpointUS
		case RegionEU:
			endpoint = endpointEU
		case "":
			return nil, nil, ErrRegionRequired
		default:
			return nil, nil, invalidArg("region", "unknown region, US or EU accepted")
		}
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	httpClient := config.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.timeout}
	}

	logger := config.logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &baseClient{
		apiKey:     config.apiKey,
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}, config, nil
}

// ThrowAPIError controls how logical API rejections are surfaced. When
// enabled, a response carrying an error object is converted into a *APIError.
// When disabled (the default) the response body is returned unchanged and the
// caller inspects the error field itself.
func (c *baseClient) ThrowAPIError(enabled bool) {
	c.throwAPIError = enabled
}

// post submits one payload to the given API path and classifies the result.
// Exactly one attempt is made per call.
func (c *baseClient) post(ctx context.Context, path string, payload map[string]any) (Response, error) {
	payload["apikey"] = c.apiKey
	payload["client"] = clientLibrary

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "send", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read", StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start),
	}).Debug("idanalyzer: API call completed")

	var result Response
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &TransportError{Op: "decode", StatusCode: resp.StatusCode, Err: err}
	}

	// An error object in the body takes precedence over the HTTP status; the
	// API reports logical failures on success statuses as well.
	if apiErr := result.apiError(); apiErr != nil {
		if c.throwAPIError {
			return nil, apiErr
		}
		return result, nil
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{
			Op:         "status",
			StatusCode: resp.StatusCode,
			Err:        errors.New("unexpected HTTP status"),
		}
	}

	return result, nil
}

// Response is a decoded API response body. The platform's response schema is
// versioned independently of this SDK, so fields are passed through verbatim
// rather than mapped onto fixed structs; consult the API reference for the
// fields each endpoint returns (e.g. result, authentication, face, vaultid,
// url, qrcode).
type Response map[string]any

// apiError extracts the platform's error object from a response body, or
// returns nil when the response carries none.
func (r Response) apiError() *APIError {
	v, ok := r["error"]
	if !ok || v == nil {
		return nil
	}

	apiErr := &APIError{}
	switch e := v.(type) {
	case map[string]any:
		if msg, ok := e["message"].(string); ok {
			apiErr.Message = msg
		}
		switch code := e["code"].(type) {
		case float64:
			apiErr.Code = int(code)
		case string:
			apiErr.Code, _ = strconv.Atoi(code)
		}
	case string:
		apiErr.Message = e
	default:
		apiErr.Message = fmt.Sprint(v)
	}
	return apiErr
}

// joinCodes flattens values that may themselves be comma separated into the
// API's comma-delimited form, preserving order. joinCodes("US,CA", "AU")
// yields "US,CA,AU".
func joinCodes(values []string) string {
	var codes []string
	for _, value := range values {
		for _, code := range strings.Split(value, ",") {
			code = strings.TrimSpace(code)
			if code != "" {
				codes = append(codes, code)
			}
		}
	}
	return strings.Join(codes, ",")
}
