package idanalyzer

import (
	"context"
)

// VaultClient manages verification records stored in the cloud vault by the
// Core API and DocuPass. Entries are addressed by the opaque vault IDs those
// services return.
type VaultClient struct {
	*baseClient
}

// NewVaultClient creates a Vault API client.
func NewVaultClient(options ...option) (*VaultClient, error) {
	base, _, err := newBaseClient(options...)
	if err != nil {
		return nil, err
	}
	return &VaultClient{baseClient: base}, nil
}

// Get retrieves a single vault entry by ID.
func (c *VaultClient) Get(ctx context.Context, vaultID string) (Response, error) {
	if vaultID == "" {
		return nil, invalidArg("id", "vault entry ID required")
	}
	return c.post(ctx, "vault/get", map[string]any{"id": vaultID})
}

// ListOptions filters, orders and pages a vault listing. Zero values fall
// back to the API defaults noted on each field.
type ListOptions struct {
	// Filter holds up to 5 filter statements such as "createtime>=2021/02/25".
	// Statements are passed through to the API unvalidated; see the Vault API
	// reference for field names and operators.
	Filter []string
	// OrderBy is the field used to order results. Defaults to "createtime".
	OrderBy string
	// Sort is "ASC" or "DESC". Defaults to "DESC".
	Sort string
	// Limit is the number of results to return. Defaults to 10.
	Limit int
	// Offset indexes the first result returned.
	Offset int
}

// List returns vault entries matching the given filter, ordering and paging
// options.
func (c *VaultClient) List(ctx context.Context, opts ListOptions) (Response, error) {
	payload := make(map[string]any, 8)

	if len(opts.Filter) > 0 {
		if len(opts.Filter) > 5 {
			return nil, invalidArg("filter", "maximum 5 filter statements accepted")
		}
		payload["filter"] = opts.Filter
	}

	if opts.OrderBy != "" {
		payload["orderby"] = opts.OrderBy
	} else {
		payload["orderby"] = "createtime"
	}

	if opts.Sort != "" {
		payload["sort"] = opts.Sort
	} else {
		payload["sort"] = "DESC"
	}

	if opts.Limit != 0 {
		payload["limit"] = opts.Limit
	} else {
		payload["limit"] = 10
	}

	payload["offset"] = opts.Offset

	return c.post(ctx, "vault/list", payload)
}

// Update writes new field values into an existing vault entry. data maps
// vault field names to their new values and must contain at least one field.
func (c *VaultClient) Update(ctx context.Context, vaultID string, data map[string]any) (Response, error) {
	if vaultID == "" {
		return nil, invalidArg("id", "vault entry ID required")
	}
	if len(data) == 0 {
		return nil, invalidArg("data", "minimum one field required")
	}

	payload := make(map[string]any, len(data)+3)
	for k, v := range data {
		payload[k] = v
	}
	payload["id"] = vaultID

	return c.post(ctx, "vault/update", payload)
}

// Delete removes one or more vault entries by ID.
func (c *VaultClient) Delete(ctx context.Context, vaultIDs ...string) (Response, error) {
	if len(vaultIDs) == 0 {
		return nil, invalidArg("id", "vault entry ID required")
	}

	var id any
	if len(vaultIDs) == 1 {
		id = vaultIDs[0]
	} else {
		id = vaultIDs
	}
	return c.post(ctx, "vault/delete", map[string]any{"id": id})
}

// ImageType distinguishes the images attached to a vault entry.
type ImageType int

const (
	// ImageTypeDocument is a document image.
	ImageTypeDocument ImageType = 0
	// ImageTypePerson is a photo of the document holder.
	ImageTypePerson ImageType = 1
)

// AddImage attaches a document or face image to an existing vault entry and
// returns the new image object.
func (c *VaultClient) AddImage(ctx context.Context, vaultID string, image Input, imageType ImageType) (Response, error) {
	if vaultID == "" {
		return nil, invalidArg("id", "vault entry ID required")
	}
	if imageType != ImageTypeDocument && imageType != ImageTypePerson {
		return nil, invalidArg("type", "0 or 1 accepted")
	}
	if image == nil {
		return nil, invalidArg("image", "image required")
	}

	payload := map[string]any{"id": vaultID, "type": int(imageType)}
	if err := applyInput(payload, image, "imageurl", "image"); err != nil {
		return nil, err
	}
	return c.post(ctx, "vault/addimage", payload)
}

// DeleteImage removes an image from a vault entry.
func (c *VaultClient) DeleteImage(ctx context.Context, vaultID, imageID string) (Response, error) {
	if vaultID == "" {
		return nil, invalidArg("id", "vault entry ID required")
	}
	if imageID == "" {
		return nil, invalidArg("imageid", "image ID required")
	}
	return c.post(ctx, "vault/deleteimage", map[string]any{"id": vaultID, "imageid": imageID})
}

// SearchFaceOptions tunes a face search. Zero values fall back to the API
// defaults noted on each field.
type SearchFaceOptions struct {
	// MaxEntry is the number of entries to return, 1 to 10. Defaults to 10.
	MaxEntry int
	// Threshold is the minimum face-match confidence score. Defaults to 0.5.
	Threshold float64
}

// SearchFace searches the vault for entries matching a person's face image.
func (c *VaultClient) SearchFace(ctx context.Context, image Input, opts SearchFaceOptions) (Response, error) {
	if image == nil {
		return nil, invalidArg("image", "face image required")
	}

	maxEntry := opts.MaxEntry
	if maxEntry == 0 {
		maxEntry = 10
	}
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = 0.5
	}

	payload := map[string]any{"maxentry": maxEntry, "threshold": threshold}
	if err := applyInput(payload, image, "imageurl", "image"); err != nil {
		return nil, err
	}
	return c.post(ctx, "vault/searchface", payload)
}

// TrainFace starts training the vault for face search. Training runs
// server-side; poll TrainingStatus for progress.
func (c *VaultClient) TrainFace(ctx context.Context) (Response, error) {
	return c.post(ctx, "vault/train", map[string]any{})
}

// TrainingStatus reports the progress of vault face-search training.
func (c *VaultClient) TrainingStatus(ctx context.Context) (Response, error) {
	return c.post(ctx, "vault/trainstatus", map[string]any{})
}
