package idanalyzer

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVaultClient(t *testing.T, capture *map[string]any, body map[string]any) *VaultClient {
	t.Helper()
	hc := testHTTPClient(t)
	httpmock.RegisterResponder("POST", `=~^https://api\.idanalyzer\.com/vault/`,
		captureResponder(t, capture, 200, body))

	client, err := NewVaultClient(WithAPIKey("test-key"), WithHTTPClient(hc))
	require.NoError(t, err)
	return client
}

func TestVaultClient_Get(t *testing.T) {
	t.Run("id required", func(t *testing.T) {
		client, err := NewVaultClient(WithAPIKey("test-key"))
		require.NoError(t, err)

		_, err = client.Get(context.Background(), "")
		var argErr *InvalidArgumentError
		assert.ErrorAs(t, err, &argErr)
	})

	t.Run("payload", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"data": map[string]any{}})

		_, err := client.Get(context.Background(), "VAULT-1")
		require.NoError(t, err)
		assert.Equal(t, "VAULT-1", captured["id"])
	})
}

func TestVaultClient_List(t *testing.T) {
	t.Run("explicit options build the exact payload", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"items": []any{}})

		_, err := client.List(context.Background(), ListOptions{
			Filter:  []string{"createtime>=2021/02/25"},
			OrderBy: "firstName",
			Sort:    "ASC",
			Limit:   5,
		})
		require.NoError(t, err)

		want := map[string]any{
			"apikey":  "test-key",
			"client":  "go-sdk",
			"filter":  []any{"createtime>=2021/02/25"},
			"orderby": "firstName",
			"sort":    "ASC",
			"limit":   float64(5),
			"offset":  float64(0),
		}
		assert.Equal(t, want, captured)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"items": []any{}})

		_, err := client.List(context.Background(), ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, "createtime", captured["orderby"])
		assert.Equal(t, "DESC", captured["sort"])
		assert.EqualValues(t, 10, captured["limit"])
		assert.EqualValues(t, 0, captured["offset"])
		assert.NotContains(t, captured, "filter")
	})

	t.Run("too many filter statements", func(t *testing.T) {
		client, err := NewVaultClient(WithAPIKey("test-key"))
		require.NoError(t, err)

		_, err = client.List(context.Background(), ListOptions{
			Filter: []string{"a=1", "b=2", "c=3", "d=4", "e=5", "f=6"},
		})
		var argErr *InvalidArgumentError
		assert.ErrorAs(t, err, &argErr)
	})
}

func TestVaultClient_Update(t *testing.T) {
	t.Run("requires id and data", func(t *testing.T) {
		client, err := NewVaultClient(WithAPIKey("test-key"))
		require.NoError(t, err)

		var argErr *InvalidArgumentError
		_, err = client.Update(context.Background(), "", map[string]any{"firstName": "Jane"})
		assert.ErrorAs(t, err, &argErr)
		_, err = client.Update(context.Background(), "VAULT-1", nil)
		assert.ErrorAs(t, err, &argErr)
	})

	t.Run("data merged with id", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"success": true})

		_, err := client.Update(context.Background(), "VAULT-1", map[string]any{
			"firstName": "Jane",
			"lastName":  "Doe",
		})
		require.NoError(t, err)
		assert.Equal(t, "VAULT-1", captured["id"])
		assert.Equal(t, "Jane", captured["firstName"])
		assert.Equal(t, "Doe", captured["lastName"])
	})
}

func TestVaultClient_Delete(t *testing.T) {
	t.Run("id required", func(t *testing.T) {
		client, err := NewVaultClient(WithAPIKey("test-key"))
		require.NoError(t, err)

		_, err = client.Delete(context.Background())
		var argErr *InvalidArgumentError
		assert.ErrorAs(t, err, &argErr)
	})

	t.Run("single id sent as a string", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"success": true})

		_, err := client.Delete(context.Background(), "VAULT-1")
		require.NoError(t, err)
		assert.Equal(t, "VAULT-1", captured["id"])
	})

	t.Run("multiple ids sent as a list", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"success": true})

		_, err := client.Delete(context.Background(), "VAULT-1", "VAULT-2")
		require.NoError(t, err)
		assert.Equal(t, []any{"VAULT-1", "VAULT-2"}, captured["id"])
	})
}

func TestVaultClient_AddImage(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4E, 0x47}

	t.Run("validation", func(t *testing.T) {
		client, err := NewVaultClient(WithAPIKey("test-key"))
		require.NoError(t, err)

		var argErr *InvalidArgumentError
		_, err = client.AddImage(context.Background(), "", FromBytes(imageBytes), ImageTypeDocument)
		assert.ErrorAs(t, err, &argErr)
		_, err = client.AddImage(context.Background(), "VAULT-1", nil, ImageTypeDocument)
		assert.ErrorAs(t, err, &argErr)
		_, err = client.AddImage(context.Background(), "VAULT-1", FromBytes(imageBytes), ImageType(2))
		assert.ErrorAs(t, err, &argErr)
	})

	t.Run("byte image", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"image": map[string]any{}})

		_, err := client.AddImage(context.Background(), "VAULT-1", FromBytes(imageBytes), ImageTypePerson)
		require.NoError(t, err)
		assert.Equal(t, "VAULT-1", captured["id"])
		assert.EqualValues(t, 1, captured["type"])
		assert.Equal(t, base64.StdEncoding.EncodeToString(imageBytes), captured["image"])
		assert.NotContains(t, captured, "imageurl")
	})

	t.Run("URL image", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"image": map[string]any{}})

		_, err := client.AddImage(context.Background(), "VAULT-1", FromURL("https://example.com/face.jpg"), ImageTypeDocument)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/face.jpg", captured["imageurl"])
		assert.NotContains(t, captured, "image")
	})
}

func TestVaultClient_DeleteImage(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		client, err := NewVaultClient(WithAPIKey("test-key"))
		require.NoError(t, err)

		var argErr *InvalidArgumentError
		_, err = client.DeleteImage(context.Background(), "", "IMG-1")
		assert.ErrorAs(t, err, &argErr)
		_, err = client.DeleteImage(context.Background(), "VAULT-1", "")
		assert.ErrorAs(t, err, &argErr)
	})

	t.Run("payload", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"success": true})

		_, err := client.DeleteImage(context.Background(), "VAULT-1", "IMG-1")
		require.NoError(t, err)
		assert.Equal(t, "VAULT-1", captured["id"])
		assert.Equal(t, "IMG-1", captured["imageid"])
	})
}

func TestVaultClient_SearchFace(t *testing.T) {
	t.Run("image required", func(t *testing.T) {
		client, err := NewVaultClient(WithAPIKey("test-key"))
		require.NoError(t, err)

		_, err = client.SearchFace(context.Background(), nil, SearchFaceOptions{})
		var argErr *InvalidArgumentError
		assert.ErrorAs(t, err, &argErr)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"items": []any{}})

		_, err := client.SearchFace(context.Background(), FromBytes([]byte("face")), SearchFaceOptions{})
		require.NoError(t, err)
		assert.EqualValues(t, 10, captured["maxentry"])
		assert.EqualValues(t, 0.5, captured["threshold"])
	})

	t.Run("explicit options", func(t *testing.T) {
		var captured map[string]any
		client := newTestVaultClient(t, &captured, map[string]any{"items": []any{}})

		_, err := client.SearchFace(context.Background(), FromURL("https://example.com/face.jpg"), SearchFaceOptions{
			MaxEntry:  3,
			Threshold: 0.8,
		})
		require.NoError(t, err)
		assert.EqualValues(t, 3, captured["maxentry"])
		assert.EqualValues(t, 0.8, captured["threshold"])
		assert.Equal(t, "https://example.com/face.jpg", captured["imageurl"])
	})
}

func TestVaultClient_Training(t *testing.T) {
	var captured map[string]any
	client := newTestVaultClient(t, &captured, map[string]any{"status": "training"})

	_, err := client.TrainFace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-key", captured["apikey"])

	_, err = client.TrainingStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-key", captured["apikey"])
}
