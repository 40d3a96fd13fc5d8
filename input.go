package idanalyzer

import (
	"encoding/base64"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Input supplies a document or face image to an API call. Create one with
// FromFile, FromURL, FromBytes or FromBase64. Exactly one variant backs each
// Input, and it is resolved into its wire form when the request is submitted:
// URLs are passed through for the server to fetch, everything else is
// base64-encoded inline.
type Input interface {
	resolve() (inputValue, error)
}

// inputValue is the transmittable form of an Input: either a URL passed
// through unchanged, or base64-encoded content.
type inputValue struct {
	value string
	isURL bool
}

// FromFile creates an input backed by a file on the local filesystem. The
// file is read and base64-encoded when the request is submitted; a missing
// or unreadable file surfaces as *FileReadError at that point.
func FromFile(path string) Input {
	return fileInput{path: path}
}

type fileInput struct {
	path string
}

func (f fileInput) resolve() (inputValue, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return inputValue{}, &FileReadError{Path: f.path, Err: err}
	}
	return inputValue{value: base64.StdEncoding.EncodeToString(data)}, nil
}

// FromURL creates an input backed by a remote URL. The URL is sent to the
// API unchanged; no local reachability check is performed.
func FromURL(url string) Input {
	return urlInput{url: url}
}

type urlInput struct {
	url string
}

func (u urlInput) resolve() (inputValue, error) {
	if err := validation.Validate(u.url, validation.Required, is.URL); err != nil {
		return inputValue{}, &InvalidArgumentError{Field: "url", Err: err}
	}
	return inputValue{value: u.url, isURL: true}, nil
}

// FromBytes creates an input from raw image or video bytes. The bytes are
// base64-encoded when the request is submitted.
func FromBytes(data []byte) Input {
	return bytesInput{data: data}
}

type bytesInput struct {
	data []byte
}

func (b bytesInput) resolve() (inputValue, error) {
	if len(b.data) == 0 {
		return inputValue{}, invalidArg("file", "empty content")
	}
	return inputValue{value: base64.StdEncoding.EncodeToString(b.data)}, nil
}

// FromBase64 creates an input from content that is already base64-encoded.
// The string is placed in the request as-is.
func FromBase64(encoded string) Input {
	return base64Input{encoded: encoded}
}

type base64Input struct {
	encoded string
}

func (b base64Input) resolve() (inputValue, error) {
	if b.encoded == "" {
		return inputValue{}, invalidArg("file", "empty content")
	}
	return inputValue{value: b.encoded}, nil
}

// applyInput resolves in and stores it in payload under urlKey or base64Key
// depending on the variant. A nil input leaves the payload untouched so that
// optional fields are omitted entirely rather than sent empty.
func applyInput(payload map[string]any, in Input, urlKey, base64Key string) error {
	if in == nil {
		return nil
	}
	resolved, err := in.resolve()
	if err != nil {
		return err
	}
	if resolved.isURL {
		payload[urlKey] = resolved.value
	} else {
		payload[base64Key] = resolved.value
	}
	return nil
}
