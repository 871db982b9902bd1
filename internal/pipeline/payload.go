package pipeline

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies an interactive directive. The string value is the
// placeholder attribute suffix (data-<kind>) and must round-trip exactly.
type Kind string

const (
	KindPreview  Kind = "code-preview"
	KindPractice Kind = "practice-editor"
)

// Payload defaults.
const (
	DefaultPreviewHeight = "300px"
	DefaultPracticeTitle = "Practice Exercise"
)

// Sentinel errors for payload decoding.
var (
	ErrUnknownKind     = errors.New("unknown directive kind")
	ErrPayloadEncoding = errors.New("invalid payload encoding")
	ErrPayloadJSON     = errors.New("invalid payload JSON")
)

// PreviewPayload is the decoded content of a :::preview directive.
type PreviewPayload struct {
	HTML   string `json:"html"`
	CSS    string `json:"css"`
	JS     string `json:"js"`
	Height string `json:"height"`
}

// PracticePayload is the decoded content of a :::practice directive.
type PracticePayload struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	Code         string `json:"code"`
}

// EncodePayload serializes a payload to JSON and then to standard base64.
// The result is safe inside a double-quoted HTML attribute and inert to
// Markdown block parsing.
func EncodePayload(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodePreview reverses EncodePayload for a preview payload.
func DecodePreview(encoded string) (*PreviewPayload, error) {
	var p PreviewPayload
	if err := decodeInto(encoded, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodePractice reverses EncodePayload for a practice payload.
func DecodePractice(encoded string) (*PracticePayload, error) {
	var p PracticePayload
	if err := decodeInto(encoded, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func decodeInto(encoded string, dst any) error {
	raw, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadEncoding, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadJSON, err)
	}
	return nil
}

// PlaceholderTag renders the literal HTML marker for an encoded payload.
// It is a raw HTML block so goldmark passes it through untouched.
func PlaceholderTag(kind Kind, encoded string) string {
	return `<div data-` + string(kind) + `="` + encoded + `"></div>`
}
