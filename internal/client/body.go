package client

import "encoding/json"

// Body is a response payload: either a structured JSON document or the
// raw text when parsing failed. Parse failure is never a request error.
type Body struct {
	value      any
	raw        string
	structured bool
}

// parseBody decodes raw as JSON, falling back to raw text.
func parseBody(raw []byte) Body {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Body{raw: string(raw)}
	}
	return Body{value: v, structured: true}
}

// Structured returns the decoded JSON document and true when the
// response parsed as JSON.
func (b Body) Structured() (any, bool) {
	return b.value, b.structured
}

// Raw returns the raw response text for an unparsed body.
func (b Body) Raw() string {
	return b.raw
}

// Value returns the structured document when present, otherwise the raw
// text. This is the shape stored in audit entries and results.
func (b Body) Value() any {
	if b.structured {
		return b.value
	}
	return b.raw
}
