package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/poiesic/omnisearch/core"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Record is one raw record as returned by a source.
type Record map[string]any

// Adapter maps one content source onto the canonical result schema.
type Adapter interface {
	// Kind returns the result type every canonicalized record carries.
	Kind() core.ResultType

	// Endpoint returns the resource path searched for this source.
	Endpoint() string

	// Shape returns how the source lays out its list in a response.
	Shape() ListShape

	// ExtractList returns the records contained in a response payload.
	ExtractList(payload []byte) ([]Record, error)

	// Canonicalize maps a raw record to a Result. It never fails; missing
	// or malformed fields are left empty.
	Canonicalize(rec Record) core.Result
}

// ListShape describes where a source puts its records in a response.
type ListShape int

const (
	// Nested payloads look like {"results": [...], ...}.
	Nested ListShape = iota
	// Bare payloads are the JSON array itself.
	Bare
)

func (s ListShape) String() string {
	switch s {
	case Nested:
		return "nested"
	case Bare:
		return "bare"
	default:
		return fmt.Sprintf("ListShape(%d)", int(s))
	}
}

// Extract decodes payload according to the shape. Array elements that are
// not JSON objects are skipped.
func (s ListShape) Extract(payload []byte) ([]Record, error) {
	var items []any
	switch s {
	case Bare:
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("%w: %s list: %w", ErrMalformedPayload, s, err)
		}
	default:
		var envelope struct {
			Results []any `json:"results"`
		}
		if err := json.Unmarshal(payload, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %s list: %w", ErrMalformedPayload, s, err)
		}
		items = envelope.Results
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return records, nil
}

// Encode lays raw JSON records out in this shape. It is the inverse of
// Extract and is used by servers that emulate a source.
func (s ListShape) Encode(records []jsoniter.RawMessage) ([]byte, error) {
	if records == nil {
		records = []jsoniter.RawMessage{}
	}
	if s == Bare {
		return json.Marshal(records)
	}
	return json.Marshal(struct {
		Results []jsoniter.RawMessage `json:"results"`
		Count   int                   `json:"count"`
	}{Results: records, Count: len(records)})
}

// base carries the identity shared by every adapter.
type base struct {
	kind     core.ResultType
	endpoint string
	shape    ListShape
}

func (b base) Kind() core.ResultType { return b.kind }
func (b base) Endpoint() string      { return b.endpoint }
func (b base) Shape() ListShape      { return b.shape }

func (b base) ExtractList(payload []byte) ([]Record, error) {
	return b.shape.Extract(payload)
}

func (b base) result(id string) core.Result {
	return core.Result{
		ID:   id,
		Type: b.kind,
		URL:  core.ResultURL(b.kind, id),
	}
}

// decode fills out from rec with weak typing. Field-level decode errors
// leave that field at its zero value; the rest of the record is kept.
func decode(rec Record, out any) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return
	}
	_ = dec.Decode(map[string]any(rec))
}

// first returns the first non-blank value, trimmed.
func first(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// text renders a loosely typed label: plain strings, numbers, or objects
// carrying a name/title/label field.
func text(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any:
		for _, key := range []string{"name", "title", "label", "slug"} {
			if s, ok := t[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// price coerces a loosely typed price to a number. Absent, non-numeric and
// non-finite values yield nil.
func price(values ...any) *float64 {
	for _, v := range values {
		var f float64
		switch t := v.(type) {
		case float64:
			f = t
		case int:
			f = float64(t)
		case int64:
			f = float64(t)
		case jsoniter.Number:
			parsed, err := t.Float64()
			if err != nil {
				continue
			}
			f = parsed
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil {
				continue
			}
			f = parsed
		default:
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		return &f
	}
	return nil
}
