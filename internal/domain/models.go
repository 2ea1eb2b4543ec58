package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// UploadedImage is the image received from the client for a single request.
type UploadedImage struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ModelResponse is the provider-neutral view of a generative model reply.
type ModelResponse struct {
	Candidates []Candidate
}

type Candidate struct {
	Parts []Part
}

type Part struct {
	Text string
}

// AnalysisPayload holds the JSON object extracted from the model output.
// The raw bytes are kept so the response body mirrors what the model sent.
type AnalysisPayload struct {
	raw json.RawMessage
}

// NewAnalysisPayload compacts raw. When an object repeats a key the text is
// rebuilt so that the key appears once, at its first position, holding the
// last value, which is what encoding/json decoders see.
func NewAnalysisPayload(raw []byte) *AnalysisPayload {
	if out, ok := dedupeKeys(raw); ok {
		return &AnalysisPayload{raw: out}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return &AnalysisPayload{raw: append(json.RawMessage(nil), raw...)}
	}
	return &AnalysisPayload{raw: buf.Bytes()}
}

func (p *AnalysisPayload) Raw() []byte {
	if p == nil {
		return nil
	}
	return p.raw
}

func (p *AnalysisPayload) MarshalJSON() ([]byte, error) {
	if p == nil || len(p.raw) == 0 {
		return []byte("null"), nil
	}
	return p.raw, nil
}

// Equal reports whether two payloads carry the same JSON text.
func (p *AnalysisPayload) Equal(other *AnalysisPayload) bool {
	if p == nil || other == nil {
		return p == other
	}
	return bytes.Equal(p.raw, other.raw)
}

type jsonObject struct {
	keys   []string
	values map[string]any
}

// dedupeKeys returns the rebuilt text only when raw is a single JSON value
// with at least one repeated object key.
func dedupeKeys(raw []byte) ([]byte, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	dup := false
	v, err := decodeValue(dec, &dup)
	if err != nil || !dup {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func decodeValue(dec *json.Decoder, dup *bool) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &jsonObject{values: map[string]any{}}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := kt.(string)
			val, err := decodeValue(dec, dup)
			if err != nil {
				return nil, err
			}
			if _, seen := obj.values[key]; seen {
				*dup = true
			} else {
				obj.keys = append(obj.keys, key)
			}
			obj.values[key] = val
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec, dup)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, errors.New("unexpected delimiter " + delim.String())
	}
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *jsonObject:
		buf.WriteByte('{')
		for i, key := range t.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := encodeValue(buf, t.values[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case string:
		return encodeString(buf, t)
	case json.Number:
		buf.WriteString(t.String())
	case bool:
		if t {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	default:
		return errors.New("unsupported JSON token")
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
