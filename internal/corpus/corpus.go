package corpus

import (
	"encoding/json"
	"fmt"
)

// Record is a nested corpus unit: a named, typed node with a schema-less
// attribute bag and an ordered list of child records. It mirrors the JSON
// shape produced by the tabular converters, where every field other than
// name, type, and children is an attribute.
type Record struct {
	Name     string
	Type     string
	Attrs    Attrs
	Children []*Record
}

// Attribute keys the converters and the tree builder care about.
const (
	AttrChapterNumber  = "chapter_number"
	AttrSentenceNumber = "sentence_number"
	AttrText           = "text"
	AttrVersion        = "version"
	AttrDescription    = "description"
	AttrSentenceCount  = "sentence_count"
	AttrIndex          = "index"
)

// ChapterNumber returns the chapter_number attribute if present and integral.
func (r *Record) ChapterNumber() (int64, bool) {
	if v, ok := r.Attrs.Lookup(AttrChapterNumber); ok {
		return v.AsInt()
	}
	return 0, false
}

// SentenceNumber returns the sentence_number attribute if present and integral.
func (r *Record) SentenceNumber() (int64, bool) {
	if v, ok := r.Attrs.Lookup(AttrSentenceNumber); ok {
		return v.AsInt()
	}
	return 0, false
}

func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.Attrs)+3)
	for k, v := range r.Attrs {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal attribute %q: %w", k, err)
		}
		out[k] = raw
	}
	name, _ := json.Marshal(r.Name)
	typ, _ := json.Marshal(r.Type)
	out["name"] = name
	out["type"] = typ
	if r.Children != nil {
		children, err := json.Marshal(r.Children)
		if err != nil {
			return nil, fmt.Errorf("marshal children: %w", err)
		}
		out["children"] = children
	}
	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}

	*r = Record{}
	for key, msg := range raw {
		switch key {
		case "name":
			if err := json.Unmarshal(msg, &r.Name); err != nil {
				return fmt.Errorf("decode name: %w", err)
			}
		case "type":
			if err := json.Unmarshal(msg, &r.Type); err != nil {
				return fmt.Errorf("decode type: %w", err)
			}
		case "children":
			if err := json.Unmarshal(msg, &r.Children); err != nil {
				return fmt.Errorf("decode children: %w", err)
			}
		default:
			var v Value
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("decode attribute %q: %w", key, err)
			}
			if r.Attrs == nil {
				r.Attrs = make(Attrs)
			}
			r.Attrs[key] = v
		}
	}
	return nil
}
