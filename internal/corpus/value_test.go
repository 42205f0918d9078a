package corpus

import (
	"encoding/json"
	"testing"
)

func TestValue_Kinds(t *testing.T) {
	if !Null.IsNull() {
		t.Error("expected Null to be null")
	}
	if s, ok := String("hi").AsString(); !ok || s != "hi" {
		t.Errorf("expected string hi, got %q (ok=%v)", s, ok)
	}
	if i, ok := Int(7).AsInt(); !ok || i != 7 {
		t.Errorf("expected int 7, got %d (ok=%v)", i, ok)
	}
	if f, ok := Float(1.5).AsFloat(); !ok || f != 1.5 {
		t.Errorf("expected float 1.5, got %f (ok=%v)", f, ok)
	}
}

func TestValue_IntegralFloatConverts(t *testing.T) {
	if i, ok := Float(3.0).AsInt(); !ok || i != 3 {
		t.Errorf("expected integral float to convert to 3, got %d (ok=%v)", i, ok)
	}
	if _, ok := Float(3.5).AsInt(); ok {
		t.Error("expected non-integral float to refuse int conversion")
	}
	if f, ok := Int(4).AsFloat(); !ok || f != 4.0 {
		t.Errorf("expected int to widen to 4.0, got %f (ok=%v)", f, ok)
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		json string
		want Value
	}{
		{`"text"`, String("text")},
		{`42`, Int(42)},
		{`1.25`, Float(1.25)},
		{`null`, Null},
	}
	for _, tt := range tests {
		var v Value
		if err := json.Unmarshal([]byte(tt.json), &v); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.json, err)
		}
		if v != tt.want {
			t.Errorf("unmarshal %s: expected %v, got %v", tt.json, tt.want, v)
		}
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", v, err)
		}
		if string(out) != tt.json {
			t.Errorf("round trip of %s produced %s", tt.json, out)
		}
	}
}

func TestValue_LargeIntStaysExact(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`9007199254740993`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	i, ok := v.AsInt()
	if !ok || i != 9007199254740993 {
		t.Errorf("expected exact int64, got %d (ok=%v)", i, ok)
	}
}

func TestValue_NonScalarPreservedAsText(t *testing.T) {
	var v Value
	if err := json.Unmarshal([]byte(`{"a":1}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s, ok := v.AsString()
	if !ok || s != `{"a":1}` {
		t.Errorf("expected JSON text preserved, got %q (ok=%v)", s, ok)
	}
}

func TestRecord_JSONFlattensAttrs(t *testing.T) {
	rec := &Record{
		Name: "Chapter 1",
		Type: "chapter",
		Attrs: Attrs{
			AttrChapterNumber: Int(1),
		},
		Children: []*Record{
			{Name: "Sentence 0", Type: "sentence", Attrs: Attrs{AttrText: String("hi")}},
		},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["name"] != "Chapter 1" {
		t.Errorf("expected name key, got %v", raw["name"])
	}
	if raw["chapter_number"] != float64(1) {
		t.Errorf("expected flattened chapter_number, got %v", raw["chapter_number"])
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if back.Name != rec.Name || back.Type != rec.Type {
		t.Errorf("round trip changed identity: %q/%q", back.Name, back.Type)
	}
	if num, ok := back.ChapterNumber(); !ok || num != 1 {
		t.Errorf("expected chapter_number=1, got %d (ok=%v)", num, ok)
	}
	if len(back.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(back.Children))
	}
}

func TestAttrs_LookupDistinguishesMissing(t *testing.T) {
	a := Attrs{"present": Null}
	if _, ok := a.Lookup("present"); !ok {
		t.Error("expected present-but-null to be found")
	}
	if _, ok := a.Lookup("absent"); ok {
		t.Error("expected absent key to report missing")
	}
}

func TestAttrs_CloneIsIndependent(t *testing.T) {
	a := Attrs{"k": String("v")}
	b := a.Clone()
	b["k"] = String("changed")
	if v, _ := a["k"].AsString(); v != "v" {
		t.Errorf("expected original untouched, got %q", v)
	}
	if Attrs(nil).Clone() != nil {
		t.Error("expected nil clone of nil attrs")
	}
}
