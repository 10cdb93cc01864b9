package jsontext

import (
	"reflect"
	"testing"
)

func TestListRoundTrip(t *testing.T) {
	in := []string{"DRAP delays", "low trust in telehealth"}
	s, err := EncodeList(in)
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	got := DecodeList[string](s)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip: want=%v got=%v", in, got)
	}

	s, err = EncodeList[string](nil)
	if err != nil || s != "[]" {
		t.Fatalf("EncodeList nil: err=%v got=%q", err, s)
	}
}

func TestObjectRoundTrip(t *testing.T) {
	in := map[string]any{"size": "$40M", "opportunities": []any{"rural"}}
	s, err := EncodeObject(in)
	if err != nil {
		t.Fatalf("EncodeObject: %v", err)
	}
	got := DecodeObject(s)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip: want=%v got=%v", in, got)
	}
	if s, _ := EncodeObject(nil); s != "{}" {
		t.Fatalf("EncodeObject nil: got=%q", s)
	}
}

func TestMalformedDegradesToEmpty(t *testing.T) {
	for _, s := range []string{"", "   ", "not json", `{"a":1}`, "null", "[1,"} {
		if got := DecodeList[string](s); got == nil || len(got) != 0 {
			t.Fatalf("DecodeList(%q): want empty non-nil got=%v", s, got)
		}
	}
	for _, s := range []string{"", "nope", "[1,2]", "null", `{"a":`} {
		if got := DecodeObject(s); got == nil || len(got) != 0 {
			t.Fatalf("DecodeObject(%q): want empty non-nil got=%v", s, got)
		}
	}
}

func TestDecodeStringsKeepsNonStrings(t *testing.T) {
	got := DecodeStrings(`["a", 2, {"k":"v"}]`)
	want := []string{"a", "2", `{"k":"v"}`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("DecodeStrings: want=%v got=%v", want, got)
	}
}
