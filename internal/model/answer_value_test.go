package model_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"lms_backend/internal/model"
)

func TestAnswerValueDecodesStringOrArray(t *testing.T) {
	var single model.AnswerValue
	if err := json.Unmarshal([]byte(`"Paris"`), &single); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if single.IsList || single.Single != "Paris" {
		t.Errorf("got %+v, want single Paris", single)
	}

	var list model.AnswerValue
	if err := json.Unmarshal([]byte(`["a", "b"]`), &list); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if !list.IsList || !reflect.DeepEqual(list.List, []string{"a", "b"}) {
		t.Errorf("got %+v, want list [a b]", list)
	}
}

func TestAnswerValueEncodesByKind(t *testing.T) {
	out, err := json.Marshal(model.SingleAnswer("true"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"true"` {
		t.Errorf("single marshals as %s", out)
	}

	out, err = json.Marshal(model.ListAnswer("x", "y"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `["x","y"]` {
		t.Errorf("list marshals as %s", out)
	}
}

func TestAnswerValueReassignmentClearsOldKind(t *testing.T) {
	var v model.AnswerValue
	if err := json.Unmarshal([]byte(`["a"]`), &v); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`"b"`), &v); err != nil {
		t.Fatal(err)
	}
	if v.IsList || v.List != nil || v.Single != "b" {
		t.Errorf("got %+v after list then string, want plain single b", v)
	}
}

func TestAnswerValueIsEmpty(t *testing.T) {
	if !(model.AnswerValue{}).IsEmpty() {
		t.Error("zero value should be empty")
	}
	if !model.ListAnswer().IsEmpty() {
		t.Error("empty list should be empty")
	}
	if model.SingleAnswer("x").IsEmpty() || model.ListAnswer("x").IsEmpty() {
		t.Error("non-empty values reported empty")
	}
}
