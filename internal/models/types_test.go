package models

import "testing"

func TestStringList_Value(t *testing.T) {
	var nilList StringList
	v, err := nilList.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "[]" {
		t.Errorf("nil StringList Value() = %v, want []", v)
	}

	list := StringList{"a", "b"}
	v, err = list.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if string(v.([]byte)) != `["a","b"]` {
		t.Errorf("Value() = %s, want [\"a\",\"b\"]", v)
	}
}

func TestStringList_Scan(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`["x","y"]`)); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(list) != 2 || list[0] != "x" || list[1] != "y" {
		t.Errorf("Scan() = %v, want [x y]", list)
	}

	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if list != nil {
		t.Errorf("Scan(nil) = %v, want nil", list)
	}

	if err := list.Scan(42); err == nil {
		t.Error("Scan(int) error = nil, want error")
	}
}

func TestStringList_Normalize(t *testing.T) {
	list := StringList{"  a  ", "", "b", "   "}
	got := list.Normalize()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Normalize() = %v, want [a b]", got)
	}
}

func TestStringMap_Normalize(t *testing.T) {
	m := StringMap{" region ": " DACH ", "empty": "  ", "": "x"}
	got := m.Normalize()
	if len(got) != 1 || got["region"] != "DACH" {
		t.Errorf("Normalize() = %v, want map[region:DACH]", got)
	}
}

func TestStringMap_Keys(t *testing.T) {
	m := StringMap{"zeta": "1", "alpha": "2", "mid": "3"}
	got := m.Keys()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStageList_ValueScan(t *testing.T) {
	var nilStages StageList
	v, err := nilStages.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "[]" {
		t.Errorf("nil StageList Value() = %v, want []", v)
	}

	var stagesList StageList
	if err := stagesList.Scan([]byte(`["SEED","SERIES_A"]`)); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(stagesList) != 2 || stagesList[0] != StageSeed || stagesList[1] != StageSeriesA {
		t.Errorf("Scan() = %v", stagesList)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{}
	errs.Add("name", "name is required")
	errs.Add("name", "second message is ignored")

	if errs["name"] != "name is required" {
		t.Errorf("Add() kept %q, want first message", errs["name"])
	}

	msg := errs.Error()
	if msg != "validation failed: name: name is required" {
		t.Errorf("Error() = %q", msg)
	}
}
