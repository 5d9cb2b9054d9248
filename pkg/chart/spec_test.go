package chart

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/chartkit/pkg/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"bar", KindBar, false},
		{"Bar", KindBar, false},
		{" LINE ", KindLine, false},
		{"pie", KindPie, false},
		{"doughnut", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeUnsupportedKind) {
				t.Errorf("expected UNSUPPORTED_KIND, got %v", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	input := `{
		"type": "Bar",
		"data": {
			"labels": ["Q1", 2024, null],
			"datasets": [
				{"label": "A", "data": [1, null, "3.5"], "backgroundColor": ["#f00", "#0f0"]},
				{"data": [4], "borderColor": "#00f", "pointRadius": 0}
			]
		}
	}`
	spec, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if spec.Kind != KindBar {
		t.Errorf("Kind = %q, want bar", spec.Kind)
	}
	wantLabels := []string{"Q1", "2024", ""}
	for i, l := range spec.Labels() {
		if l != wantLabels[i] {
			t.Errorf("label[%d] = %q, want %q", i, l, wantLabels[i])
		}
	}
	ds := spec.Datasets()
	if len(ds) != 2 {
		t.Fatalf("got %d datasets, want 2", len(ds))
	}
	if v := ds[0].At(1); v.Valid {
		t.Errorf("null entry decoded as %v", v)
	}
	if v := ds[0].At(2); !v.Valid || v.Float64 != 3.5 {
		t.Errorf("string entry decoded as %v", v)
	}
	if v := ds[1].At(2); v.Valid {
		t.Errorf("entry past the end should be null, got %v", v)
	}
	if !ds[0].BackgroundColor.List || len(ds[0].BackgroundColor.Values) != 2 {
		t.Errorf("backgroundColor = %+v", ds[0].BackgroundColor)
	}
	if c, ok := ds[1].BorderColor.Scalar(); !ok || c != "#00f" {
		t.Errorf("borderColor = %+v", ds[1].BorderColor)
	}
	if ds[1].Radius() != 0 {
		t.Errorf("Radius() = %v, want 0", ds[1].Radius())
	}
	if ds[0].Radius() != DefaultPointRadius {
		t.Errorf("Radius() = %v, want default", ds[0].Radius())
	}
	if ds[0].Sum() != 4.5 {
		t.Errorf("Sum() = %v, want 4.5", ds[0].Sum())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
		field string
	}{
		{"bad json", `{`, errors.ErrCodeInvalidInput, ""},
		{"unknown kind", `{"type":"radar","data":{"labels":[],"datasets":[]}}`, errors.ErrCodeUnsupportedKind, ""},
		{"missing kind", `{"data":{"labels":[],"datasets":[]}}`, errors.ErrCodeUnsupportedKind, ""},
		{"missing data", `{"type":"bar"}`, errors.ErrCodeMalformedSpec, "data"},
		{"missing labels", `{"type":"bar","data":{"datasets":[]}}`, errors.ErrCodeMalformedSpec, "data.labels"},
		{"null labels", `{"type":"bar","data":{"labels":null}}`, errors.ErrCodeMalformedSpec, "data.labels"},
		{"dataset too long", `{"type":"line","data":{"labels":["a"],"datasets":[{"data":[1]},{"data":[1,2]}]}}`, errors.ErrCodeMalformedSpec, "data.datasets[1].data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v", got, tt.code)
			}
			if got := errors.FieldOf(err); got != tt.field {
				t.Errorf("field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestParseEmptyLabels(t *testing.T) {
	spec, err := Parse([]byte(`{"kind":"Bar","data":{"labels":[],"datasets":[]},"options":{}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if spec.Labels() == nil {
		t.Error("empty labels should decode as non-nil")
	}
}

func TestSpecRoundTrip(t *testing.T) {
	spec := &Spec{
		Kind: KindPie,
		Data: &Data{
			Labels: Labels{"A", "B"},
			Datasets: []Dataset{{
				Data:            []Value{V(75), Null()},
				BackgroundColor: ColorList("#111", "#222"),
			}},
		},
	}
	data, err := json.Marshal(spec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(%s): %v", data, err)
	}
	if back.Kind != KindPie || len(back.Datasets()) != 1 {
		t.Fatalf("round trip lost data: %s", data)
	}
	ds := back.Datasets()[0]
	if ds.At(1).Valid || ds.At(0).Float64 != 75 {
		t.Errorf("values = %+v", ds.Data)
	}
	if !ds.BackgroundColor.List || ds.BackgroundColor.Values[1] != "#222" {
		t.Errorf("colors = %+v", ds.BackgroundColor)
	}
	if !ds.BorderColor.IsZero() {
		t.Errorf("absent border color decoded as %+v", ds.BorderColor)
	}
}
