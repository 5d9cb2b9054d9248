package chart

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Kind identifies the chart type.
type Kind string

// Supported chart kinds.
const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindPie  Kind = "pie"
)

// Kinds lists the supported chart kinds in display order.
var Kinds = []Kind{KindBar, KindLine, KindPie}

// ParseKind parses a chart kind case-insensitively.
// Unknown kinds return an UNSUPPORTED_KIND error.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindBar, KindLine, KindPie:
		return k, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedKind, "unsupported chart type: %q", s)
}

// PieLike reports whether elements of this kind are colored per category.
func (k Kind) PieLike() bool { return k == KindPie }

// Spec is a complete chart specification.
type Spec struct {
	Kind    Kind    `json:"kind"`
	Data    *Data   `json:"data,omitempty"`
	Options Options `json:"options"`
}

// Data holds the category labels and data series.
type Data struct {
	Labels   Labels    `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is a single data series.
type Dataset struct {
	Label           string   `json:"label,omitempty"`
	Data            []Value  `json:"data"`
	BackgroundColor Colors   `json:"backgroundColor,omitzero"`
	BorderColor     Colors   `json:"borderColor,omitzero"`
	PointRadius     *float64 `json:"pointRadius,omitempty"`
	DefaultIndex    int      `json:"defaultIndex,omitempty"`
}

// DefaultPointRadius is the marker radius used when a dataset sets none.
const DefaultPointRadius = 3.0

// At returns the value at category i, or an invalid Value when the dataset is
// shorter than i.
func (d *Dataset) At(i int) Value {
	if i < 0 || i >= len(d.Data) {
		return Value{}
	}
	return d.Data[i]
}

// Sum returns the sum of all non-null values.
func (d *Dataset) Sum() float64 {
	var sum float64
	for _, v := range d.Data {
		sum += v.Or0()
	}
	return sum
}

// Radius returns the configured point radius or [DefaultPointRadius].
func (d *Dataset) Radius() float64 {
	if d.PointRadius == nil {
		return DefaultPointRadius
	}
	return *d.PointRadius
}

// Labels returns the category labels, or nil when data is absent.
func (s *Spec) Labels() []string {
	if s.Data == nil {
		return nil
	}
	return s.Data.Labels
}

// Datasets returns the data series, or nil when data is absent.
func (s *Spec) Datasets() []Dataset {
	if s.Data == nil {
		return nil
	}
	return s.Data.Datasets
}

// Stacked reports whether the spec renders as a stacked chart.
func (s *Spec) Stacked() bool { return s.Options.Stacked() }

// Validate checks the kind and the structural requirements of the data block.
//
// A missing data block or label list is a MALFORMED_SPEC error naming the
// offending field. Datasets may be shorter than the label list (missing
// entries are null) but never longer.
func (s *Spec) Validate() error {
	if _, err := ParseKind(string(s.Kind)); err != nil {
		return err
	}
	if s.Data == nil {
		return errors.Field("data", "chart data is required")
	}
	if s.Data.Labels == nil {
		return errors.Field("data.labels", "labels are required")
	}
	for j, ds := range s.Data.Datasets {
		if len(ds.Data) > len(s.Data.Labels) {
			return errors.Field(fmt.Sprintf("data.datasets[%d].data", j),
				"%d values for %d labels", len(ds.Data), len(s.Data.Labels))
		}
	}
	return nil
}

// UnmarshalJSON accepts "type" as an alias of "kind" and normalizes the kind
// to lower case. Unknown kinds are kept verbatim so [Spec.Validate] can report
// them.
func (s *Spec) UnmarshalJSON(data []byte) error {
	var raw struct {
		Kind    string  `json:"kind"`
		Type    string  `json:"type"`
		Data    *Data   `json:"data"`
		Options Options `json:"options"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	kind := raw.Kind
	if kind == "" {
		kind = raw.Type
	}
	if k, err := ParseKind(kind); err == nil {
		s.Kind = k
	} else {
		s.Kind = Kind(kind)
	}
	s.Data = raw.Data
	s.Options = raw.Options
	return nil
}

// Parse decodes a JSON chart specification and validates it.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid chart specification JSON")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}
