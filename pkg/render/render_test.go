package render

import (
	"encoding/xml"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/color"
)

func stacked() chart.Options {
	return chart.Options{Scales: &chart.Scales{X: &chart.Axis{Stacked: true}, Y: &chart.Axis{Stacked: true}}}
}

// wellFormed fails the test unless svg parses as XML.
func wellFormed(t *testing.T, svg []byte) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(string(svg)))
	for {
		_, err := d.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			t.Fatalf("malformed SVG: %v\n%s", err, svg)
		}
	}
}

func TestFor(t *testing.T) {
	for _, k := range chart.Kinds {
		r, ok := For(k)
		if !ok || r.Kind() != k {
			t.Errorf("For(%q) = %v, %v", k, r, ok)
		}
	}
	if _, ok := For("radar"); ok {
		t.Error("For(radar) should fail")
	}
}

func TestEmptyRendersPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		r    Renderer
		spec *chart.Spec
		want string
	}{
		{"bar", Bar{}, &chart.Spec{Kind: chart.KindBar, Data: &chart.Data{Labels: chart.Labels{}}}, `<svg width="900" height="600"`},
		{"line", Line{}, &chart.Spec{Kind: chart.KindLine, Data: &chart.Data{Labels: chart.Labels{}}}, `<svg width="1100" height="800"`},
		{"pie no values", Pie{}, &chart.Spec{Kind: chart.KindPie, Data: &chart.Data{
			Labels: chart.Labels{}, Datasets: []chart.Dataset{{}},
		}}, `<svg width="700" height="500"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.r.Render(tt.spec)
			wellFormed(t, out)
			s := string(out)
			if !strings.HasPrefix(s, tt.want) {
				t.Errorf("unexpected canvas: %s", s)
			}
			if !strings.Contains(s, ">No data</text>") {
				t.Errorf("missing No data label: %s", s)
			}
			if strings.Contains(s, "<rect") || strings.Contains(s, "<path") {
				t.Errorf("placeholder drew shapes: %s", s)
			}
		})
	}
}

func TestBarGrouped(t *testing.T) {
	spec := &chart.Spec{
		Kind: chart.KindBar,
		Data: &chart.Data{
			Labels: chart.Labels{"a", "b"},
			Datasets: []chart.Dataset{
				{Label: "one", Data: chart.Values(10, 5)},
				{Label: "two", Data: []chart.Value{chart.V(2), chart.Null()}},
			},
		},
		Options: chart.Options{Legend: &chart.Legend{Position: "none"}},
	}
	f := Bar{}.Plan(spec)
	if f.Width != 900 || f.Height != 600 {
		t.Fatalf("canvas = %vx%v, want 900x600", f.Width, f.Height)
	}
	if f.ChartWidth != 770 || f.ChartHeight != 420 {
		t.Fatalf("chart area = %vx%v, want 770x420", f.ChartWidth, f.ChartHeight)
	}

	segs := BarSegments(spec, f)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3 (null skipped)", len(segs))
	}
	groupW := 770.0 / 2
	barW := groupW * 0.9 / 2
	first, second := segs[0], segs[2]
	if math.Abs(first.Width-barW) > 1e-9 || math.Abs(first.X-(80+groupW*0.05)) > 1e-9 {
		t.Errorf("first segment = %+v", first)
	}
	if math.Abs(second.X-(80+groupW*0.05+barW)) > 1e-9 {
		t.Errorf("second dataset not offset by one bar width: %+v", second)
	}
	if math.Abs(first.Height-420) > 1e-9 || math.Abs(first.Y-80) > 1e-9 {
		t.Errorf("max bar should fill the chart height: %+v", first)
	}

	out := Bar{}.Render(spec)
	wellFormed(t, out)
	if n := strings.Count(string(out), `class="bar"`); n != 3 {
		t.Errorf("rendered %d bars, want 3", n)
	}
}

func TestBarStackedSum(t *testing.T) {
	spec := &chart.Spec{
		Kind: chart.KindBar,
		Data: &chart.Data{
			Labels: chart.Labels{"a", "b", "c"},
			Datasets: []chart.Dataset{
				{Data: chart.Values(3, 7, 1)},
				{Data: []chart.Value{chart.V(4), chart.Null(), chart.V(2)}},
				{Data: chart.Values(6, 2.5)},
			},
		},
		Options: stacked(),
	}
	f := Bar{}.Plan(spec)
	if !f.Stacked {
		t.Fatal("frame not stacked")
	}
	heights := map[int]float64{}
	tops := map[int]float64{}
	for _, s := range BarSegments(spec, f) {
		heights[s.Category] += s.Height
		if _, ok := tops[s.Category]; !ok || s.Y < tops[s.Category] {
			tops[s.Category] = s.Y
		}
		if want := 770.0 / 3 * 0.9; math.Abs(s.Width-want) > 1e-9 {
			t.Errorf("stacked width = %v, want %v", s.Width, want)
		}
	}
	for i := range spec.Labels() {
		var sum float64
		for _, ds := range spec.Datasets() {
			sum += ds.At(i).Or0()
		}
		want := sum / f.Axis.YMax * f.ChartHeight
		if math.Abs(heights[i]-want) > 1e-6 {
			t.Errorf("category %d: stacked height %v, want %v", i, heights[i], want)
		}
		if top := f.Padding.Top + f.ChartHeight - want; math.Abs(tops[i]-top) > 1e-6 {
			t.Errorf("category %d: top at %v, want %v", i, tops[i], top)
		}
	}

	s := string(Bar{}.Render(spec))
	if !strings.Contains(s, `>13</text>`) || !strings.Contains(s, `>9.5</text>`) {
		t.Errorf("missing stacked totals: %s", s)
	}
}

func TestBarStackedColorsBySeries(t *testing.T) {
	spec := &chart.Spec{
		Kind: chart.KindBar,
		Data: &chart.Data{
			Labels: chart.Labels{"a", "b"},
			Datasets: []chart.Dataset{
				{Data: chart.Values(1, 2)},
				{Data: chart.Values(3, 4), BackgroundColor: chart.ColorList("#abc")},
			},
		},
		Options: stacked(),
	}
	for _, s := range BarSegments(spec, Bar{}.Plan(spec)) {
		want := color.Palette[s.Dataset]
		if s.Dataset == 1 {
			want = "#abc"
		}
		if s.Color != want {
			t.Errorf("segment %d/%d color = %q, want %q", s.Dataset, s.Category, s.Color, want)
		}
	}
}

func TestBarRotatedLabels(t *testing.T) {
	labels := make(chart.Labels, 16)
	for i := range labels {
		labels[i] = "L"
	}
	spec := &chart.Spec{
		Kind: chart.KindBar,
		Data: &chart.Data{Labels: labels, Datasets: []chart.Dataset{{Data: chart.Values(1)}}},
	}
	f := Bar{}.Plan(spec)
	if !f.Labels.ShouldRotate {
		t.Fatal("16 labels should rotate")
	}
	if f.Padding.Bottom != 100+60+f.Legend.ActualHeight {
		t.Errorf("bottom padding = %v", f.Padding.Bottom)
	}
	if s := string(Bar{}.Render(spec)); !strings.Contains(s, "rotate(-45)") {
		t.Error("rotated labels not drawn rotated")
	}
}

func TestBarLegendGrowsCanvas(t *testing.T) {
	base := chart.Data{
		Labels:   chart.Labels{"a"},
		Datasets: []chart.Dataset{{Label: "x", Data: chart.Values(1)}},
	}
	tests := []struct {
		pos           string
		width, height float64
	}{
		{"bottom", 900, 679},
		{"top", 900, 679},
		{"right", 1155, 600},
		{"left", 1155, 600},
		{"none", 900, 600},
	}
	for _, tt := range tests {
		t.Run(tt.pos, func(t *testing.T) {
			data := base
			spec := &chart.Spec{Kind: chart.KindBar, Data: &data, Options: chart.Options{Legend: &chart.Legend{Position: tt.pos}}}
			f := Bar{}.Plan(spec)
			if f.Width != tt.width || f.Height != tt.height {
				t.Errorf("canvas = %vx%v, want %vx%v", f.Width, f.Height, tt.width, tt.height)
			}
			wellFormed(t, Bar{}.Render(spec))
		})
	}
}

func TestBarOverrideNegativeDrawsNothing(t *testing.T) {
	m := -1.0
	spec := &chart.Spec{
		Kind:    chart.KindBar,
		Data:    &chart.Data{Labels: chart.Labels{"a"}, Datasets: []chart.Dataset{{Data: chart.Values(5)}}},
		Options: chart.Options{Scales: &chart.Scales{Y: &chart.Axis{Max: &m}}},
	}
	s := string(Bar{}.Render(spec))
	if strings.Contains(s, `class="bar"`) || strings.Contains(s, "<line") {
		t.Errorf("negative axis drew bars or grid: %s", s)
	}
}

func TestLine(t *testing.T) {
	r := 0.0
	spec := &chart.Spec{
		Kind: chart.KindLine,
		Data: &chart.Data{
			Labels: chart.Labels{"a", "b", "c"},
			Datasets: []chart.Dataset{
				{Label: "s1", Data: []chart.Value{chart.V(1), chart.Null(), chart.V(0)}},
				{Label: "s2", Data: chart.Values(2, 4), PointRadius: &r},
			},
		},
		Options: chart.Options{Legend: &chart.Legend{Position: "none"}},
	}
	f := Line{}.Plan(spec)
	if f.Width != 1100 || f.Height != 800 {
		t.Fatalf("canvas = %vx%v", f.Width, f.Height)
	}

	out := Line{}.Render(spec)
	wellFormed(t, out)
	s := string(out)
	if n := strings.Count(s, "<polyline"); n != 2 {
		t.Errorf("got %d polylines, want 2", n)
	}
	if n := strings.Count(s, "<circle"); n != 2 {
		t.Errorf("got %d markers, want 2 (nulls and zero radius skipped)", n)
	}
	// s1 spans the full width with the null skipped: x = 100 and 100+920.
	if !strings.Contains(s, `points="100,`) || !strings.Contains(s, " 1020,") {
		t.Errorf("unexpected polyline points: %s", s)
	}
	if strings.Count(s, `font-size="9" font-weight="bold"`) != 1 {
		t.Errorf("zero points should get no value label: %s", s)
	}
}

func TestLineSingleLabel(t *testing.T) {
	if got := xStep(900, 1); got != 900 {
		t.Errorf("xStep(900, 1) = %v", got)
	}
	if got := xStep(900, 4); got != 300 {
		t.Errorf("xStep(900, 4) = %v", got)
	}
}

func TestPieSlices(t *testing.T) {
	spec := &chart.Spec{
		Kind: chart.KindPie,
		Data: &chart.Data{
			Labels:   chart.Labels{"A", "B"},
			Datasets: []chart.Dataset{{Data: chart.Values(75, 25)}},
		},
	}
	f := Pie{}.Plan(spec)
	slices := PieSlices(spec, f)
	if len(slices) != 2 {
		t.Fatalf("got %d slices, want 2", len(slices))
	}
	a := slices[0]
	if math.Abs(a.Start-(-math.Pi/2)) > 1e-12 {
		t.Errorf("A starts at %v, want -π/2", a.Start)
	}
	if math.Abs(a.Sweep*180/math.Pi-270) > 1e-9 {
		t.Errorf("A spans %v°, want 270°", a.Sweep*180/math.Pi)
	}
	if !strings.Contains(a.Path, " 0 1 1 ") {
		t.Errorf("A should use the large arc flag: %s", a.Path)
	}
	if strings.Contains(slices[1].Path, " 0 1 1 ") {
		t.Errorf("B should not use the large arc flag: %s", slices[1].Path)
	}

	out := Pie{}.Render(spec)
	wellFormed(t, out)
	if n := strings.Count(string(out), "<path"); n != 2 {
		t.Errorf("rendered %d paths, want 2", n)
	}
	if !strings.Contains(string(out), "(75.0%)") {
		t.Error("missing percentage label")
	}
}

func TestPieClosure(t *testing.T) {
	for _, data := range [][]float64{
		{1, 2, 3},
		{0.1, 0.2, 0.3, 0.4},
		{1e6, 3, 7.77, 42, 0.001},
		{5},
	} {
		spec := &chart.Spec{
			Kind: chart.KindPie,
			Data: &chart.Data{Labels: make(chart.Labels, len(data)), Datasets: []chart.Dataset{{Data: chart.Values(data...)}}},
		}
		var sum float64
		for _, s := range PieSlices(spec, Pie{}.Plan(spec)) {
			sum += s.Sweep
		}
		if math.Abs(sum-2*math.Pi) > 1e-6 {
			t.Errorf("%v: sweeps sum to %v, want 2π", data, sum)
		}
	}
}

func TestPieFullCircle(t *testing.T) {
	spec := &chart.Spec{
		Kind: chart.KindPie,
		Data: &chart.Data{Labels: chart.Labels{"only", "none"}, Datasets: []chart.Dataset{{Data: chart.Values(4, 0)}}},
	}
	slices := PieSlices(spec, Pie{}.Plan(spec))
	if len(slices) != 1 {
		t.Fatalf("got %d slices, want 1", len(slices))
	}
	if n := strings.Count(slices[0].Path, " A "); n != 2 {
		t.Errorf("full circle should use two arcs: %s", slices[0].Path)
	}
}

func TestPieZeroTotal(t *testing.T) {
	spec := &chart.Spec{
		Kind: chart.KindPie,
		Data: &chart.Data{Labels: chart.Labels{"a", "b"}, Datasets: []chart.Dataset{{Data: chart.Values(0, 0)}}},
	}
	out := Pie{}.Render(spec)
	wellFormed(t, out)
	s := string(out)
	if strings.Contains(s, "<path") || strings.Contains(s, "NaN") {
		t.Errorf("zero total drew slices: %s", s)
	}
	if !strings.HasPrefix(s, `<svg width="700" height="500"`) {
		t.Errorf("unexpected canvas: %s", s)
	}
}

func TestPieSmallSliceHasNoLabel(t *testing.T) {
	spec := &chart.Spec{
		Kind:    chart.KindPie,
		Data:    &chart.Data{Labels: chart.Labels{"big", "tiny"}, Datasets: []chart.Dataset{{Data: chart.Values(99, 1)}}},
		Options: chart.Options{Legend: &chart.Legend{Display: new(bool)}},
	}
	s := string(Pie{}.Render(spec))
	if n := strings.Count(s, `fill="white">(`); n != 1 {
		t.Errorf("got %d percentage labels, want 1", n)
	}
}

func TestTitleAndAxisTitles(t *testing.T) {
	spec := &chart.Spec{
		Kind: chart.KindBar,
		Data: &chart.Data{Labels: chart.Labels{"a"}, Datasets: []chart.Dataset{{Data: chart.Values(1)}}},
		Options: chart.Options{
			Plugins: &chart.Plugins{Title: &chart.Title{Text: "Incidents <2024>"}},
			Scales: &chart.Scales{
				XAxes: []chart.LegacyAxis{{ScaleLabel: &chart.ScaleLabel{LabelString: "Month"}}},
				Y:     &chart.Axis{Title: &chart.AxisTitle{Text: "Count"}},
			},
		},
	}
	out := Bar{}.Render(spec)
	wellFormed(t, out)
	s := string(out)
	if !strings.Contains(s, `<text x="450" y="30" text-anchor="middle" font-size="18" font-weight="bold" fill="#000">Incidents &lt;2024&gt;</text>`) {
		t.Errorf("missing title: %s", s)
	}
	if !strings.Contains(s, ">Month</text>") || !strings.Contains(s, `transform="rotate(-90)"`) {
		t.Errorf("missing axis titles: %s", s)
	}
}

func TestTickLabel(t *testing.T) {
	tests := []struct {
		tick, step float64
		want       string
	}{
		{10, 2, "10"},
		{0.6000000000000001, 0.2, "0.60"},
		{7.4, 7.4, "7.4"},
		{14.8, 7.4, "14.8"},
	}
	for _, tt := range tests {
		if got := tickLabel(tt.tick, tt.step); got != tt.want {
			t.Errorf("tickLabel(%v, %v) = %q, want %q", tt.tick, tt.step, got, tt.want)
		}
	}
}
