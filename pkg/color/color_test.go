package color

import (
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart"
)

func TestResolve(t *testing.T) {
	bgList := &chart.Dataset{BackgroundColor: chart.ColorList("#a", "#b", "#c")}
	bgOne := &chart.Dataset{BackgroundColor: chart.ColorList("#solo")}
	bgScalar := &chart.Dataset{BackgroundColor: chart.Color("#s"), BorderColor: chart.Color("#border")}
	borderList := &chart.Dataset{BorderColor: chart.ColorList("#x", "#y")}
	borderScalar := &chart.Dataset{BorderColor: chart.Color("#z")}
	bare := &chart.Dataset{}

	tests := []struct {
		name                string
		ds                  *chart.Dataset
		dataIdx, datasetIdx int
		stacked, pie        bool
		want                string
	}{
		{"pie list by category", bgList, 1, 5, false, true, "#b"},
		{"pie list wraps", bgList, 4, 0, false, true, "#b"},
		{"flat multi list by category", bgList, 2, 1, false, false, "#c"},
		{"stacked single list", bgOne, 7, 3, true, false, "#solo"},
		{"stacked multi list by series", bgList, 0, 4, true, false, "#b"},
		{"flat single list", bgOne, 3, 2, false, false, "#solo"},
		{"background scalar beats border", bgScalar, 0, 0, false, false, "#s"},
		{"border list by category", borderList, 1, 0, false, false, "#y"},
		{"border list stacked by series", borderList, 0, 3, true, false, "#y"},
		{"border scalar", borderScalar, 9, 9, true, false, "#z"},
		{"palette by category", bare, 1, 7, false, false, Palette[1]},
		{"palette pie by category", bare, 16, 0, false, true, Palette[1]},
		{"palette stacked by series", bare, 1, 2, true, false, Palette[2]},
		{"nil dataset", nil, 0, 0, false, false, Palette[0]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.ds, tt.dataIdx, tt.datasetIdx, tt.stacked, tt.pie)
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveEmptyListFallsThrough(t *testing.T) {
	ds := &chart.Dataset{
		BackgroundColor: chart.ColorList(),
		BorderColor:     chart.Color("#border"),
	}
	if got := Resolve(ds, 0, 0, false, false); got != "#border" {
		t.Errorf("Resolve() = %q, want #border", got)
	}

	ds = &chart.Dataset{BackgroundColor: chart.ColorList("", "#b")}
	if got := Resolve(ds, 0, 0, false, false); got != Palette[0] {
		t.Errorf("empty entry should fall through, got %q", got)
	}
}

func TestResolverFallback(t *testing.T) {
	r := NewResolver(Single{Background})
	if got := r.Resolve(&chart.Dataset{}, 0, 0, false, false); got != Fallback {
		t.Errorf("Resolve() = %q, want %q", got, Fallback)
	}
	if got := NewResolver().Resolve(nil, 0, 0, false, false); got != Fallback {
		t.Errorf("empty chain = %q, want %q", got, Fallback)
	}
}

func TestStrategiesInIsolation(t *testing.T) {
	ds := &chart.Dataset{
		BackgroundColor: chart.ColorList("#a", "#b"),
		BorderColor:     chart.Color("#c"),
	}
	ctx := Context{Dataset: ds, DataIndex: 1}

	if c, ok := (List{Background}).TryResolve(ctx); !ok || c != "#b" {
		t.Errorf("List{Background} = %q, %v", c, ok)
	}
	if _, ok := (Single{Background}).TryResolve(ctx); ok {
		t.Error("Single{Background} should decline a list")
	}
	if _, ok := (List{Border}).TryResolve(ctx); ok {
		t.Error("List{Border} should decline a scalar")
	}
	if c, ok := (Single{Border}).TryResolve(ctx); !ok || c != "#c" {
		t.Errorf("Single{Border} = %q, %v", c, ok)
	}
	if _, ok := (Cycle{}).TryResolve(ctx); ok {
		t.Error("empty Cycle should decline")
	}
}

func TestResolveDeterministic(t *testing.T) {
	ds := &chart.Dataset{BackgroundColor: chart.ColorList("#1", "#2", "#3")}
	for stacked := range 2 {
		for pie := range 2 {
			for i := range 5 {
				for j := range 3 {
					a := Resolve(ds, i, j, stacked == 1, pie == 1)
					b := Resolve(ds, i, j, stacked == 1, pie == 1)
					if a != b || a == "" {
						t.Fatalf("Resolve(%d,%d,%d,%d) not deterministic: %q vs %q", i, j, stacked, pie, a, b)
					}
				}
			}
		}
	}
}
