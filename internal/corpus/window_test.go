package corpus

import (
	"reflect"
	"testing"
)

func TestWindow_Apply(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	tests := []struct {
		name   string
		window Window
		want   []string
	}{
		{"first two", Window{Start: 0, Limit: 2}, []string{"a", "b"}},
		{"middle", Window{Start: 1, Limit: 2}, []string{"b", "c"}},
		{"limit beyond remaining", Window{Start: 2, Limit: 10}, []string{"c", "d"}},
		{"start at end", Window{Start: 4, Limit: 1}, nil},
		{"start beyond end", Window{Start: 99, Limit: 1}, nil},
		{"zero limit", Window{Start: 0, Limit: 0}, nil},
		{"negative limit", Window{Start: 1, Limit: -3}, nil},
		{"negative start", Window{Start: -2, Limit: 1}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.window.Apply(lines)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("%+v.Apply() = %q, want %q", tt.window, got, tt.want)
			}
		})
	}
}

func TestWindow_Apply_EmptyCorpus(t *testing.T) {
	if got := (Window{Start: 0, Limit: 5}).Apply(nil); len(got) != 0 {
		t.Errorf("expected no items, got %q", got)
	}
}

func TestWindow_Offset(t *testing.T) {
	if got := (Window{Start: 3}).Offset(); got != 3 {
		t.Errorf("expected offset 3, got %d", got)
	}
	if got := (Window{Start: -1}).Offset(); got != 0 {
		t.Errorf("expected offset 0 for negative start, got %d", got)
	}
}
