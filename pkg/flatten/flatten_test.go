package flatten

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		want  []any
	}{
		{
			name:  "flattens a nested slice into a single slice",
			items: []any{[]any{1, 2, []any{3}}, 4},
			want:  []any{1, 2, 3, 4},
		},
		{
			name:  "returns the same elements when no nesting exists",
			items: []any{1, 2, 3, 4},
			want:  []any{1, 2, 3, 4},
		},
		{
			name:  "typed slices and arrays",
			items: []any{[]string{"a", "b"}, [2]int{1, 2}, [][]int{{3}, {4, 5}}},
			want:  []any{"a", "b", 1, 2, 3, 4, 5},
		},
		{
			name:  "strings and bytes are leaves",
			items: []any{"abc", []byte("xy")},
			want:  []any{"abc", []byte("xy")},
		},
		{
			name:  "empty nested slices vanish",
			items: []any{[]any{}, []any{[]any{}}, nil},
			want:  []any{nil},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Flatten(tt.items)); diff != "" {
				t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlattenEmpty(t *testing.T) {
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v, want empty", got)
	}
}

func TestAppendKeepsDestination(t *testing.T) {
	dst := []any{0}
	got := Append(dst, []any{1, []any{2}}, 3)
	if diff := cmp.Diff([]any{0, 1, 2, 3}, got); diff != "" {
		t.Errorf("Append mismatch (-want +got):\n%s", diff)
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"single string", "image/png", []string{"image/png"}},
		{"string slice", []string{"image/png", "image/gif"}, []string{"image/png", "image/gif"}},
		{"nested", []any{"image/*", []any{".png", []string{".gif"}}}, []string{"image/*", ".png", ".gif"}},
		{"numbers", []any{1, 2.5, true}, []string{"1", "2.5", "true"}},
		{"nil", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Strings(tt.in)); diff != "" {
				t.Errorf("Strings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
