package source

import (
	"testing"
)

func TestSpanEmptyLen(t *testing.T) {
	tests := []struct {
		name  string
		span  Span
		empty bool
		len   uint32
	}{
		{name: "normal span", span: Span{File: 1, Start: 10, End: 20}, empty: false, len: 10},
		{name: "zero-length span", span: Span{File: 1, Start: 15, End: 15}, empty: true, len: 0},
		{name: "single byte", span: Span{File: 1, Start: 42, End: 43}, empty: false, len: 1},
		{name: "at origin", span: Span{File: 0, Start: 0, End: 0}, empty: true, len: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
			if got := tt.span.Len(); got != tt.len {
				t.Errorf("Len() = %d, want %d", got, tt.len)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	span := Span{File: 1, Start: 10, End: 20}

	tests := []struct {
		name string
		off  uint32
		want bool
	}{
		{name: "before start", off: 9, want: false},
		{name: "at start", off: 10, want: true},
		{name: "inside", off: 15, want: true},
		{name: "last byte", off: 19, want: true},
		{name: "at end is exclusive", off: 20, want: false},
		{name: "after end", off: 100, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := span.Contains(tt.off); got != tt.want {
				t.Errorf("Contains(%d) = %v, want %v", tt.off, got, tt.want)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint extends both ends",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained changes nothing",
			a:        Span{File: 1, Start: 10, End: 40},
			b:        Span{File: 1, Start: 20, End: 30},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "overlap on the left",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 5, End: 15},
			expected: Span{File: 1, Start: 5, End: 20},
		},
		{
			name:     "other file is ignored",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestSpanCollapse(t *testing.T) {
	span := Span{File: 3, Start: 100, End: 150}

	start := span.CollapseToStart()
	if start != (Span{File: 3, Start: 100, End: 100}) {
		t.Errorf("CollapseToStart() = %+v", start)
	}

	end := span.CollapseToEnd()
	if end != (Span{File: 3, Start: 150, End: 150}) {
		t.Errorf("CollapseToEnd() = %+v", end)
	}

	if !start.Empty() || !end.Empty() {
		t.Error("collapsed spans must be zero-length")
	}
}

func TestSpanString(t *testing.T) {
	span := Span{File: 2, Start: 7, End: 19}
	if got := span.String(); got != "2:7-19" {
		t.Errorf("String() = %q, want %q", got, "2:7-19")
	}
}
