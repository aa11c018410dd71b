// ABOUTME: Tests for the escape-sequence constructors.
// ABOUTME: The byte sequences are a compatibility contract; assert them exactly.

package progress

import "testing"

func TestMoveTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  int
		col  int
		want string
	}{
		{name: "origin", row: 1, col: 1, want: "\033[1;1H"},
		{name: "bottom of 24-row terminal", row: 24, col: 1, want: "\033[24;1H"},
		{name: "wide position", row: 50, col: 200, want: "\033[50;200H"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := moveTo(tt.row, tt.col); got != tt.want {
				t.Errorf("moveTo(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestSetScrollRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		top    int
		bottom int
		want   string
	}{
		{name: "reserve last of 24", top: 1, bottom: 23, want: "\033[1;23r"},
		{name: "full height reset", top: 1, bottom: 24, want: "\033[1;24r"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := setScrollRegion(tt.top, tt.bottom); got != tt.want {
				t.Errorf("setScrollRegion(%d, %d) = %q, want %q", tt.top, tt.bottom, got, tt.want)
			}
		})
	}
}
