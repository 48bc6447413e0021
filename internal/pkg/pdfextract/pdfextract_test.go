package pdfextract

import (
	"reflect"
	"testing"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "plain blocks",
			in:   "first paragraph\n\nsecond paragraph",
			want: []string{"first paragraph", "second paragraph"},
		},
		{
			name: "trims and drops empties",
			in:   "  lead  \n\n\n\n   \n\ntail\n",
			want: []string{"lead", "tail"},
		},
		{
			name: "single block without separator",
			in:   "just one block\nwith a soft break",
			want: []string{"just one block\nwith a soft break"},
		},
		{
			name: "empty input",
			in:   "",
			want: nil,
		},
		{
			name: "whitespace only",
			in:   "  \n \t \n\n ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitParagraphs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
