package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinkify(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Segment
	}{
		{
			name:    "plain text",
			content: "just words here",
			want:    []Segment{{Kind: SegmentText, Text: "just words here"}},
		},
		{
			name:    "empty",
			content: "",
			want:    nil,
		},
		{
			name:    "single link",
			content: "https://example.com",
			want:    []Segment{{Kind: SegmentLink, Text: "https://example.com"}},
		},
		{
			name:    "text then link",
			content: "hello https://example.com",
			want: []Segment{
				{Kind: SegmentText, Text: "hello "},
				{Kind: SegmentLink, Text: "https://example.com"},
			},
		},
		{
			name:    "link mid-sentence",
			content: "see http://a.io for details",
			want: []Segment{
				{Kind: SegmentText, Text: "see "},
				{Kind: SegmentLink, Text: "http://a.io"},
				{Kind: SegmentText, Text: " for details"},
			},
		},
		{
			name:    "two links",
			content: "http://a.io https://b.io",
			want: []Segment{
				{Kind: SegmentLink, Text: "http://a.io"},
				{Kind: SegmentText, Text: " "},
				{Kind: SegmentLink, Text: "https://b.io"},
			},
		},
		{
			name:    "scheme alone is still a link token",
			content: "ftp://x.io is not rendered",
			want:    []Segment{{Kind: SegmentText, Text: "ftp://x.io is not rendered"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Linkify(tt.content))
		})
	}
}
