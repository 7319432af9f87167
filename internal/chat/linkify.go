package chat

import (
	"strings"
	"unicode"
)

// Segment kinds for rendered message content.
const (
	SegmentText = "text"
	SegmentLink = "link"
)

// Segment is one run of message content: either plain text or an
// http(s) URL to be rendered as an anchor.
type Segment struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Linkify splits message content into plain-text and link segments. A
// link starts at an http:// or https:// token and runs to the next
// whitespace. Everything else passes through untouched.
func Linkify(content string) []Segment {
	var segments []Segment
	rest := content
	for {
		i := linkStart(rest)
		if i < 0 {
			break
		}
		if i > 0 {
			segments = append(segments, Segment{Kind: SegmentText, Text: rest[:i]})
		}
		end := strings.IndexFunc(rest[i:], unicode.IsSpace)
		if end < 0 {
			segments = append(segments, Segment{Kind: SegmentLink, Text: rest[i:]})
			return segments
		}
		segments = append(segments, Segment{Kind: SegmentLink, Text: rest[i : i+end]})
		rest = rest[i+end:]
	}
	if rest != "" {
		segments = append(segments, Segment{Kind: SegmentText, Text: rest})
	}
	return segments
}

func linkStart(s string) int {
	h := strings.Index(s, "http://")
	hs := strings.Index(s, "https://")
	switch {
	case h < 0:
		return hs
	case hs < 0:
		return h
	case h < hs:
		return h
	default:
		return hs
	}
}
