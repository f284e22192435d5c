package fieldpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type SegmentType string

const (
	KeySegment   SegmentType = "Key"
	IndexSegment SegmentType = "Index"
	// AutoSegment is a bare numeric segment ("/spec/ports/0" or "spec.ports.0").
	// It indexes a list and keys a map, whichever container it meets.
	AutoSegment SegmentType = "Auto"
)

type Segment struct {
	Type  SegmentType
	Key   string
	Index int
}

func (s Segment) String() string {
	if s.Type == IndexSegment {
		return fmt.Sprintf("[%d]", s.Index)
	}
	return s.Key
}

// Path is a parsed location inside a manifest.
type Path struct {
	raw      string
	segments []Segment
}

var ErrEmptyPath = errors.New("path is empty")

// Parse accepts JSON pointers ("/metadata/labels/app") and dot/bracket
// paths ("spec.ports[0].port", `metadata.labels["app.kubernetes.io/name"]`).
func Parse(input string) (Path, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Path{}, ErrEmptyPath
	}

	var segments []Segment
	var err error
	if strings.HasPrefix(trimmed, "/") {
		segments, err = parsePointer(trimmed)
	} else {
		segments, err = parseDotted(strings.TrimPrefix(trimmed, "."))
	}
	if err != nil {
		return Path{}, fmt.Errorf("invalid path %q: %w", input, err)
	}
	if len(segments) == 0 {
		return Path{}, ErrEmptyPath
	}
	return Path{raw: trimmed, segments: segments}, nil
}

// MustParse is Parse for well-known constant paths.
func MustParse(input string) Path {
	p, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	return p.raw
}

func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

func (p Path) IsZero() bool {
	return len(p.segments) == 0
}

func parsePointer(input string) ([]Segment, error) {
	parts := strings.Split(input[1:], "/")
	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			if i == len(parts)-1 {
				return nil, errors.New("trailing separators are forbidden")
			}
			return nil, fmt.Errorf("empty segment at position %d", i)
		}
		key := unescapePointer(part)
		segments = append(segments, keyOrAuto(key))
	}
	return segments, nil
}

// unescapePointer decodes RFC 6901 escapes; ~1 must be handled before ~0.
func unescapePointer(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

func parseDotted(input string) ([]Segment, error) {
	var segments []Segment
	pos := 0
	expectField := true

	for pos < len(input) {
		switch c := input[pos]; {
		case c == '.':
			if expectField {
				return nil, fmt.Errorf("unexpected '.' at offset %d", pos)
			}
			pos++
			if pos == len(input) {
				return nil, errors.New("trailing separators are forbidden")
			}
			expectField = true
		case c == '[':
			segment, next, err := parseBracket(input, pos)
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment)
			pos = next
			expectField = false
		default:
			if !expectField {
				return nil, fmt.Errorf("expected '.' or '[' at offset %d, got %q", pos, c)
			}
			end := pos
			for end < len(input) && input[end] != '.' && input[end] != '[' {
				if input[end] == ']' {
					return nil, fmt.Errorf("unexpected ']' at offset %d", end)
				}
				end++
			}
			segments = append(segments, keyOrAuto(input[pos:end]))
			pos = end
			expectField = false
		}
	}
	return segments, nil
}

// parseBracket parses [N], ["key"] or ['key'] starting at input[start] == '['.
func parseBracket(input string, start int) (Segment, int, error) {
	pos := start + 1
	if pos >= len(input) {
		return Segment{}, 0, fmt.Errorf("unterminated '[' at offset %d", start)
	}

	if quote := input[pos]; quote == '"' || quote == '\'' {
		end := strings.IndexByte(input[pos+1:], quote)
		if end < 0 {
			return Segment{}, 0, fmt.Errorf("unterminated quoted key at offset %d", pos)
		}
		key := input[pos+1 : pos+1+end]
		closing := pos + 1 + end + 1
		if closing >= len(input) || input[closing] != ']' {
			return Segment{}, 0, fmt.Errorf("expected ']' after quoted key at offset %d", closing)
		}
		return Segment{Type: KeySegment, Key: key}, closing + 1, nil
	}

	end := strings.IndexByte(input[pos:], ']')
	if end < 0 {
		return Segment{}, 0, fmt.Errorf("unterminated '[' at offset %d", start)
	}
	literal := input[pos : pos+end]
	index, err := strconv.Atoi(literal)
	if err != nil || index < 0 {
		return Segment{}, 0, fmt.Errorf("invalid list index %q", literal)
	}
	return Segment{Type: IndexSegment, Key: literal, Index: index}, pos + end + 1, nil
}

func keyOrAuto(key string) Segment {
	if index, ok := parseIndex(key); ok {
		return Segment{Type: AutoSegment, Key: key, Index: index}
	}
	return Segment{Type: KeySegment, Key: key}
}

func parseIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	index, err := strconv.Atoi(s)
	return index, err == nil
}
