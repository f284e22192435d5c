package fieldpath

import (
	"fmt"
)

// Get resolves the path inside obj. A missing segment or a type mismatch on
// the way is reported as not found, never as an error.
func (p Path) Get(obj map[string]interface{}) (interface{}, bool) {
	if p.IsZero() {
		return nil, false
	}
	var current interface{} = obj
	for _, segment := range p.segments {
		switch container := current.(type) {
		case map[string]interface{}:
			if segment.Type == IndexSegment {
				return nil, false
			}
			value, ok := container[segment.Key]
			if !ok {
				return nil, false
			}
			current = value
		case []interface{}:
			if segment.Type == KeySegment {
				return nil, false
			}
			if segment.Index >= len(container) {
				return nil, false
			}
			current = container[segment.Index]
		default:
			return nil, false
		}
	}
	return current, true
}

// Set writes value at the path, creating missing intermediate maps. An index
// equal to the list length appends. obj is left untouched when an error is
// returned.
func (p Path) Set(obj map[string]interface{}, value interface{}) error {
	if p.IsZero() {
		return ErrEmptyPath
	}
	if obj == nil {
		return fmt.Errorf("cannot set %s on a nil object", p.raw)
	}
	if _, err := setIn(obj, p.segments, value, p.raw); err != nil {
		return err
	}
	return nil
}

func setIn(current interface{}, segments []Segment, value interface{}, raw string) (interface{}, error) {
	if len(segments) == 0 {
		return value, nil
	}
	segment := segments[0]

	switch container := current.(type) {
	case nil:
		if segment.Type == IndexSegment {
			if segment.Index != 0 {
				return nil, fmt.Errorf("cannot create list for %s: index %d out of range", raw, segment.Index)
			}
			child, err := setIn(nil, segments[1:], value, raw)
			if err != nil {
				return nil, err
			}
			return []interface{}{child}, nil
		}
		child, err := setIn(nil, segments[1:], value, raw)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{segment.Key: child}, nil

	case map[string]interface{}:
		if segment.Type == IndexSegment {
			return nil, fmt.Errorf("value cannot be set because %s is a map, not a list", segmentPrefix(raw, segment))
		}
		child, err := setIn(container[segment.Key], segments[1:], value, raw)
		if err != nil {
			return nil, err
		}
		container[segment.Key] = child
		return container, nil

	case []interface{}:
		if segment.Type == KeySegment {
			return nil, fmt.Errorf("value cannot be set because %s is a list, not a map", segmentPrefix(raw, segment))
		}
		switch {
		case segment.Index < len(container):
			child, err := setIn(container[segment.Index], segments[1:], value, raw)
			if err != nil {
				return nil, err
			}
			container[segment.Index] = child
			return container, nil
		case segment.Index == len(container):
			child, err := setIn(nil, segments[1:], value, raw)
			if err != nil {
				return nil, err
			}
			return append(container, child), nil
		default:
			return nil, fmt.Errorf(
				"value cannot be set because index %d is out of range in list with length %d",
				segment.Index,
				len(container),
			)
		}

	default:
		return nil, fmt.Errorf("value cannot be set because %s holds a %T, not a container", segmentPrefix(raw, segment), current)
	}
}

// Remove deletes the field at the path and reports whether anything was
// removed. Absent fields and intermediates are a no-op.
func (p Path) Remove(obj map[string]interface{}) bool {
	if p.IsZero() || obj == nil {
		return false
	}
	_, removed := removeIn(obj, p.segments)
	return removed
}

func removeIn(current interface{}, segments []Segment) (interface{}, bool) {
	segment := segments[0]
	last := len(segments) == 1

	switch container := current.(type) {
	case map[string]interface{}:
		if segment.Type == IndexSegment {
			return current, false
		}
		child, ok := container[segment.Key]
		if !ok {
			return current, false
		}
		if last {
			delete(container, segment.Key)
			return container, true
		}
		updated, removed := removeIn(child, segments[1:])
		if removed {
			container[segment.Key] = updated
		}
		return container, removed

	case []interface{}:
		if segment.Type == KeySegment || segment.Index >= len(container) {
			return current, false
		}
		if last {
			return append(container[:segment.Index:segment.Index], container[segment.Index+1:]...), true
		}
		updated, removed := removeIn(container[segment.Index], segments[1:])
		if removed {
			container[segment.Index] = updated
		}
		return container, removed
	}
	return current, false
}

func segmentPrefix(raw string, segment Segment) string {
	return fmt.Sprintf("%q (segment %s)", raw, segment)
}
