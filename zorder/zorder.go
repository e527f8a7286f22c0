// Package zorder maintains the per-page stacking order of fields. Each
// (page, subPage) pair owns one ordered sequence of field ids; a field's
// zIndex is its position in that sequence, 0 being bottom-most. The sequence
// stays contiguous after every operation.
package zorder

import (
	"fmt"

	"github.com/printlab/fieldkit/field"
)

// Mode enumerates the four rearrange operations.
type Mode int

const (
	// MoveFront swaps with the next-higher neighbor.
	MoveFront Mode = iota
	// MoveBack swaps with the next-lower neighbor.
	MoveBack
	// MoveToFront relocates to the top of the stack.
	MoveToFront
	// MoveToBack relocates to index 0.
	MoveToBack
)

func (m Mode) String() string {
	switch m {
	case MoveFront:
		return "moveFront"
	case MoveBack:
		return "moveBack"
	case MoveToFront:
		return "moveToFront"
	case MoveToBack:
		return "moveToBack"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps the scripting-surface spelling of a rearrange mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "moveFront":
		return MoveFront, nil
	case "moveBack":
		return MoveBack, nil
	case "moveToFront":
		return MoveToFront, nil
	case "moveToBack":
		return MoveToBack, nil
	default:
		return 0, fmt.Errorf("unknown rearrange mode %q: %w", s, field.ErrInvalidArgument)
	}
}

// Apply reorders stack so that id moves per mode. It returns the new order
// and whether anything changed; boundary cases (already top-most, already
// bottom-most, single-element stack) are no-ops, not errors. The input slice
// is not modified.
func Apply(stack []field.ID, id field.ID, mode Mode) ([]field.ID, bool, error) {
	pos := -1
	for i, cur := range stack {
		if cur == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, false, fmt.Errorf("field %s not in stack: %w", id, field.ErrNotFound)
	}

	out := append([]field.ID(nil), stack...)
	switch mode {
	case MoveFront:
		if pos == len(out)-1 {
			return out, false, nil
		}
		out[pos], out[pos+1] = out[pos+1], out[pos]
	case MoveBack:
		if pos == 0 {
			return out, false, nil
		}
		out[pos], out[pos-1] = out[pos-1], out[pos]
	case MoveToFront:
		if pos == len(out)-1 {
			return out, false, nil
		}
		out = append(append(out[:pos], out[pos+1:]...), id)
	case MoveToBack:
		if pos == 0 {
			return out, false, nil
		}
		rest := append([]field.ID{id}, out[:pos]...)
		out = append(rest, out[pos+1:]...)
	default:
		return nil, false, fmt.Errorf("unknown rearrange mode %d: %w", mode, field.ErrInvalidArgument)
	}
	return out, true, nil
}

// Key addresses one stack.
type Key struct {
	Page    int
	SubPage int
}

// Stacks is the set of per-(page, subPage) orderings. The zero value is not
// usable; call NewStacks.
type Stacks struct {
	m map[Key][]field.ID
}

func NewStacks() *Stacks { return &Stacks{m: make(map[Key][]field.ID)} }

// Get returns a copy of the stack for (page, subPage), bottom-most first.
func (s *Stacks) Get(page, subPage int) []field.ID {
	return append([]field.ID(nil), s.m[Key{page, subPage}]...)
}

// Set replaces the stack for (page, subPage).
func (s *Stacks) Set(page, subPage int, ids []field.ID) {
	s.m[Key{page, subPage}] = append([]field.ID(nil), ids...)
}

// Push appends id at the top of its stack and returns the zIndex it received.
func (s *Stacks) Push(page, subPage int, id field.ID) int {
	k := Key{page, subPage}
	s.m[k] = append(s.m[k], id)
	return len(s.m[k]) - 1
}

// Remove deletes id from its stack; remaining fields close the gap so their
// indices stay contiguous.
func (s *Stacks) Remove(page, subPage int, id field.ID) {
	k := Key{page, subPage}
	stack := s.m[k]
	for i, cur := range stack {
		if cur == id {
			s.m[k] = append(stack[:i], stack[i+1:]...)
			return
		}
	}
}
