package sr

import (
	"fmt"
	"io"
	"iter"
	"strings"

	dcmerrors "github.com/caio-sobreiro/srassess/errors"
)

// Visit is one step of a content tree walk.
type Visit struct {
	// Depth is 0 for the anchor and increases by one per level.
	Depth int
	// Path locates the item by 1-based positions from the top level.
	Path     string
	Item     *ContentItem
	Value    string
	HasValue bool
}

// EffectiveValue returns the displayable value of an item: "<value> <unit
// meaning>" for NUM, the meaning of a CODE and the literal of TEXT, UIDREF
// and the date and time types. Containers, references and uninterpreted
// value types have no effective value.
func EffectiveValue(item *ContentItem) (string, bool) {
	switch v := item.Value.(type) {
	case Text:
		return v.Text, true
	case Num:
		return v.Value + " " + v.Unit.CodeMeaning, true
	case Code:
		return v.Code.CodeMeaning, true
	case DateTime:
		return v.Value, true
	case Date:
		return v.Value, true
	case Time:
		return v.Value, true
	case UIDRef:
		return v.UID, true
	default:
		return "", false
	}
}

type frame struct {
	item  *ContentItem
	path  string
	depth int
}

// Walk visits, in pre-order, every anchor among items (top-level items
// whose concept meaning is AnchorMeaning) and its whole subtree. Other
// top-level items are not visited. The walk uses an explicit stack, so
// tree depth only costs heap; a tree deeper than MaxDepth ends the walk
// with an error.
func Walk(items []*ContentItem) iter.Seq2[Visit, error] {
	return func(yield func(Visit, error) bool) {
		var stack []frame
		for i := len(items) - 1; i >= 0; i-- {
			if items[i] != nil && items[i].Meaning() == AnchorMeaning {
				stack = append(stack, frame{item: items[i], path: childPath("", i)})
			}
		}

		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if f.item == nil {
				yield(Visit{Depth: f.depth, Path: f.path}, &dcmerrors.ContentItemError{Path: f.path, Msg: "empty item"})
				return
			}
			if f.depth > MaxDepth {
				yield(Visit{Depth: f.depth, Path: f.path, Item: f.item},
					fmt.Errorf("%w: item %s", dcmerrors.ErrDepthExceeded, f.path))
				return
			}

			if f.item.Value == nil {
				yield(Visit{Depth: f.depth, Path: f.path, Item: f.item},
					&dcmerrors.ContentItemError{Path: f.path, Attribute: "ValueType", Msg: "item has no value"})
				return
			}

			value, ok := EffectiveValue(f.item)
			if !yield(Visit{Depth: f.depth, Path: f.path, Item: f.item, Value: value, HasValue: ok}, nil) {
				return
			}

			for i := len(f.item.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{
					item:  f.item.Children[i],
					path:  childPath(f.path, i),
					depth: f.depth + 1,
				})
			}
		}
	}
}

// WriteTrace writes one line per visited item, indented two spaces per
// level, e.g. "  - Finding [CODE]: Nodule". Items without an effective
// value show "<none>".
func WriteTrace(w io.Writer, items []*ContentItem) error {
	for visit, err := range Walk(items) {
		if err != nil {
			return err
		}
		value := "<none>"
		if visit.HasValue {
			value = visit.Value
		}
		_, werr := fmt.Fprintf(w, "%s- %s [%s]: %s\n",
			strings.Repeat("  ", visit.Depth), visit.Item.Meaning(), visit.Item.ValueType(), value)
		if werr != nil {
			return dcmerrors.NewIOError("write", "trace", werr)
		}
	}
	return nil
}
