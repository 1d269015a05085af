package dicom

import (
	"maps"
	"slices"
	"strings"

	"github.com/caio-sobreiro/srassess/types"
)

// Common transfer syntax UIDs
const (
	TransferSyntaxImplicitVRLittleEndian = types.ImplicitVRLittleEndian
	TransferSyntaxExplicitVRLittleEndian = types.ExplicitVRLittleEndian
)

// Element represents a DICOM data element.
//
// Value holds a string for character VRs (multiple values joined with a
// backslash), a []byte for binary VRs, and a *Sequence for SQ.
type Element struct {
	Tag   Tag
	VR    string
	Value interface{}
}

// Sequence is the value of an SQ element.
//
// When UndefinedLength is set the sequence and each of its items are
// encoded with length 0xFFFFFFFF and closed by explicit delimitation items.
// Every sequence built at runtime should set it, since its encoded length
// is not known until the whole tree has been encoded.
type Sequence struct {
	Items           []*Dataset
	UndefinedLength bool
}

// NewSequence creates an undefined length sequence holding items.
func NewSequence(items ...*Dataset) *Sequence {
	return &Sequence{
		Items:           items,
		UndefinedLength: true,
	}
}

// Dataset represents a collection of DICOM elements
type Dataset struct {
	Elements map[Tag]*Element
}

// NewDataset creates a new empty dataset
func NewDataset() *Dataset {
	return &Dataset{
		Elements: make(map[Tag]*Element),
	}
}

// AddElement adds an element to the dataset
func (d *Dataset) AddElement(tag Tag, vr string, value interface{}) {
	element := &Element{
		Tag:   tag,
		VR:    vr,
		Value: value,
	}
	d.Elements[tag] = element
}

// SetString sets a character valued element using the dictionary VR.
func (d *Dataset) SetString(tag Tag, value string) {
	d.AddElement(tag, LookupVR(tag), value)
}

// SetSequence sets an SQ element.
func (d *Dataset) SetSequence(tag Tag, seq *Sequence) {
	d.AddElement(tag, types.VR_SQ, seq)
}

// GetElement returns an element by tag
func (d *Dataset) GetElement(tag Tag) (*Element, bool) {
	element, exists := d.Elements[tag]
	return element, exists
}

// Has reports whether the dataset contains tag.
func (d *Dataset) Has(tag Tag) bool {
	_, exists := d.Elements[tag]
	return exists
}

// Remove deletes tag from the dataset.
func (d *Dataset) Remove(tag Tag) {
	delete(d.Elements, tag)
}

// Len returns the number of top-level elements.
func (d *Dataset) Len() int {
	return len(d.Elements)
}

// GetString returns a string value for a tag
func (d *Dataset) GetString(tag Tag) string {
	if element, exists := d.Elements[tag]; exists {
		if str, ok := element.Value.(string); ok {
			return trimValue(element.VR, str)
		}
	}
	return ""
}

// trimValue drops insignificant padding. Leading spaces are part of the
// value for free text VRs.
func trimValue(vr, s string) string {
	switch vr {
	case types.VR_LT, types.VR_ST, types.VR_UT, types.VR_UC:
		return strings.TrimRight(s, " ")
	default:
		return strings.TrimSpace(s)
	}
}

// LookupString returns a string value and whether the element is present.
// A present element with an empty value returns ("", true).
func (d *Dataset) LookupString(tag Tag) (string, bool) {
	element, exists := d.Elements[tag]
	if !exists {
		return "", false
	}
	str, _ := element.Value.(string)
	return trimValue(element.VR, str), true
}

// GetStrings returns a slice of string values for a tag
func (d *Dataset) GetStrings(tag Tag) []string {
	if element, exists := d.Elements[tag]; exists {
		switch v := element.Value.(type) {
		case string:
			// Split by backslash for multiple values
			parts := strings.Split(v, "\\")
			result := make([]string, len(parts))
			for i, part := range parts {
				result[i] = strings.TrimSpace(part)
			}
			return result
		case []string:
			return v
		}
	}
	return nil
}

// GetSequence returns the sequence stored under tag, if any.
func (d *Dataset) GetSequence(tag Tag) (*Sequence, bool) {
	element, exists := d.Elements[tag]
	if !exists {
		return nil, false
	}
	seq, ok := element.Value.(*Sequence)
	return seq, ok
}

// FirstItem returns the first item of the sequence stored under tag.
func (d *Dataset) FirstItem(tag Tag) (*Dataset, bool) {
	seq, ok := d.GetSequence(tag)
	if !ok || len(seq.Items) == 0 {
		return nil, false
	}
	return seq.Items[0], true
}

// Tags returns the dataset tags in ascending order.
func (d *Dataset) Tags() []Tag {
	return slices.SortedFunc(maps.Keys(d.Elements), Tag.Compare)
}

// Clone returns a deep copy of the dataset. Sequences and byte values are
// copied, so the clone can be edited without affecting d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	clone := NewDataset()
	for tag, element := range d.Elements {
		clone.Elements[tag] = &Element{
			Tag:   element.Tag,
			VR:    element.VR,
			Value: cloneValue(element.Value),
		}
	}
	return clone
}

// Clone returns a deep copy of the sequence.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	items := make([]*Dataset, len(s.Items))
	for i, item := range s.Items {
		items[i] = item.Clone()
	}
	return &Sequence{Items: items, UndefinedLength: s.UndefinedLength}
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case *Sequence:
		return val.Clone()
	case []byte:
		return slices.Clone(val)
	case []string:
		return slices.Clone(val)
	default:
		return val
	}
}

// Equal reports whether two datasets hold the same elements with equal
// values. Sequence length encoding is ignored; only items are compared.
func (d *Dataset) Equal(other *Dataset) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Elements) != len(other.Elements) {
		return false
	}
	for tag, element := range d.Elements {
		o, ok := other.Elements[tag]
		if !ok || element.VR != o.VR {
			return false
		}
		if !valuesEqual(element.Value, o.Value) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case *Sequence:
		bv, ok := b.(*Sequence)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !av.Items[i].Equal(bv.Items[i]) {
				return false
			}
		}
		return true
	case []byte:
		bv, ok := b.([]byte)
		return ok && slices.Equal(av, bv)
	case []string:
		bv, ok := b.([]string)
		return ok && slices.Equal(av, bv)
	case string:
		bv, ok := b.(string)
		return ok && strings.TrimSpace(av) == strings.TrimSpace(bv)
	default:
		return a == b
	}
}
