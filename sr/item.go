package sr

import (
	"github.com/caio-sobreiro/srassess/dicom"
)

// RelationshipType describes how a content item relates to its parent.
type RelationshipType string

const (
	Contains          RelationshipType = "CONTAINS"
	HasConceptMod     RelationshipType = "HAS CONCEPT MOD"
	HasProperties     RelationshipType = "HAS PROPERTIES"
	HasObsContext     RelationshipType = "HAS OBS CONTEXT"
	HasAcqContext     RelationshipType = "HAS ACQ CONTEXT"
	InferredFrom      RelationshipType = "INFERRED FROM"
	SelectedFrom      RelationshipType = "SELECTED FROM"
	RelationshipUnset RelationshipType = ""
)

// ValueType is the content item value type discriminator.
type ValueType string

const (
	ValueTypeText      ValueType = "TEXT"
	ValueTypeNum       ValueType = "NUM"
	ValueTypeCode      ValueType = "CODE"
	ValueTypeDateTime  ValueType = "DATETIME"
	ValueTypeDate      ValueType = "DATE"
	ValueTypeTime      ValueType = "TIME"
	ValueTypeUIDRef    ValueType = "UIDREF"
	ValueTypePName     ValueType = "PNAME"
	ValueTypeComposite ValueType = "COMPOSITE"
	ValueTypeImage     ValueType = "IMAGE"
	ValueTypeWaveform  ValueType = "WAVEFORM"
	ValueTypeSCoord    ValueType = "SCOORD"
	ValueTypeSCoord3D  ValueType = "SCOORD3D"
	ValueTypeTCoord    ValueType = "TCOORD"
	ValueTypeContainer ValueType = "CONTAINER"
	ValueTypeTable     ValueType = "TABLE"
)

// Value is the payload of a content item. Each concrete type corresponds
// to exactly one value type, so an item's discriminator is always
// consistent with its payload.
type Value interface {
	ValueType() ValueType
}

// Text is the value of a TEXT item.
type Text struct {
	Text string
}

// Num is the value of a NUM item: a decimal string and its unit.
type Num struct {
	Value string
	Unit  CodedConcept
}

// Code is the value of a CODE item. It is distinct from the item's
// concept name.
type Code struct {
	Code CodedConcept
}

// DateTime is the value of a DATETIME item.
type DateTime struct {
	Value string
}

// Date is the value of a DATE item.
type Date struct {
	Value string
}

// Time is the value of a TIME item.
type Time struct {
	Value string
}

// UIDRef is the value of a UIDREF item. An empty UID is a placeholder.
type UIDRef struct {
	UID string
}

// Container carries no scalar payload; its meaning is in its children.
type Container struct {
	ContinuityOfContent string
}

// Composite references another composite object. The reference itself,
// if any, stays in the item's attributes.
type Composite struct{}

// Image references an image. The reference stays in the item's attributes.
type Image struct{}

// Opaque stands for value types this package carries through without
// interpreting (PNAME, SCOORD, TCOORD, WAVEFORM, ...).
type Opaque struct {
	Type ValueType
}

func (Text) ValueType() ValueType      { return ValueTypeText }
func (Num) ValueType() ValueType       { return ValueTypeNum }
func (Code) ValueType() ValueType      { return ValueTypeCode }
func (DateTime) ValueType() ValueType  { return ValueTypeDateTime }
func (Date) ValueType() ValueType      { return ValueTypeDate }
func (Time) ValueType() ValueType      { return ValueTypeTime }
func (UIDRef) ValueType() ValueType    { return ValueTypeUIDRef }
func (Container) ValueType() ValueType { return ValueTypeContainer }
func (Composite) ValueType() ValueType { return ValueTypeComposite }
func (Image) ValueType() ValueType     { return ValueTypeImage }
func (o Opaque) ValueType() ValueType  { return o.Type }

// UnknownConcept is reported for items without a concept name.
const UnknownConcept = "Unknown"

// ContentItem is one node of a structured report content tree.
type ContentItem struct {
	RelationshipType RelationshipType
	// ConceptName is nil when the item has no concept name.
	ConceptName *CodedConcept
	Value       Value
	// Children is nil when the item has no ContentSequence. A non-nil
	// empty slice is an empty ContentSequence.
	Children []*ContentItem
	// ObservationUID is empty when absent.
	ObservationUID string
	// Attributes holds the item's remaining attributes (observation
	// datetime, referenced SOP sequence, template identification, ...).
	// It may be nil.
	Attributes *dicom.Dataset
}

// NewItem creates a content item.
func NewItem(rel RelationshipType, concept CodedConcept, value Value, children ...*ContentItem) *ContentItem {
	item := &ContentItem{
		RelationshipType: rel,
		ConceptName:      &concept,
		Value:            value,
	}
	if len(children) > 0 {
		item.Children = children
	}
	return item
}

// ValueType returns the discriminator implied by the item's value, or ""
// when the value is missing.
func (c *ContentItem) ValueType() ValueType {
	if c.Value == nil {
		return ""
	}
	return c.Value.ValueType()
}

// Meaning returns the concept name meaning, or "Unknown".
func (c *ContentItem) Meaning() string {
	if c.ConceptName == nil {
		return UnknownConcept
	}
	return c.ConceptName.CodeMeaning
}

// HasChildren reports whether the item has at least one child.
func (c *ContentItem) HasChildren() bool {
	return len(c.Children) > 0
}

// Append adds children to the item.
func (c *ContentItem) Append(children ...*ContentItem) {
	c.Children = append(c.Children, children...)
}

// Clone returns a deep copy of the item and its subtree.
func (c *ContentItem) Clone() *ContentItem {
	if c == nil {
		return nil
	}
	clone := *c
	if c.ConceptName != nil {
		name := *c.ConceptName
		clone.ConceptName = &name
	}
	clone.Attributes = c.Attributes.Clone()
	if c.Children != nil {
		clone.Children = make([]*ContentItem, len(c.Children))
		for i, child := range c.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return &clone
}
