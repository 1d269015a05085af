package sr

import (
	"fmt"
	"strconv"

	"github.com/caio-sobreiro/srassess/dicom"
	dcmerrors "github.com/caio-sobreiro/srassess/errors"
)

// MaxDepth bounds content tree nesting while decoding, encoding and
// walking. Each level costs at least one sequence level in the encoded
// dataset, so trees deeper than this could not be read back anyway.
const MaxDepth = 48

// payloadTags are the attributes that carry a value type's payload. When an
// item's value changes type, stale payload attributes are dropped on encode.
var payloadTags = map[ValueType][]dicom.Tag{
	ValueTypeText:      {dicom.TextValue},
	ValueTypeNum:       {dicom.MeasuredValueSequence},
	ValueTypeCode:      {dicom.ConceptCodeSequence},
	ValueTypeDateTime:  {dicom.DateTime},
	ValueTypeDate:      {dicom.Date},
	ValueTypeTime:      {dicom.Time},
	ValueTypeUIDRef:    {dicom.UID},
	ValueTypeContainer: {dicom.ContinuityOfContent},
}

// DecodeContentItem decodes a ContentSequence item and its subtree.
func DecodeContentItem(ds *dicom.Dataset) (*ContentItem, error) {
	return decodeItem(ds, "1", 1)
}

// DecodeContent decodes the items of a ContentSequence. A nil sequence
// decodes to nil.
func DecodeContent(seq *dicom.Sequence) ([]*ContentItem, error) {
	return decodeChildren(seq, "", 1)
}

func decodeChildren(seq *dicom.Sequence, parent string, depth int) ([]*ContentItem, error) {
	if seq == nil {
		return nil, nil
	}
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: below item %s", dcmerrors.ErrDepthExceeded, parent)
	}

	children := make([]*ContentItem, 0, len(seq.Items))
	for i, ds := range seq.Items {
		child, err := decodeItem(ds, childPath(parent, i), depth)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func childPath(parent string, index int) string {
	if parent == "" {
		return strconv.Itoa(index + 1)
	}
	return parent + "." + strconv.Itoa(index+1)
}

func decodeItem(ds *dicom.Dataset, path string, depth int) (*ContentItem, error) {
	if ds == nil {
		return nil, &dcmerrors.ContentItemError{Path: path, Msg: "empty item"}
	}

	vt, ok := ds.LookupString(dicom.ValueType)
	if !ok || vt == "" {
		return nil, &dcmerrors.ContentItemError{Path: path, Attribute: "ValueType", Msg: "item has no ValueType"}
	}

	item := &ContentItem{
		RelationshipType: RelationshipType(ds.GetString(dicom.RelationshipType)),
		ObservationUID:   ds.GetString(dicom.ObservationUID),
	}

	name, err := lookupCode(ds, dicom.ConceptNameCodeSequence)
	if err != nil {
		return nil, &dcmerrors.ContentItemError{Path: path, ValueType: vt, Attribute: "ConceptNameCodeSequence", Msg: err.Error()}
	}
	item.ConceptName = name

	item.Value, err = decodeValue(ds, ValueType(vt), path)
	if err != nil {
		return nil, err
	}

	if seq, ok := ds.GetSequence(dicom.ContentSequence); ok {
		item.Children, err = decodeChildren(seq, path, depth+1)
		if err != nil {
			return nil, err
		}
	}

	attrs := ds.Clone()
	attrs.Remove(dicom.ContentSequence)
	item.Attributes = attrs
	return item, nil
}

func decodeValue(ds *dicom.Dataset, vt ValueType, path string) (Value, error) {
	missing := func(tag dicom.Tag) error {
		return dcmerrors.NewContentItemError(path, string(vt), dicom.TagName(tag))
	}

	switch vt {
	case ValueTypeText:
		text, ok := ds.LookupString(dicom.TextValue)
		if !ok {
			return nil, missing(dicom.TextValue)
		}
		return Text{Text: text}, nil

	case ValueTypeNum:
		measured, ok := ds.FirstItem(dicom.MeasuredValueSequence)
		if !ok {
			return nil, missing(dicom.MeasuredValueSequence)
		}
		number, ok := measured.LookupString(dicom.NumericValue)
		if !ok {
			return nil, missing(dicom.NumericValue)
		}
		unit, err := lookupCode(measured, dicom.MeasurementUnitsCodeSequence)
		if err != nil {
			return nil, &dcmerrors.ContentItemError{Path: path, ValueType: string(vt), Attribute: "MeasurementUnitsCodeSequence", Msg: err.Error()}
		}
		if unit == nil {
			return nil, missing(dicom.MeasurementUnitsCodeSequence)
		}
		return Num{Value: number, Unit: *unit}, nil

	case ValueTypeCode:
		code, err := lookupCode(ds, dicom.ConceptCodeSequence)
		if err != nil {
			return nil, &dcmerrors.ContentItemError{Path: path, ValueType: string(vt), Attribute: "ConceptCodeSequence", Msg: err.Error()}
		}
		if code == nil {
			return nil, missing(dicom.ConceptCodeSequence)
		}
		return Code{Code: *code}, nil

	case ValueTypeDateTime:
		value, ok := ds.LookupString(dicom.DateTime)
		if !ok {
			return nil, missing(dicom.DateTime)
		}
		return DateTime{Value: value}, nil

	case ValueTypeDate:
		value, ok := ds.LookupString(dicom.Date)
		if !ok {
			return nil, missing(dicom.Date)
		}
		return Date{Value: value}, nil

	case ValueTypeTime:
		value, ok := ds.LookupString(dicom.Time)
		if !ok {
			return nil, missing(dicom.Time)
		}
		return Time{Value: value}, nil

	case ValueTypeUIDRef:
		value, ok := ds.LookupString(dicom.UID)
		if !ok {
			return nil, missing(dicom.UID)
		}
		return UIDRef{UID: value}, nil

	case ValueTypeContainer:
		return Container{ContinuityOfContent: ds.GetString(dicom.ContinuityOfContent)}, nil

	case ValueTypeComposite:
		return Composite{}, nil

	case ValueTypeImage:
		return Image{}, nil

	default:
		return Opaque{Type: vt}, nil
	}
}

// Encode converts the item and its subtree to a ContentSequence item.
// Attributes the item was decoded with are kept; modeled fields that still
// match them keep their original encoding. Children are always written as
// an undefined length sequence.
func (c *ContentItem) Encode() (*dicom.Dataset, error) {
	return c.encode("1", 1)
}

// EncodeContent encodes items as an undefined length ContentSequence.
func EncodeContent(items []*ContentItem) (*dicom.Sequence, error) {
	return encodeChildren(items, "", 1)
}

func encodeChildren(items []*ContentItem, parent string, depth int) (*dicom.Sequence, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: below item %s", dcmerrors.ErrDepthExceeded, parent)
	}
	seq := dicom.NewSequence()
	for i, child := range items {
		path := childPath(parent, i)
		if child == nil {
			return nil, &dcmerrors.ContentItemError{Path: path, Msg: "empty item"}
		}
		ds, err := child.encode(path, depth)
		if err != nil {
			return nil, err
		}
		seq.Items = append(seq.Items, ds)
	}
	return seq, nil
}

func (c *ContentItem) encode(path string, depth int) (*dicom.Dataset, error) {
	if c.Value == nil {
		return nil, &dcmerrors.ContentItemError{Path: path, Attribute: "ValueType", Msg: "item has no value"}
	}
	vt := c.Value.ValueType()
	if vt == "" {
		return nil, &dcmerrors.ContentItemError{Path: path, Attribute: "ValueType", Msg: "item has an empty value type"}
	}

	ds := dicom.NewDataset()
	if c.Attributes != nil {
		ds = c.Attributes.Clone()
	}
	for other, tags := range payloadTags {
		if other == vt {
			continue
		}
		for _, tag := range tags {
			ds.Remove(tag)
		}
	}

	if c.RelationshipType == RelationshipUnset {
		ds.Remove(dicom.RelationshipType)
	} else {
		setString(ds, dicom.RelationshipType, string(c.RelationshipType))
	}
	setString(ds, dicom.ValueType, string(vt))
	setCode(ds, dicom.ConceptNameCodeSequence, c.ConceptName)
	if c.ObservationUID == "" {
		ds.Remove(dicom.ObservationUID)
	} else {
		setString(ds, dicom.ObservationUID, c.ObservationUID)
	}

	if err := encodeValue(ds, c.Value); err != nil {
		return nil, &dcmerrors.ContentItemError{Path: path, ValueType: string(vt), Msg: err.Error()}
	}

	ds.Remove(dicom.ContentSequence)
	if c.Children != nil {
		seq, err := encodeChildren(c.Children, path, depth+1)
		if err != nil {
			return nil, err
		}
		ds.SetSequence(dicom.ContentSequence, seq)
	}
	return ds, nil
}

func encodeValue(ds *dicom.Dataset, value Value) error {
	switch v := value.(type) {
	case Text:
		setString(ds, dicom.TextValue, v.Text)
	case Num:
		if existing, err := decodeValue(ds, ValueTypeNum, ""); err == nil && existing == value {
			return nil
		}
		measured := dicom.NewDataset()
		measured.SetString(dicom.NumericValue, v.Value)
		measured.SetSequence(dicom.MeasurementUnitsCodeSequence, v.Unit.Sequence())
		ds.SetSequence(dicom.MeasuredValueSequence, dicom.NewSequence(measured))
	case Code:
		setCode(ds, dicom.ConceptCodeSequence, &v.Code)
	case DateTime:
		setString(ds, dicom.DateTime, v.Value)
	case Date:
		setString(ds, dicom.Date, v.Value)
	case Time:
		setString(ds, dicom.Time, v.Value)
	case UIDRef:
		setString(ds, dicom.UID, v.UID)
	case Container:
		if v.ContinuityOfContent == "" {
			ds.Remove(dicom.ContinuityOfContent)
		} else {
			setString(ds, dicom.ContinuityOfContent, v.ContinuityOfContent)
		}
	case Composite, Image, Opaque:
		// payload, if any, lives in the item's attributes
	default:
		return fmt.Errorf("unsupported value %T", value)
	}
	return nil
}
