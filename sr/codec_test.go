package sr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caio-sobreiro/srassess/dicom"
	dcmerrors "github.com/caio-sobreiro/srassess/errors"
)

func codeItem(c CodedConcept) *dicom.Dataset {
	return c.Dataset()
}

func TestDecodeContentItem_DistinctCodes(t *testing.T) {
	ds := dicom.NewDataset()
	ds.SetString(dicom.RelationshipType, "CONTAINS")
	ds.SetString(dicom.ValueType, "CODE")
	ds.SetSequence(dicom.ConceptNameCodeSequence, dicom.NewSequence(codeItem(NewCodedConcept("AIRAI_06", "99IHE", "Result Assessment Status"))))
	ds.SetSequence(dicom.ConceptCodeSequence, dicom.NewSequence(codeItem(NewCodedConcept("AIRAI_13", "99IHE", "Unreviewed"))))

	item, err := DecodeContentItem(ds)
	require.NoError(t, err)

	require.NotNil(t, item.ConceptName)
	assert.Equal(t, NewCodedConcept("AIRAI_06", "99IHE", "Result Assessment Status"), *item.ConceptName)
	assert.Equal(t, Code{Code: NewCodedConcept("AIRAI_13", "99IHE", "Unreviewed")}, item.Value)
	assert.Equal(t, Contains, item.RelationshipType)
	assert.Equal(t, ValueTypeCode, item.ValueType())
	assert.Nil(t, item.Children)
}

func TestDecodeContentItem_Values(t *testing.T) {
	tests := []struct {
		name     string
		vt       string
		setup    func(ds *dicom.Dataset)
		expected Value
	}{
		{"text", "TEXT", func(ds *dicom.Dataset) { ds.SetString(dicom.TextValue, "  left upper lobe") }, Text{Text: "  left upper lobe"}},
		{"datetime", "DATETIME", func(ds *dicom.Dataset) { ds.SetString(dicom.DateTime, "20250204120000") }, DateTime{Value: "20250204120000"}},
		{"date", "DATE", func(ds *dicom.Dataset) { ds.SetString(dicom.Date, "20250204") }, Date{Value: "20250204"}},
		{"time", "TIME", func(ds *dicom.Dataset) { ds.SetString(dicom.Time, "120000") }, Time{Value: "120000"}},
		{"uidref", "UIDREF", func(ds *dicom.Dataset) { ds.SetString(dicom.UID, "1.2.3") }, UIDRef{UID: "1.2.3"}},
		{"empty uidref", "UIDREF", func(ds *dicom.Dataset) { ds.SetString(dicom.UID, "") }, UIDRef{}},
		{"container", "CONTAINER", func(ds *dicom.Dataset) { ds.SetString(dicom.ContinuityOfContent, "SEPARATE") }, Container{ContinuityOfContent: "SEPARATE"}},
		{"composite", "COMPOSITE", func(ds *dicom.Dataset) {}, Composite{}},
		{"image", "IMAGE", func(ds *dicom.Dataset) {}, Image{}},
		{"scoord", "SCOORD", func(ds *dicom.Dataset) { ds.SetString(dicom.GraphicType, "POINT") }, Opaque{Type: ValueTypeSCoord}},
		{"pname", "PNAME", func(ds *dicom.Dataset) { ds.SetString(dicom.PersonName, "Doe^Jane") }, Opaque{Type: ValueTypePName}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dicom.NewDataset()
			ds.SetString(dicom.ValueType, tt.vt)
			tt.setup(ds)

			item, err := DecodeContentItem(ds)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, item.Value)
			assert.Equal(t, ValueType(tt.vt), item.ValueType())
			assert.Nil(t, item.ConceptName)
			assert.Equal(t, UnknownConcept, item.Meaning())
		})
	}
}

func TestDecodeContentItem_Num(t *testing.T) {
	measured := dicom.NewDataset()
	measured.SetString(dicom.NumericValue, "12.5")
	measured.SetSequence(dicom.MeasurementUnitsCodeSequence, millimetre.Sequence())

	ds := dicom.NewDataset()
	ds.SetString(dicom.ValueType, "NUM")
	ds.SetString(dicom.ObservationUID, "1.2.3.4")
	ds.SetSequence(dicom.ConceptNameCodeSequence, diameterConcept.Sequence())
	ds.SetSequence(dicom.MeasuredValueSequence, dicom.NewSequence(measured))

	item, err := DecodeContentItem(ds)
	require.NoError(t, err)
	assert.Equal(t, Num{Value: "12.5", Unit: millimetre}, item.Value)
	assert.Equal(t, "1.2.3.4", item.ObservationUID)
}

func TestDecodeContentItem_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		vt        string
		setup     func(ds *dicom.Dataset)
		attribute string
	}{
		{"text without value", "TEXT", func(ds *dicom.Dataset) {}, "TextValue"},
		{"code without concept", "CODE", func(ds *dicom.Dataset) {}, "ConceptCodeSequence"},
		{"code with empty sequence", "CODE", func(ds *dicom.Dataset) { ds.SetSequence(dicom.ConceptCodeSequence, dicom.NewSequence()) }, "ConceptCodeSequence"},
		{"num without measured value", "NUM", func(ds *dicom.Dataset) {}, "MeasuredValueSequence"},
		{"num without number", "NUM", func(ds *dicom.Dataset) {
			ds.SetSequence(dicom.MeasuredValueSequence, dicom.NewSequence(dicom.NewDataset()))
		}, "NumericValue"},
		{"num without unit", "NUM", func(ds *dicom.Dataset) {
			measured := dicom.NewDataset()
			measured.SetString(dicom.NumericValue, "1")
			ds.SetSequence(dicom.MeasuredValueSequence, dicom.NewSequence(measured))
		}, "MeasurementUnitsCodeSequence"},
		{"uidref without uid", "UIDREF", func(ds *dicom.Dataset) {}, "UID"},
		{"concept without meaning", "CONTAINER", func(ds *dicom.Dataset) {
			code := dicom.NewDataset()
			code.SetString(dicom.CodeValue, "126010")
			ds.SetSequence(dicom.ConceptNameCodeSequence, dicom.NewSequence(code))
		}, "ConceptNameCodeSequence"},
		{"missing value type", "", func(ds *dicom.Dataset) {}, "ValueType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dicom.NewDataset()
			if tt.vt != "" {
				ds.SetString(dicom.ValueType, tt.vt)
			}
			tt.setup(ds)

			_, err := DecodeContentItem(ds)
			require.ErrorIs(t, err, dcmerrors.ErrMalformedContentItem)

			var itemErr *dcmerrors.ContentItemError
			require.ErrorAs(t, err, &itemErr)
			assert.Equal(t, tt.attribute, itemErr.Attribute)
			assert.Equal(t, "1", itemErr.Path)
		})
	}
}

func TestDecodeContent_ReportsNestedPath(t *testing.T) {
	bad := dicom.NewDataset()
	bad.SetString(dicom.ValueType, "TEXT")

	group := dicom.NewDataset()
	group.SetString(dicom.ValueType, "CONTAINER")
	group.SetSequence(dicom.ContentSequence, dicom.NewSequence(textDataset("ok"), bad))

	_, err := DecodeContent(dicom.NewSequence(textDataset("first"), group))

	var itemErr *dcmerrors.ContentItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, "2.2", itemErr.Path)
}

func textDataset(text string) *dicom.Dataset {
	ds := dicom.NewDataset()
	ds.SetString(dicom.ValueType, "TEXT")
	ds.SetString(dicom.TextValue, text)
	return ds
}

func TestDecodeContent_ChildrenPresence(t *testing.T) {
	withEmpty := dicom.NewDataset()
	withEmpty.SetString(dicom.ValueType, "CONTAINER")
	withEmpty.SetSequence(dicom.ContentSequence, dicom.NewSequence())

	items, err := DecodeContent(dicom.NewSequence(withEmpty, textDataset("leaf")))
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.NotNil(t, items[0].Children, "empty ContentSequence is present")
	assert.Empty(t, items[0].Children)
	assert.False(t, items[0].HasChildren())
	assert.Nil(t, items[1].Children)

	seq, err := EncodeContent(items)
	require.NoError(t, err)
	assert.True(t, seq.Items[0].Has(dicom.ContentSequence))
	assert.False(t, seq.Items[1].Has(dicom.ContentSequence))
}

func TestDecodeContent_DepthLimit(t *testing.T) {
	ds := textDataset("leaf")
	for i := 0; i < MaxDepth; i++ {
		parent := dicom.NewDataset()
		parent.SetString(dicom.ValueType, "CONTAINER")
		parent.SetSequence(dicom.ContentSequence, dicom.NewSequence(ds))
		ds = parent
	}

	_, err := DecodeContent(dicom.NewSequence(ds))
	assert.ErrorIs(t, err, dcmerrors.ErrDepthExceeded)
}

func TestContentItem_EncodeKeepsAttributes(t *testing.T) {
	unit := millimetre.Dataset()
	unit.SetString(dicom.CodingSchemeVersion, "1.9")
	measured := dicom.NewDataset()
	measured.SetString(dicom.NumericValue, "12.5")
	measured.SetSequence(dicom.MeasurementUnitsCodeSequence, &dicom.Sequence{Items: []*dicom.Dataset{unit}})

	ds := dicom.NewDataset()
	ds.SetString(dicom.RelationshipType, "CONTAINS")
	ds.SetString(dicom.ValueType, "NUM")
	ds.SetString(dicom.ObservationDateTime, "20250204120000")
	ds.SetSequence(dicom.ConceptNameCodeSequence, diameterConcept.Sequence())
	ds.SetSequence(dicom.MeasuredValueSequence, &dicom.Sequence{Items: []*dicom.Dataset{measured}})

	item, err := DecodeContentItem(ds)
	require.NoError(t, err)

	encoded, err := item.Encode()
	require.NoError(t, err)
	assert.True(t, ds.Equal(encoded))

	seq, ok := encoded.GetSequence(dicom.MeasuredValueSequence)
	require.True(t, ok)
	assert.False(t, seq.UndefinedLength, "unchanged measurement keeps its encoding")
	assert.Equal(t, "20250204120000", encoded.GetString(dicom.ObservationDateTime))
}

func TestContentItem_EncodeChangedValue(t *testing.T) {
	item, err := DecodeContentItem(textDataset("old"))
	require.NoError(t, err)

	item.Value = Code{Code: lungConcept}
	item.ConceptName = &findingSiteName
	item.ObservationUID = "1.2.3"

	encoded, err := item.Encode()
	require.NoError(t, err)
	assert.False(t, encoded.Has(dicom.TextValue), "stale payload is dropped")
	assert.Equal(t, "CODE", encoded.GetString(dicom.ValueType))
	assert.Equal(t, "1.2.3", encoded.GetString(dicom.ObservationUID))

	decoded, err := DecodeContentItem(encoded)
	require.NoError(t, err)
	assert.Equal(t, Code{Code: lungConcept}, decoded.Value)
	assert.Equal(t, findingSiteName, *decoded.ConceptName)
}

func TestContentItem_EncodeRejectsMissingValue(t *testing.T) {
	item := &ContentItem{RelationshipType: Contains}
	_, err := item.Encode()
	assert.ErrorIs(t, err, dcmerrors.ErrMalformedContentItem)

	_, err = EncodeContent([]*ContentItem{nil})
	assert.ErrorIs(t, err, dcmerrors.ErrMalformedContentItem)
}

func TestContentItem_RoundTripTree(t *testing.T) {
	group := measurementGroup(3)

	encoded, err := group.Encode()
	require.NoError(t, err)

	children, ok := encoded.GetSequence(dicom.ContentSequence)
	require.True(t, ok)
	assert.True(t, children.UndefinedLength)

	decoded, err := DecodeContentItem(encoded)
	require.NoError(t, err)

	assert.Equal(t, meanings(group.Children), meanings(decoded.Children))
	for i := range group.Children {
		assert.Equal(t, group.Children[i].Value, decoded.Children[i].Value)
		assert.Equal(t, group.Children[i].ObservationUID, decoded.Children[i].ObservationUID)
		assert.Equal(t, group.Children[i].RelationshipType, decoded.Children[i].RelationshipType)
	}
}

func TestContentItem_CloneIsDeep(t *testing.T) {
	group := measurementGroup(1)
	clone := group.Clone()

	clone.Children[0].Value = Text{Text: "changed"}
	clone.ConceptName.CodeMeaning = "changed"
	clone.Append(NewItem(Contains, diameterConcept, Text{Text: "extra"}))

	assert.Equal(t, Text{Text: "Lesion 1"}, group.Children[0].Value)
	assert.Equal(t, "Measurement Group", group.Meaning())
	assert.Len(t, group.Children, 3)
}

func TestCodedConcept_Decode(t *testing.T) {
	ds := dicom.NewDataset()
	ds.SetString(dicom.LongCodeValue, "a-very-long-code-value")
	ds.SetString(dicom.CodingSchemeDesignator, "99LOCAL")
	ds.SetString(dicom.CodeMeaning, "Local")

	code, err := DecodeCodedConcept(ds)
	require.NoError(t, err)
	assert.Equal(t, NewCodedConcept("a-very-long-code-value", "99LOCAL", "Local"), code)
	assert.Equal(t, `(a-very-long-code-value, 99LOCAL, "Local")`, code.String())

	_, err = DecodeCodedConcept(dicom.NewDataset())
	assert.ErrorIs(t, err, dcmerrors.ErrMissingAttribute)
}
