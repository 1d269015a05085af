package sr

import (
	"fmt"

	"github.com/caio-sobreiro/srassess/dicom"
	dcmerrors "github.com/caio-sobreiro/srassess/errors"
)

// CodedConcept is a controlled vocabulary entry: a code value within a
// coding scheme, with a human readable meaning.
type CodedConcept struct {
	CodeValue              string
	CodingSchemeDesignator string
	CodeMeaning            string
}

// NewCodedConcept creates a coded concept.
func NewCodedConcept(value, scheme, meaning string) CodedConcept {
	return CodedConcept{
		CodeValue:              value,
		CodingSchemeDesignator: scheme,
		CodeMeaning:            meaning,
	}
}

// String formats the concept as (value, scheme, "meaning").
func (c CodedConcept) String() string {
	return fmt.Sprintf("(%s, %s, %q)", c.CodeValue, c.CodingSchemeDesignator, c.CodeMeaning)
}

// Dataset returns the concept as a code sequence item.
func (c CodedConcept) Dataset() *dicom.Dataset {
	ds := dicom.NewDataset()
	ds.SetString(dicom.CodeValue, c.CodeValue)
	ds.SetString(dicom.CodingSchemeDesignator, c.CodingSchemeDesignator)
	ds.SetString(dicom.CodeMeaning, c.CodeMeaning)
	return ds
}

// Sequence returns a single item, undefined length code sequence.
func (c CodedConcept) Sequence() *dicom.Sequence {
	return dicom.NewSequence(c.Dataset())
}

// DecodeCodedConcept reads a code sequence item. Long and URN code values
// stand in for CodeValue when it is absent.
func DecodeCodedConcept(item *dicom.Dataset) (CodedConcept, error) {
	value := item.GetString(dicom.CodeValue)
	if value == "" {
		value = item.GetString(dicom.LongCodeValue)
	}
	if value == "" {
		value = item.GetString(dicom.URNCodeValue)
	}
	if value == "" {
		return CodedConcept{}, dcmerrors.NewMissingAttributeError(dicom.CodeValue.String(), dicom.TagName(dicom.CodeValue), "code sequence item")
	}

	meaning, ok := item.LookupString(dicom.CodeMeaning)
	if !ok {
		return CodedConcept{}, dcmerrors.NewMissingAttributeError(dicom.CodeMeaning.String(), dicom.TagName(dicom.CodeMeaning), "code "+value)
	}

	return CodedConcept{
		CodeValue:              value,
		CodingSchemeDesignator: item.GetString(dicom.CodingSchemeDesignator),
		CodeMeaning:            meaning,
	}, nil
}

// lookupCode decodes the first item of the code sequence under tag. It
// returns nil when the sequence is absent or empty.
func lookupCode(ds *dicom.Dataset, tag dicom.Tag) (*CodedConcept, error) {
	item, ok := ds.FirstItem(tag)
	if !ok {
		return nil, nil
	}
	code, err := DecodeCodedConcept(item)
	if err != nil {
		return nil, err
	}
	return &code, nil
}

// setCode stores concept under tag unless an equal concept is already
// there, so untouched codes keep their original encoding and extra fields.
func setCode(ds *dicom.Dataset, tag dicom.Tag, concept *CodedConcept) {
	if concept == nil {
		ds.Remove(tag)
		return
	}
	if existing, err := lookupCode(ds, tag); err == nil && existing != nil && *existing == *concept {
		return
	}
	ds.SetSequence(tag, concept.Sequence())
}

// setString stores value under tag unless it is already there.
func setString(ds *dicom.Dataset, tag dicom.Tag, value string) {
	if existing, ok := ds.LookupString(tag); ok && existing == value {
		return
	}
	ds.SetString(tag, value)
}
