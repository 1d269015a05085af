// Package sr models DICOM Structured Report documents as content trees and
// provides the operations used to inspect and filter them.
package sr

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/caio-sobreiro/srassess/dicom"
	dcmerrors "github.com/caio-sobreiro/srassess/errors"
	"github.com/caio-sobreiro/srassess/types"
)

// AnchorMeaning is the concept meaning of the top-level container that
// holds the individual findings of a measurement report.
const AnchorMeaning = "Image Measurements"

// Document is a structured report: the dataset header plus the content
// tree rooted at the document's ContentSequence.
type Document struct {
	// Header holds every top-level attribute except ContentSequence.
	Header *dicom.Dataset
	// Title is the root concept name (document title), nil when absent.
	Title *CodedConcept
	// Content is nil when the document has no ContentSequence.
	Content []*ContentItem
}

// NewDocument creates an empty document with the given header.
func NewDocument(header *dicom.Dataset) *Document {
	if header == nil {
		header = dicom.NewDataset()
	}
	return &Document{Header: header}
}

// Decode builds a document from a dataset. The dataset is not retained.
func Decode(ds *dicom.Dataset) (*Document, error) {
	if ds == nil {
		return nil, fmt.Errorf("%w: nil dataset", dcmerrors.ErrInvalidDataset)
	}

	title, err := lookupCode(ds, dicom.ConceptNameCodeSequence)
	if err != nil {
		return nil, &dcmerrors.ContentItemError{Path: "root", ValueType: ds.GetString(dicom.ValueType), Attribute: "ConceptNameCodeSequence", Msg: err.Error()}
	}

	var content []*ContentItem
	if seq, ok := ds.GetSequence(dicom.ContentSequence); ok {
		content, err = DecodeContent(seq)
		if err != nil {
			return nil, err
		}
	}

	header := ds.Clone()
	header.Remove(dicom.ContentSequence)
	return &Document{Header: header, Title: title, Content: content}, nil
}

// Encode converts the document back to a dataset. The content tree is
// written as an undefined length ContentSequence.
func (d *Document) Encode() (*dicom.Dataset, error) {
	ds := d.Header.Clone()
	if ds == nil {
		ds = dicom.NewDataset()
	}
	setCode(ds, dicom.ConceptNameCodeSequence, d.Title)

	ds.Remove(dicom.ContentSequence)
	if d.Content != nil {
		seq, err := EncodeContent(d.Content)
		if err != nil {
			return nil, err
		}
		ds.SetSequence(dicom.ContentSequence, seq)
	}
	return ds, nil
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	clone := &Document{Header: d.Header.Clone()}
	if d.Title != nil {
		title := *d.Title
		clone.Title = &title
	}
	if d.Content != nil {
		clone.Content = make([]*ContentItem, len(d.Content))
		for i, item := range d.Content {
			clone.Content[i] = item.Clone()
		}
	}
	return clone
}

// SOPClassUID returns the document's SOP Class UID.
func (d *Document) SOPClassUID() string { return d.Header.GetString(dicom.SOPClassUID) }

// SOPInstanceUID returns the document's SOP Instance UID.
func (d *Document) SOPInstanceUID() string { return d.Header.GetString(dicom.SOPInstanceUID) }

// SeriesInstanceUID returns the document's Series Instance UID.
func (d *Document) SeriesInstanceUID() string { return d.Header.GetString(dicom.SeriesInstanceUID) }

// StudyInstanceUID returns the document's Study Instance UID.
func (d *Document) StudyInstanceUID() string { return d.Header.GetString(dicom.StudyInstanceUID) }

// Reidentify gives the document a new SOP Instance UID and Series Instance
// UID. Empty arguments leave the corresponding attribute unchanged.
func (d *Document) Reidentify(sopInstanceUID, seriesInstanceUID string) {
	if sopInstanceUID != "" {
		d.Header.SetString(dicom.SOPInstanceUID, sopInstanceUID)
	}
	if seriesInstanceUID != "" {
		d.Header.SetString(dicom.SeriesInstanceUID, seriesInstanceUID)
	}
}

// Anchor returns the position and item of the first top-level item whose
// concept meaning is AnchorMeaning.
func (d *Document) Anchor() (int, *ContentItem, bool) {
	for i, item := range d.Content {
		if item != nil && item.Meaning() == AnchorMeaning {
			return i, item, true
		}
	}
	return -1, nil, false
}

// Parse decodes a Part 10 encoded structured report.
func Parse(data []byte) (*Document, error) {
	file, err := dicom.ParsePart10(data)
	if err != nil {
		return nil, err
	}

	sopClass := file.Dataset.GetString(dicom.SOPClassUID)
	if !types.IsStructuredReportSOPClass(sopClass) {
		log.Warn().
			Str("sop_class_uid", sopClass).
			Str("sop_class", types.GetSOPClassInfo(sopClass).Name).
			Msg("Dataset is not a structured report, content tree may be empty")
	}

	return Decode(file.Dataset)
}

// Read loads a structured report from a Part 10 file on disk.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dcmerrors.NewIOError("read", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Bytes encodes the document as a Part 10 file in Explicit VR Little Endian.
func (d *Document) Bytes() ([]byte, error) {
	ds, err := d.Encode()
	if err != nil {
		return nil, err
	}
	return dicom.EncodePart10(ds)
}

// WriteTo writes the document to w as a Part 10 file. Nothing is written
// if encoding fails.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	data, err := d.Bytes()
	if err != nil {
		return 0, err
	}
	return bytes.NewReader(data).WriteTo(w)
}
