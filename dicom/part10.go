package dicom

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/rs/zerolog/log"

	dcmerrors "github.com/caio-sobreiro/srassess/errors"
	"github.com/caio-sobreiro/srassess/types"
)

const (
	preambleLength = 128
	part10Prefix   = "DICM"
	headerLength   = preambleLength + len(part10Prefix)
)

// Identification written into the File Meta Information of every file this
// package produces.
const (
	ImplementationClassUIDValue    = "2.25.147393318447233740137126146578316813914"
	ImplementationVersionNameValue = "SRASSESS_010"
)

// File is a decoded DICOM Part 10 file.
type File struct {
	Meta              *Dataset
	Dataset           *Dataset
	TransferSyntaxUID string
}

// StripPart10Header removes the DICOM Part 10 preamble and File Meta Information
// to extract just the dataset.
//
// DICOM Part 10 files contain:
//   - 128 byte preamble
//   - 4 byte "DICM" prefix
//   - File Meta Information elements (group 0x0002), always Explicit VR Little Endian
//   - Dataset (the actual DICOM data)
//
// The decoded File Meta Information and the dataset bytes are returned.
func StripPart10Header(data []byte) (*Dataset, []byte, error) {
	if len(data) < headerLength {
		return nil, nil, fmt.Errorf("%w: data too short (need at least %d bytes, got %d)",
			dcmerrors.ErrNotPart10, headerLength, len(data))
	}

	if !HasPart10Header(data) {
		return nil, nil, fmt.Errorf("%w: missing DICM prefix at offset %d", dcmerrors.ErrNotPart10, preambleLength)
	}

	// Find the end of group 0x0002 by scanning element headers; the group
	// length element is not trusted since some writers get it wrong.
	offset := headerLength
	for offset+8 <= len(data) {
		group := binary.LittleEndian.Uint16(data[offset : offset+2])
		if group != 0x0002 {
			break
		}
		vr := string(data[offset+4 : offset+6])
		var length int
		if types.IsLongVR(vr) {
			if offset+12 > len(data) {
				return nil, nil, dcmerrors.NewDecodeError(offset, "truncated file meta element")
			}
			length = int(binary.LittleEndian.Uint32(data[offset+8 : offset+12]))
			offset += 12
		} else {
			length = int(binary.LittleEndian.Uint16(data[offset+6 : offset+8]))
			offset += 8
		}
		offset += length
		if offset > len(data) {
			return nil, nil, dcmerrors.NewDecodeError(offset, "file meta element exceeds data")
		}
	}

	meta, err := ParseDataset(data[headerLength:offset])
	if err != nil {
		return nil, nil, fmt.Errorf("file meta information: %w", err)
	}

	log.Debug().
		Str("transfer_syntax", meta.GetString(TransferSyntaxUID)).
		Int("dataset_start_offset", offset).
		Msg("Found File Meta Information")

	return meta, data[offset:], nil
}

// HasPart10Header checks if the data starts with a DICOM Part 10 header.
//
// Returns true if the data contains the 128-byte preamble followed by "DICM".
func HasPart10Header(data []byte) bool {
	if len(data) < headerLength {
		return false
	}
	return string(data[preambleLength:headerLength]) == part10Prefix
}

// ParsePart10 decodes a complete Part 10 file.
func ParsePart10(data []byte) (*File, error) {
	meta, body, err := StripPart10Header(data)
	if err != nil {
		return nil, err
	}

	ts := meta.GetString(TransferSyntaxUID)
	if ts == "" {
		return nil, dcmerrors.NewMissingAttributeError(TransferSyntaxUID.String(), TagName(TransferSyntaxUID), "file meta information")
	}

	if types.IsRetired(ts) {
		log.Warn().Str("transfer_syntax", ts).Msg("File uses a retired transfer syntax")
	}

	ds, err := ParseDatasetWithTransferSyntax(body, ts)
	if err != nil {
		return nil, err
	}

	return &File{
		Meta:              meta,
		Dataset:           ds,
		TransferSyntaxUID: ts,
	}, nil
}

// EncodePart10 encodes ds as a Part 10 file in Explicit VR Little Endian.
// The File Meta Information is regenerated from the dataset's SOP Class
// and SOP Instance UIDs; any group 0x0002 elements in ds are ignored.
func EncodePart10(ds *Dataset) ([]byte, error) {
	sopClass := ds.GetString(SOPClassUID)
	if sopClass == "" {
		return nil, dcmerrors.NewMissingAttributeError(SOPClassUID.String(), TagName(SOPClassUID), "writing file meta information")
	}
	sopInstance := ds.GetString(SOPInstanceUID)
	if sopInstance == "" {
		return nil, dcmerrors.NewMissingAttributeError(SOPInstanceUID.String(), TagName(SOPInstanceUID), "writing file meta information")
	}

	meta := NewDataset()
	meta.AddElement(FileMetaInformationVersion, types.VR_OB, []byte{0x00, 0x01})
	meta.AddElement(MediaStorageSOPClassUID, types.VR_UI, sopClass)
	meta.AddElement(MediaStorageSOPInstanceUID, types.VR_UI, sopInstance)
	meta.AddElement(TransferSyntaxUID, types.VR_UI, TransferSyntaxExplicitVRLittleEndian)
	meta.AddElement(ImplementationClassUID, types.VR_UI, ImplementationClassUIDValue)
	meta.AddElement(ImplementationVersionName, types.VR_SH, ImplementationVersionNameValue)

	metaBytes, err := meta.EncodeDataset()
	if err != nil {
		return nil, fmt.Errorf("encode file meta information: %w", err)
	}

	body := NewDataset()
	for tag, element := range ds.Elements {
		if !tag.IsFileMeta() {
			body.Elements[tag] = element
		}
	}
	bodyBytes, err := body.EncodeDataset()
	if err != nil {
		return nil, fmt.Errorf("encode dataset: %w", err)
	}

	var buf bytes.Buffer
	buf.Grow(headerLength + 12 + len(metaBytes) + len(bodyBytes))
	buf.Write(make([]byte, preambleLength))
	buf.WriteString(part10Prefix)

	groupLength := NewDataset()
	groupLength.AddElement(FileMetaInformationGroupLength, types.VR_UL, uint32(len(metaBytes)))
	lengthBytes, err := groupLength.EncodeDataset()
	if err != nil {
		return nil, err
	}
	buf.Write(lengthBytes)
	buf.Write(metaBytes)
	buf.Write(bodyBytes)
	return buf.Bytes(), nil
}
