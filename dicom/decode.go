package dicom

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	dcmerrors "github.com/caio-sobreiro/srassess/errors"
	"github.com/caio-sobreiro/srassess/types"
)

// undefinedLength marks a sequence or item whose end is given by a
// delimitation item instead of a length field.
const undefinedLength = 0xFFFFFFFF

// MaxNestingDepth bounds how deeply sequences may nest while decoding.
const MaxNestingDepth = 64

type decoder struct {
	data     []byte
	explicit bool
}

// ParseDataset parses a DICOM dataset from raw bytes (Explicit VR Little Endian)
func ParseDataset(data []byte) (*Dataset, error) {
	return ParseDatasetWithTransferSyntax(data, TransferSyntaxExplicitVRLittleEndian)
}

// ParseDatasetWithTransferSyntax parses a dataset using the provided transfer syntax.
func ParseDatasetWithTransferSyntax(data []byte, transferSyntaxUID string) (*Dataset, error) {
	if transferSyntaxUID == "" {
		transferSyntaxUID = TransferSyntaxExplicitVRLittleEndian
	}
	if !types.HasNativeDatasetEncoding(transferSyntaxUID) {
		info := types.GetTransferSyntaxInfo(transferSyntaxUID)
		if types.IsCompressed(transferSyntaxUID) {
			return nil, fmt.Errorf("%w: compressed %s (%s)", dcmerrors.ErrUnsupportedTransfer, info.Name, transferSyntaxUID)
		}
		return nil, fmt.Errorf("%w: %s (%s)", dcmerrors.ErrUnsupportedTransfer, info.Name, transferSyntaxUID)
	}

	d := &decoder{data: data, explicit: types.IsExplicitVR(transferSyntaxUID)}
	ds, _, err := d.dataset(0, len(data), 0, false)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// dataset decodes elements from off up to end. A delimited dataset is an
// undefined length item and must be closed by an item delimitation item.
func (d *decoder) dataset(off, end, depth int, delimited bool) (*Dataset, int, error) {
	ds := NewDataset()
	for off < end {
		if off+8 > end {
			return nil, off, dcmerrors.NewDecodeError(off, "truncated element header")
		}
		tag := d.tag(off)
		if tag == ItemDelimitationItem {
			if !delimited {
				return nil, off, dcmerrors.NewDecodeError(off, "unexpected item delimitation item")
			}
			return ds, off + 8, nil
		}
		if tag == SequenceDelimitationTag || tag == ItemTag {
			return nil, off, dcmerrors.NewDecodeError(off, "unexpected %s outside a sequence", tag)
		}

		element, next, err := d.element(off, end, depth)
		if err != nil {
			return nil, off, err
		}
		ds.Elements[element.Tag] = element
		off = next
	}
	if delimited {
		return nil, off, dcmerrors.NewDecodeError(off, "item not terminated by item delimitation item")
	}
	return ds, off, nil
}

func (d *decoder) tag(off int) Tag {
	return Tag{
		Group:   binary.LittleEndian.Uint16(d.data[off : off+2]),
		Element: binary.LittleEndian.Uint16(d.data[off+2 : off+4]),
	}
}

func (d *decoder) element(off, end, depth int) (*Element, int, error) {
	tag := d.tag(off)

	var vr string
	var length uint32
	var valueOffset int

	if d.explicit {
		vr = string(d.data[off+4 : off+6])
		if !types.IsKnownVR(vr) {
			return nil, off, dcmerrors.NewDecodeError(off, "element %s has invalid VR %q", tag, vr)
		}
		if types.IsLongVR(vr) {
			// Long VR: Tag (4) + VR (2) + Reserved (2) + Length (4) = 12 bytes header
			if off+12 > end {
				return nil, off, dcmerrors.NewDecodeError(off, "truncated header for %s", tag)
			}
			length = binary.LittleEndian.Uint32(d.data[off+8 : off+12])
			valueOffset = off + 12
		} else {
			// Short VR: Tag (4) + VR (2) + Length (2) = 8 bytes header
			length = uint32(binary.LittleEndian.Uint16(d.data[off+6 : off+8]))
			valueOffset = off + 8
		}
	} else {
		vr = LookupVR(tag)
		length = binary.LittleEndian.Uint32(d.data[off+4 : off+8])
		valueOffset = off + 8
	}

	// An undefined length UN element holds an Implicit VR Little Endian
	// sequence; in Implicit VR any undefined length element is a sequence.
	if length == undefinedLength && vr != types.VR_SQ {
		if vr != types.VR_UN {
			return nil, off, dcmerrors.NewDecodeError(off, "element %s (%s) has undefined length", tag, vr)
		}
		inner := &decoder{data: d.data, explicit: false}
		seq, next, err := inner.sequence(valueOffset, end, length, depth+1)
		if err != nil {
			return nil, off, err
		}
		return &Element{Tag: tag, VR: types.VR_SQ, Value: seq}, next, nil
	}

	if vr == types.VR_SQ {
		seq, next, err := d.sequence(valueOffset, end, length, depth+1)
		if err != nil {
			return nil, off, err
		}
		return &Element{Tag: tag, VR: vr, Value: seq}, next, nil
	}

	// Ensure we have enough data for the value
	valueEnd := valueOffset + int(length)
	if valueEnd > end || valueEnd < valueOffset {
		return nil, off, dcmerrors.NewDecodeError(off, "element %s length %d exceeds data", tag, length)
	}

	value := parseElementValue(vr, d.data[valueOffset:valueEnd])
	return &Element{Tag: tag, VR: vr, Value: value}, valueEnd, nil
}

// sequence decodes the items of an SQ value starting at off.
func (d *decoder) sequence(off, end int, length uint32, depth int) (*Sequence, int, error) {
	if depth > MaxNestingDepth {
		return nil, off, fmt.Errorf("%w: sequence nesting exceeds %d at offset %d",
			dcmerrors.ErrDepthExceeded, MaxNestingDepth, off)
	}

	seq := &Sequence{UndefinedLength: length == undefinedLength}
	seqEnd := end
	if !seq.UndefinedLength {
		seqEnd = off + int(length)
		if seqEnd > end || seqEnd < off {
			return nil, off, dcmerrors.NewDecodeError(off, "sequence length %d exceeds data", length)
		}
	}

	for off < seqEnd {
		if off+8 > seqEnd {
			return nil, off, dcmerrors.NewDecodeError(off, "truncated item header")
		}
		tag := d.tag(off)
		itemLength := binary.LittleEndian.Uint32(d.data[off+4 : off+8])

		if tag == SequenceDelimitationTag {
			if !seq.UndefinedLength {
				return nil, off, dcmerrors.NewDecodeError(off, "sequence delimitation item in defined length sequence")
			}
			return seq, off + 8, nil
		}
		if tag != ItemTag {
			return nil, off, dcmerrors.NewDecodeError(off, "expected item tag, found %s", tag)
		}

		var item *Dataset
		var err error
		if itemLength == undefinedLength {
			item, off, err = d.dataset(off+8, seqEnd, depth, true)
		} else {
			itemEnd := off + 8 + int(itemLength)
			if itemEnd > seqEnd || itemEnd < off {
				return nil, off, dcmerrors.NewDecodeError(off, "item length %d exceeds sequence", itemLength)
			}
			item, _, err = d.dataset(off+8, itemEnd, depth, false)
			off = itemEnd
		}
		if err != nil {
			return nil, off, err
		}
		seq.Items = append(seq.Items, item)
	}

	if seq.UndefinedLength {
		return nil, off, dcmerrors.NewDecodeError(off, "sequence not terminated by sequence delimitation item")
	}
	return seq, off, nil
}

// parseElementValue converts raw value bytes according to the VR. Character
// values lose their padding; binary values are copied as-is.
func parseElementValue(vr string, data []byte) interface{} {
	if !types.IsTextVR(vr) {
		return slices.Clone(data)
	}

	value := string(data)
	switch vr {
	case types.VR_LT, types.VR_ST, types.VR_UT, types.VR_UC:
		// Leading spaces are significant for text VRs
		return strings.TrimRight(value, "\x00 ")
	default:
		return strings.TrimSpace(strings.TrimRight(value, "\x00"))
	}
}
