package dicom

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strconv"
	"strings"

	dcmerrors "github.com/caio-sobreiro/srassess/errors"
	"github.com/caio-sobreiro/srassess/types"
)

type encoder struct {
	explicit bool
}

// EncodeDataset encodes a dataset to bytes (Explicit VR Little Endian)
func (d *Dataset) EncodeDataset() ([]byte, error) {
	return EncodeDatasetWithTransferSyntax(d, TransferSyntaxExplicitVRLittleEndian)
}

// EncodeDatasetWithTransferSyntax encodes a dataset using the provided transfer syntax.
func EncodeDatasetWithTransferSyntax(dataset *Dataset, transferSyntaxUID string) ([]byte, error) {
	if dataset == nil {
		return nil, nil
	}

	switch transferSyntaxUID {
	case "", TransferSyntaxExplicitVRLittleEndian:
		return (&encoder{explicit: true}).dataset(nil, dataset)
	case TransferSyntaxImplicitVRLittleEndian:
		return (&encoder{explicit: false}).dataset(nil, dataset)
	default:
		info := types.GetTransferSyntaxInfo(transferSyntaxUID)
		return nil, fmt.Errorf("%w: cannot encode %s (%s)", dcmerrors.ErrUnsupportedTransfer, info.Name, transferSyntaxUID)
	}
}

// dataset appends the elements of ds in ascending tag order.
func (e *encoder) dataset(buf []byte, ds *Dataset) ([]byte, error) {
	var err error
	for _, tag := range ds.Tags() {
		buf, err = e.element(buf, ds.Elements[tag])
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (e *encoder) element(buf []byte, element *Element) ([]byte, error) {
	vr := element.VR
	if vr == "" {
		vr = LookupVR(element.Tag)
	}

	if seq, ok := element.Value.(*Sequence); ok {
		return e.sequence(buf, element.Tag, seq)
	}
	if vr == types.VR_SQ {
		return nil, fmt.Errorf("element %s is SQ but holds %T", element.Tag, element.Value)
	}

	value, err := encodeElementValue(element)
	if err != nil {
		return nil, err
	}
	// Add padding if odd length (DICOM requires even lengths)
	if len(value)%2 == 1 {
		value = append(value, types.PaddingByte(vr))
	}

	buf = appendTag(buf, element.Tag)
	if !e.explicit {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(value)))
		return append(buf, value...), nil
	}

	buf = append(buf, vr...)
	if types.IsLongVR(vr) {
		// Long VR format: VR (2 bytes) + Reserved (2 bytes) + Length (4 bytes)
		buf = append(buf, 0x00, 0x00)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(value)))
	} else {
		if len(value) > 0xFFFF {
			return nil, fmt.Errorf("element %s value of %d bytes too long for VR %s", element.Tag, len(value), vr)
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(value)))
	}
	return append(buf, value...), nil
}

// sequence appends an SQ element. Undefined length sequences write every
// item with undefined length followed by an item delimitation item, and
// close the list with a sequence delimitation item, so a reader can find
// the end without a length field.
func (e *encoder) sequence(buf []byte, tag Tag, seq *Sequence) ([]byte, error) {
	buf = appendTag(buf, tag)
	if e.explicit {
		buf = append(buf, types.VR_SQ...)
		buf = append(buf, 0x00, 0x00)
	}

	if seq.UndefinedLength {
		buf = binary.LittleEndian.AppendUint32(buf, undefinedLength)
		var err error
		for _, item := range seq.Items {
			buf = appendTag(buf, ItemTag)
			buf = binary.LittleEndian.AppendUint32(buf, undefinedLength)
			buf, err = e.dataset(buf, item)
			if err != nil {
				return nil, err
			}
			buf = appendTag(buf, ItemDelimitationItem)
			buf = binary.LittleEndian.AppendUint32(buf, 0)
		}
		buf = appendTag(buf, SequenceDelimitationTag)
		return binary.LittleEndian.AppendUint32(buf, 0), nil
	}

	var body []byte
	for _, item := range seq.Items {
		encoded, err := e.dataset(nil, item)
		if err != nil {
			return nil, err
		}
		body = appendTag(body, ItemTag)
		body = binary.LittleEndian.AppendUint32(body, uint32(len(encoded)))
		body = append(body, encoded...)
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(body)))
	return append(buf, body...), nil
}

func appendTag(buf []byte, tag Tag) []byte {
	buf = binary.LittleEndian.AppendUint16(buf, tag.Group)
	return binary.LittleEndian.AppendUint16(buf, tag.Element)
}

// encodeElementValue encodes an element value to bytes
func encodeElementValue(element *Element) ([]byte, error) {
	switch v := element.Value.(type) {
	case nil:
		return nil, nil
	case string:
		// Remove any existing null terminators; padding is added by the caller
		return []byte(strings.TrimRight(v, "\x00")), nil
	case []string:
		joined := strings.Join(v, "\\")
		return []byte(strings.TrimRight(joined, "\x00")), nil
	case []byte:
		return slices.Clone(v), nil
	case int:
		return []byte(strconv.Itoa(v)), nil
	case uint16:
		return binary.LittleEndian.AppendUint16(nil, v), nil
	case uint32:
		return binary.LittleEndian.AppendUint32(nil, v), nil
	default:
		return nil, fmt.Errorf("element %s: unsupported value type %T", element.Tag, element.Value)
	}
}
