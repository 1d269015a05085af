package dicom

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dcmerrors "github.com/caio-sobreiro/srassess/errors"
	"github.com/caio-sobreiro/srassess/types"
)

// createValidPart10File creates a minimal valid DICOM Part 10 file for testing
func createValidPart10File(ts string) []byte {
	var data []byte

	// 128-byte preamble (all zeros)
	data = append(data, make([]byte, 128)...)

	// DICM prefix
	data = append(data, []byte("DICM")...)

	// Transfer Syntax UID (0002,0010) - using short VR format
	data = append(data, 0x02, 0x00, 0x10, 0x00) // Tag
	data = append(data, 'U', 'I')               // VR
	tsUID := ts
	if len(tsUID)%2 == 1 {
		tsUID += "\x00"
	}
	data = binary.LittleEndian.AppendUint16(data, uint16(len(tsUID)))
	data = append(data, []byte(tsUID)...)

	// Dataset starts here (group > 0x0002)
	patientName := "TEST^PATIENT"
	data = append(data, 0x10, 0x00, 0x10, 0x00) // Patient Name (0010,0010)
	if ts == types.ImplicitVRLittleEndian {
		data = binary.LittleEndian.AppendUint32(data, uint32(len(patientName)))
	} else {
		data = append(data, 'P', 'N')
		data = binary.LittleEndian.AppendUint16(data, uint16(len(patientName)))
	}
	data = append(data, []byte(patientName)...)

	return data
}

func TestStripPart10Header_ValidFile(t *testing.T) {
	data := createValidPart10File(types.ExplicitVRLittleEndian)

	meta, dataset, err := StripPart10Header(data)
	require.NoError(t, err)

	assert.Equal(t, types.ExplicitVRLittleEndian, meta.GetString(TransferSyntaxUID))
	// Dataset should start with Patient Name tag (0010,0010)
	require.GreaterOrEqual(t, len(dataset), 4)
	assert.Equal(t, []byte{0x10, 0x00, 0x10, 0x00}, dataset[0:4])
}

func TestStripPart10Header_TooShort(t *testing.T) {
	_, _, err := StripPart10Header([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
	assert.ErrorIs(t, err, dcmerrors.ErrNotPart10)
	assert.Contains(t, err.Error(), "too short")
}

func TestStripPart10Header_MissingDICM(t *testing.T) {
	_, _, err := StripPart10Header(make([]byte, 200))
	require.Error(t, err)
	assert.ErrorIs(t, err, dcmerrors.ErrNotPart10)
	assert.Contains(t, err.Error(), "DICM")
}

func TestHasPart10Header(t *testing.T) {
	assert.True(t, HasPart10Header(createValidPart10File(types.ExplicitVRLittleEndian)))
	assert.False(t, HasPart10Header(make([]byte, 200)))
	assert.False(t, HasPart10Header([]byte("DICM")))
}

func TestParsePart10(t *testing.T) {
	for _, ts := range []string{types.ExplicitVRLittleEndian, types.ImplicitVRLittleEndian} {
		t.Run(types.GetTransferSyntaxInfo(ts).Name, func(t *testing.T) {
			file, err := ParsePart10(createValidPart10File(ts))
			require.NoError(t, err)

			assert.Equal(t, ts, file.TransferSyntaxUID)
			assert.Equal(t, "TEST^PATIENT", file.Dataset.GetString(PatientName))
		})
	}
}

func TestParsePart10_UnsupportedTransferSyntax(t *testing.T) {
	_, err := ParsePart10(createValidPart10File(types.DeflatedExplicitVRLittleEndian))
	assert.ErrorIs(t, err, dcmerrors.ErrUnsupportedTransfer)

	_, err = ParsePart10(createValidPart10File(types.ExplicitVRBigEndian))
	assert.ErrorIs(t, err, dcmerrors.ErrUnsupportedTransfer)
}

func TestParsePart10_MissingTransferSyntax(t *testing.T) {
	data := append(make([]byte, 128), []byte("DICM")...)
	data = append(data, 0x10, 0x00, 0x10, 0x00, 'P', 'N', 0x02, 0x00, 'A', 'B')

	_, err := ParsePart10(data)
	assert.ErrorIs(t, err, dcmerrors.ErrMissingAttribute)
}

func TestEncodePart10_RoundTrip(t *testing.T) {
	ds := nestedTree()
	ds.AddElement(TransferSyntaxUID, types.VR_UI, types.ImplicitVRLittleEndian) // stale meta is ignored

	data, err := EncodePart10(ds)
	require.NoError(t, err)
	require.True(t, HasPart10Header(data))

	file, err := ParsePart10(data)
	require.NoError(t, err)

	assert.Equal(t, types.ExplicitVRLittleEndian, file.TransferSyntaxUID)
	assert.Equal(t, types.ComprehensiveSRStorage, file.Meta.GetString(MediaStorageSOPClassUID))
	assert.Equal(t, "1.2.3.4.5", file.Meta.GetString(MediaStorageSOPInstanceUID))
	assert.Equal(t, ImplementationClassUIDValue, file.Meta.GetString(ImplementationClassUID))
	assert.False(t, file.Dataset.Has(TransferSyntaxUID))

	ds.Remove(TransferSyntaxUID)
	assert.True(t, ds.Equal(file.Dataset))

	length, ok := file.Meta.GetElement(FileMetaInformationGroupLength)
	require.True(t, ok)
	metaBytes, err := func() ([]byte, error) {
		meta := file.Meta.Clone()
		meta.Remove(FileMetaInformationGroupLength)
		return meta.EncodeDataset()
	}()
	require.NoError(t, err)
	assert.Equal(t, uint32(len(metaBytes)), binary.LittleEndian.Uint32(length.Value.([]byte)))
}

func TestEncodePart10_MissingIdentity(t *testing.T) {
	ds := NewDataset()
	_, err := EncodePart10(ds)
	assert.ErrorIs(t, err, dcmerrors.ErrMissingAttribute)

	ds.SetString(SOPClassUID, types.ComprehensiveSRStorage)
	_, err = EncodePart10(ds)
	assert.ErrorIs(t, err, dcmerrors.ErrMissingAttribute)
	assert.Contains(t, err.Error(), "SOPInstanceUID")
}
