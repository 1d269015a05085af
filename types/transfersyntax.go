package types

// DICOM Transfer Syntax UIDs as defined in DICOM Part 5, Section 8 and Part 6, Annex A.4
// https://dicom.nema.org/medical/dicom/current/output/chtml/part05/chapter_8.html

// Uncompressed Transfer Syntaxes
const (
	// ImplicitVRLittleEndian - Default Transfer Syntax for DICOM
	// Uses implicit VR encoding with little endian byte ordering
	ImplicitVRLittleEndian = "1.2.840.10008.1.2"

	// ExplicitVRLittleEndian - Explicit VR with little endian byte ordering
	// Recommended for general use due to explicit data types
	ExplicitVRLittleEndian = "1.2.840.10008.1.2.1"

	// ExplicitVRBigEndian - Explicit VR with big endian byte ordering (retired)
	ExplicitVRBigEndian = "1.2.840.10008.1.2.2"

	// DeflatedExplicitVRLittleEndian - Deflate compression with explicit VR
	DeflatedExplicitVRLittleEndian = "1.2.840.10008.1.2.1.99"
)

// Compressed pixel data Transfer Syntaxes. SR documents carry no pixel data,
// but files are sometimes written with these when copied from image series.
const (
	JPEGBaseline8Bit = "1.2.840.10008.1.2.4.50"
	JPEGLosslessSV1  = "1.2.840.10008.1.2.4.70"
	JPEG2000Lossless = "1.2.840.10008.1.2.4.90"
	JPEG2000         = "1.2.840.10008.1.2.4.91"
	RLELossless      = "1.2.840.10008.1.2.5"
)

// TransferSyntaxInfo provides metadata about a transfer syntax
type TransferSyntaxInfo struct {
	UID          string
	Name         string
	ExplicitVR   bool
	BigEndian    bool
	IsCompressed bool
	IsRetired    bool
	Description  string
}

// GetTransferSyntaxInfo returns information about a transfer syntax UID
func GetTransferSyntaxInfo(uid string) *TransferSyntaxInfo {
	info, ok := transferSyntaxRegistry[uid]
	if !ok {
		return &TransferSyntaxInfo{
			UID:         uid,
			Name:        "Unknown",
			ExplicitVR:  true,
			Description: "Unknown transfer syntax",
		}
	}
	return &info
}

// IsCompressed returns true if the transfer syntax uses compression
func IsCompressed(uid string) bool {
	return GetTransferSyntaxInfo(uid).IsCompressed
}

// IsRetired returns true if the transfer syntax is retired
func IsRetired(uid string) bool {
	return GetTransferSyntaxInfo(uid).IsRetired
}

// IsExplicitVR returns true if datasets in this transfer syntax carry the VR
// in each element header.
func IsExplicitVR(uid string) bool {
	return GetTransferSyntaxInfo(uid).ExplicitVR
}

// HasNativeDatasetEncoding reports whether the dataset (as opposed to pixel
// data) of this transfer syntax is plain little endian and can be decoded
// without inflating or byte swapping.
func HasNativeDatasetEncoding(uid string) bool {
	info, ok := transferSyntaxRegistry[uid]
	if !ok {
		return false
	}
	return !info.BigEndian && uid != DeflatedExplicitVRLittleEndian
}

// transferSyntaxRegistry maps transfer syntax UIDs to their information
var transferSyntaxRegistry = map[string]TransferSyntaxInfo{
	ImplicitVRLittleEndian: {
		UID:         ImplicitVRLittleEndian,
		Name:        "Implicit VR Little Endian",
		Description: "Default DICOM transfer syntax with implicit VR encoding",
	},
	ExplicitVRLittleEndian: {
		UID:         ExplicitVRLittleEndian,
		Name:        "Explicit VR Little Endian",
		ExplicitVR:  true,
		Description: "Explicit VR encoding with little endian byte order",
	},
	ExplicitVRBigEndian: {
		UID:         ExplicitVRBigEndian,
		Name:        "Explicit VR Big Endian",
		ExplicitVR:  true,
		BigEndian:   true,
		IsRetired:   true,
		Description: "Explicit VR encoding with big endian byte order (retired)",
	},
	DeflatedExplicitVRLittleEndian: {
		UID:          DeflatedExplicitVRLittleEndian,
		Name:         "Deflated Explicit VR Little Endian",
		ExplicitVR:   true,
		IsCompressed: true,
		Description:  "Deflate/zlib compression with explicit VR encoding",
	},
	JPEGBaseline8Bit: {
		UID:          JPEGBaseline8Bit,
		Name:         "JPEG Baseline (Process 1)",
		ExplicitVR:   true,
		IsCompressed: true,
		Description:  "JPEG lossy compression, 8-bit samples",
	},
	JPEGLosslessSV1: {
		UID:          JPEGLosslessSV1,
		Name:         "JPEG Lossless, Non-Hierarchical, First-Order Prediction",
		ExplicitVR:   true,
		IsCompressed: true,
		Description:  "JPEG lossless compression, selection value 1",
	},
	JPEG2000Lossless: {
		UID:          JPEG2000Lossless,
		Name:         "JPEG 2000 Image Compression (Lossless Only)",
		ExplicitVR:   true,
		IsCompressed: true,
		Description:  "JPEG 2000 lossless compression",
	},
	JPEG2000: {
		UID:          JPEG2000,
		Name:         "JPEG 2000 Image Compression",
		ExplicitVR:   true,
		IsCompressed: true,
		Description:  "JPEG 2000 lossy or lossless compression",
	},
	RLELossless: {
		UID:          RLELossless,
		Name:         "RLE Lossless",
		ExplicitVR:   true,
		IsCompressed: true,
		Description:  "Run-length encoding lossless compression",
	},
}
