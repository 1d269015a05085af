package dicom

import (
	"fmt"

	"github.com/caio-sobreiro/srassess/types"
)

// Tag represents a DICOM tag (group, element)
type Tag struct {
	Group   uint16
	Element uint16
}

// String returns the tag as a string in (GGGG,EEEE) format
func (t Tag) String() string {
	return fmt.Sprintf("(%04x,%04x)", t.Group, t.Element)
}

// Compare orders tags by group, then element.
func (t Tag) Compare(other Tag) int {
	switch {
	case t.Group < other.Group:
		return -1
	case t.Group > other.Group:
		return 1
	case t.Element < other.Element:
		return -1
	case t.Element > other.Element:
		return 1
	}
	return 0
}

// IsPrivate returns true if this is a private tag (odd group number)
func (t Tag) IsPrivate() bool {
	return t.Group%2 == 1
}

// IsFileMeta returns true if this tag is in the File Meta Information group
func (t Tag) IsFileMeta() bool {
	return t.Group == 0x0002
}

// Item and delimiter tags. These carry no VR in either VR encoding.
var (
	ItemTag                 = Tag{0xFFFE, 0xE000}
	ItemDelimitationItem    = Tag{0xFFFE, 0xE00D}
	SequenceDelimitationTag = Tag{0xFFFE, 0xE0DD}
)

// File Meta Information (Group 0002)
var (
	FileMetaInformationGroupLength = Tag{0x0002, 0x0000}
	FileMetaInformationVersion     = Tag{0x0002, 0x0001}
	MediaStorageSOPClassUID        = Tag{0x0002, 0x0002}
	MediaStorageSOPInstanceUID     = Tag{0x0002, 0x0003}
	TransferSyntaxUID              = Tag{0x0002, 0x0010}
	ImplementationClassUID         = Tag{0x0002, 0x0012}
	ImplementationVersionName      = Tag{0x0002, 0x0013}
	SourceApplicationEntityTitle   = Tag{0x0002, 0x0016}
)

// SOP Common, General Study/Series and Patient modules
var (
	SpecificCharacterSet  = Tag{0x0008, 0x0005}
	InstanceCreationDate  = Tag{0x0008, 0x0012}
	InstanceCreationTime  = Tag{0x0008, 0x0013}
	SOPClassUID           = Tag{0x0008, 0x0016}
	SOPInstanceUID        = Tag{0x0008, 0x0018}
	StudyDate             = Tag{0x0008, 0x0020}
	ContentDate           = Tag{0x0008, 0x0023}
	StudyTime             = Tag{0x0008, 0x0030}
	ContentTime           = Tag{0x0008, 0x0033}
	AccessionNumber       = Tag{0x0008, 0x0050}
	Modality              = Tag{0x0008, 0x0060}
	Manufacturer          = Tag{0x0008, 0x0070}
	InstitutionName       = Tag{0x0008, 0x0080}
	ReferringPhysician    = Tag{0x0008, 0x0090}
	TimezoneOffsetFromUTC = Tag{0x0008, 0x0201}
	StudyDescription      = Tag{0x0008, 0x1030}
	SeriesDescription     = Tag{0x0008, 0x103E}
	ManufacturerModelName = Tag{0x0008, 0x1090}
	PatientName           = Tag{0x0010, 0x0010}
	PatientID             = Tag{0x0010, 0x0020}
	PatientBirthDate      = Tag{0x0010, 0x0030}
	PatientSex            = Tag{0x0010, 0x0040}
	DeviceSerialNumber    = Tag{0x0018, 0x1000}
	SoftwareVersions      = Tag{0x0018, 0x1020}
	StudyInstanceUID      = Tag{0x0020, 0x000D}
	SeriesInstanceUID     = Tag{0x0020, 0x000E}
	StudyID               = Tag{0x0020, 0x0010}
	SeriesNumber          = Tag{0x0020, 0x0011}
	InstanceNumber        = Tag{0x0020, 0x0013}
	FrameOfReferenceUID   = Tag{0x0020, 0x0052}
)

// Code Sequence Macro
var (
	CodeValue              = Tag{0x0008, 0x0100}
	CodingSchemeDesignator = Tag{0x0008, 0x0102}
	CodingSchemeVersion    = Tag{0x0008, 0x0103}
	CodeMeaning            = Tag{0x0008, 0x0104}
	MappingResource        = Tag{0x0008, 0x0105}
	LongCodeValue          = Tag{0x0008, 0x0119}
	URNCodeValue           = Tag{0x0008, 0x0120}
)

// Referenced instances and contributing equipment
var (
	ReferencedSeriesSequence       = Tag{0x0008, 0x1115}
	ReferencedImageSequence        = Tag{0x0008, 0x1140}
	ReferencedInstanceSequence     = Tag{0x0008, 0x114A}
	ReferencedSOPClassUID          = Tag{0x0008, 0x1150}
	ReferencedSOPInstanceUID       = Tag{0x0008, 0x1155}
	ReferencedFrameNumber          = Tag{0x0008, 0x1160}
	ReferencedSOPSequence          = Tag{0x0008, 0x1199}
	ReferencedSegmentNumber        = Tag{0x0062, 0x000B}
	ContributingEquipmentSequence  = Tag{0x0018, 0xA001}
	ContributionDateTime           = Tag{0x0018, 0xA002}
	ContributionDescription        = Tag{0x0018, 0xA003}
	PurposeOfReferenceCodeSequence = Tag{0x0040, 0xA170}
	ReferencedFrameOfReferenceUID  = Tag{0x3006, 0x0024}
)

// SR Document General and SR Document Content modules
var (
	RelationshipType                          = Tag{0x0040, 0xA010}
	VerifyingOrganization                     = Tag{0x0040, 0xA027}
	VerificationDateTime                      = Tag{0x0040, 0xA030}
	ObservationDateTime                       = Tag{0x0040, 0xA032}
	ValueType                                 = Tag{0x0040, 0xA040}
	ConceptNameCodeSequence                   = Tag{0x0040, 0xA043}
	ContinuityOfContent                       = Tag{0x0040, 0xA050}
	VerifyingObserverSequence                 = Tag{0x0040, 0xA073}
	VerifyingObserverName                     = Tag{0x0040, 0xA075}
	AuthorObserverSequence                    = Tag{0x0040, 0xA078}
	ParticipantSequence                       = Tag{0x0040, 0xA07A}
	CustodialOrganizationSequence             = Tag{0x0040, 0xA07C}
	VerifyingObserverIdentificationCodeSeq    = Tag{0x0040, 0xA088}
	DateTime                                  = Tag{0x0040, 0xA120}
	Date                                      = Tag{0x0040, 0xA121}
	Time                                      = Tag{0x0040, 0xA122}
	PersonName                                = Tag{0x0040, 0xA123}
	UID                                       = Tag{0x0040, 0xA124}
	TemporalRangeType                         = Tag{0x0040, 0xA130}
	ReferencedDateTime                        = Tag{0x0040, 0xA13A}
	TextValue                                 = Tag{0x0040, 0xA160}
	FloatingPointValue                        = Tag{0x0040, 0xA161}
	ConceptCodeSequence                       = Tag{0x0040, 0xA168}
	ObservationUID                            = Tag{0x0040, 0xA171}
	AnnotationGroupNumber                     = Tag{0x0040, 0xA180}
	ModifierCodeSequence                      = Tag{0x0040, 0xA195}
	MeasuredValueSequence                     = Tag{0x0040, 0xA300}
	NumericValueQualifierCodeSequence         = Tag{0x0040, 0xA301}
	NumericValue                              = Tag{0x0040, 0xA30A}
	PredecessorDocumentsSequence              = Tag{0x0040, 0xA360}
	ReferencedRequestSequence                 = Tag{0x0040, 0xA370}
	PerformedProcedureCodeSequence            = Tag{0x0040, 0xA372}
	CurrentRequestedProcedureEvidenceSequence = Tag{0x0040, 0xA375}
	PertinentOtherEvidenceSequence            = Tag{0x0040, 0xA385}
	CompletionFlag                            = Tag{0x0040, 0xA491}
	CompletionFlagDescription                 = Tag{0x0040, 0xA492}
	VerificationFlag                          = Tag{0x0040, 0xA493}
	ContentTemplateSequence                   = Tag{0x0040, 0xA504}
	IdenticalDocumentsSequence                = Tag{0x0040, 0xA525}
	ContentSequence                           = Tag{0x0040, 0xA730}
	MeasurementUnitsCodeSequence              = Tag{0x0040, 0x08EA}
	TemplateIdentifier                        = Tag{0x0040, 0xDB00}
	GraphicData                               = Tag{0x0070, 0x0022}
	GraphicType                               = Tag{0x0070, 0x0023}
	ReferencedWaveformChannels                = Tag{0x0040, 0xA0B0}
	ReferencedSamplePositions                 = Tag{0x0040, 0xA132}
	ReferencedTimeOffsets                     = Tag{0x0040, 0xA138}
	ProcedureCodeSequence                     = Tag{0x0008, 0x1032}
	ReferencedPerformedProcedureStepSequence  = Tag{0x0008, 0x1111}
	ReferringPhysicianIdentificationSequence  = Tag{0x0008, 0x0096}
	RequestAttributesSequence                 = Tag{0x0040, 0x0275}
	ContentItemModifierSequence               = Tag{0x0040, 0x0441}
	StudiesContainingOtherReferencedInstances = Tag{0x0008, 0x1200}
	RequestedProcedureID                      = Tag{0x0040, 0x1001}
	RequestedProcedureDescription             = Tag{0x0032, 0x1060}
)

type tagInfo struct {
	Name string
	VR   string
}

// dictionary maps the tags this package knows to their keyword and VR. It
// is consulted when decoding Implicit VR datasets and when naming tags in
// error messages.
var dictionary = map[Tag]tagInfo{
	FileMetaInformationGroupLength: {"FileMetaInformationGroupLength", types.VR_UL},
	FileMetaInformationVersion:     {"FileMetaInformationVersion", types.VR_OB},
	MediaStorageSOPClassUID:        {"MediaStorageSOPClassUID", types.VR_UI},
	MediaStorageSOPInstanceUID:     {"MediaStorageSOPInstanceUID", types.VR_UI},
	TransferSyntaxUID:              {"TransferSyntaxUID", types.VR_UI},
	ImplementationClassUID:         {"ImplementationClassUID", types.VR_UI},
	ImplementationVersionName:      {"ImplementationVersionName", types.VR_SH},
	SourceApplicationEntityTitle:   {"SourceApplicationEntityTitle", types.VR_AE},

	SpecificCharacterSet:  {"SpecificCharacterSet", types.VR_CS},
	InstanceCreationDate:  {"InstanceCreationDate", types.VR_DA},
	InstanceCreationTime:  {"InstanceCreationTime", types.VR_TM},
	SOPClassUID:           {"SOPClassUID", types.VR_UI},
	SOPInstanceUID:        {"SOPInstanceUID", types.VR_UI},
	StudyDate:             {"StudyDate", types.VR_DA},
	ContentDate:           {"ContentDate", types.VR_DA},
	StudyTime:             {"StudyTime", types.VR_TM},
	ContentTime:           {"ContentTime", types.VR_TM},
	AccessionNumber:       {"AccessionNumber", types.VR_SH},
	Modality:              {"Modality", types.VR_CS},
	Manufacturer:          {"Manufacturer", types.VR_LO},
	InstitutionName:       {"InstitutionName", types.VR_LO},
	ReferringPhysician:    {"ReferringPhysicianName", types.VR_PN},
	TimezoneOffsetFromUTC: {"TimezoneOffsetFromUTC", types.VR_SH},
	StudyDescription:      {"StudyDescription", types.VR_LO},
	SeriesDescription:     {"SeriesDescription", types.VR_LO},
	ManufacturerModelName: {"ManufacturerModelName", types.VR_LO},
	PatientName:           {"PatientName", types.VR_PN},
	PatientID:             {"PatientID", types.VR_LO},
	PatientBirthDate:      {"PatientBirthDate", types.VR_DA},
	PatientSex:            {"PatientSex", types.VR_CS},
	DeviceSerialNumber:    {"DeviceSerialNumber", types.VR_LO},
	SoftwareVersions:      {"SoftwareVersions", types.VR_LO},
	StudyInstanceUID:      {"StudyInstanceUID", types.VR_UI},
	SeriesInstanceUID:     {"SeriesInstanceUID", types.VR_UI},
	StudyID:               {"StudyID", types.VR_SH},
	SeriesNumber:          {"SeriesNumber", types.VR_IS},
	InstanceNumber:        {"InstanceNumber", types.VR_IS},
	FrameOfReferenceUID:   {"FrameOfReferenceUID", types.VR_UI},

	CodeValue:              {"CodeValue", types.VR_SH},
	CodingSchemeDesignator: {"CodingSchemeDesignator", types.VR_SH},
	CodingSchemeVersion:    {"CodingSchemeVersion", types.VR_SH},
	CodeMeaning:            {"CodeMeaning", types.VR_LO},
	MappingResource:        {"MappingResource", types.VR_CS},
	LongCodeValue:          {"LongCodeValue", types.VR_UC},
	URNCodeValue:           {"URNCodeValue", types.VR_UR},

	ReferencedSeriesSequence:       {"ReferencedSeriesSequence", types.VR_SQ},
	ReferencedImageSequence:        {"ReferencedImageSequence", types.VR_SQ},
	ReferencedInstanceSequence:     {"ReferencedInstanceSequence", types.VR_SQ},
	ReferencedSOPClassUID:          {"ReferencedSOPClassUID", types.VR_UI},
	ReferencedSOPInstanceUID:       {"ReferencedSOPInstanceUID", types.VR_UI},
	ReferencedFrameNumber:          {"ReferencedFrameNumber", types.VR_IS},
	ReferencedSOPSequence:          {"ReferencedSOPSequence", types.VR_SQ},
	ReferencedSegmentNumber:        {"ReferencedSegmentNumber", types.VR_US},
	ContributingEquipmentSequence:  {"ContributingEquipmentSequence", types.VR_SQ},
	ContributionDateTime:           {"ContributionDateTime", types.VR_DT},
	ContributionDescription:        {"ContributionDescription", types.VR_ST},
	PurposeOfReferenceCodeSequence: {"PurposeOfReferenceCodeSequence", types.VR_SQ},
	ReferencedFrameOfReferenceUID:  {"ReferencedFrameOfReferenceUID", types.VR_UI},

	RelationshipType:                       {"RelationshipType", types.VR_CS},
	VerifyingOrganization:                  {"VerifyingOrganization", types.VR_LO},
	VerificationDateTime:                   {"VerificationDateTime", types.VR_DT},
	ObservationDateTime:                    {"ObservationDateTime", types.VR_DT},
	ValueType:                              {"ValueType", types.VR_CS},
	ConceptNameCodeSequence:                {"ConceptNameCodeSequence", types.VR_SQ},
	ContinuityOfContent:                    {"ContinuityOfContent", types.VR_CS},
	VerifyingObserverSequence:              {"VerifyingObserverSequence", types.VR_SQ},
	VerifyingObserverName:                  {"VerifyingObserverName", types.VR_PN},
	AuthorObserverSequence:                 {"AuthorObserverSequence", types.VR_SQ},
	ParticipantSequence:                    {"ParticipantSequence", types.VR_SQ},
	CustodialOrganizationSequence:          {"CustodialOrganizationSequence", types.VR_SQ},
	VerifyingObserverIdentificationCodeSeq: {"VerifyingObserverIdentificationCodeSequence", types.VR_SQ},
	DateTime:                               {"DateTime", types.VR_DT},
	Date:                                   {"Date", types.VR_DA},
	Time:                                   {"Time", types.VR_TM},
	PersonName:                             {"PersonName", types.VR_PN},
	UID:                                    {"UID", types.VR_UI},
	TemporalRangeType:                      {"TemporalRangeType", types.VR_CS},
	ReferencedDateTime:                     {"ReferencedDateTime", types.VR_DT},
	TextValue:                              {"TextValue", types.VR_UT},
	FloatingPointValue:                     {"FloatingPointValue", types.VR_FD},
	ConceptCodeSequence:                    {"ConceptCodeSequence", types.VR_SQ},
	ObservationUID:                         {"ObservationUID", types.VR_UI},
	AnnotationGroupNumber:                  {"AnnotationGroupNumber", types.VR_US},
	ModifierCodeSequence:                   {"ModifierCodeSequence", types.VR_SQ},
	MeasuredValueSequence:                  {"MeasuredValueSequence", types.VR_SQ},
	NumericValueQualifierCodeSequence:      {"NumericValueQualifierCodeSequence", types.VR_SQ},
	NumericValue:                           {"NumericValue", types.VR_DS},
	PredecessorDocumentsSequence:           {"PredecessorDocumentsSequence", types.VR_SQ},
	ReferencedRequestSequence:              {"ReferencedRequestSequence", types.VR_SQ},
	PerformedProcedureCodeSequence:         {"PerformedProcedureCodeSequence", types.VR_SQ},
	CurrentRequestedProcedureEvidenceSequence: {"CurrentRequestedProcedureEvidenceSequence", types.VR_SQ},
	PertinentOtherEvidenceSequence:            {"PertinentOtherEvidenceSequence", types.VR_SQ},
	CompletionFlag:                            {"CompletionFlag", types.VR_CS},
	CompletionFlagDescription:                 {"CompletionFlagDescription", types.VR_LO},
	VerificationFlag:                          {"VerificationFlag", types.VR_CS},
	ContentTemplateSequence:                   {"ContentTemplateSequence", types.VR_SQ},
	IdenticalDocumentsSequence:                {"IdenticalDocumentsSequence", types.VR_SQ},
	ContentSequence:                           {"ContentSequence", types.VR_SQ},
	MeasurementUnitsCodeSequence:              {"MeasurementUnitsCodeSequence", types.VR_SQ},
	TemplateIdentifier:                        {"TemplateIdentifier", types.VR_CS},
	GraphicData:                               {"GraphicData", types.VR_FL},
	GraphicType:                               {"GraphicType", types.VR_CS},
	ReferencedWaveformChannels:                {"ReferencedWaveformChannels", types.VR_US},
	ReferencedSamplePositions:                 {"ReferencedSamplePositions", types.VR_UL},
	ReferencedTimeOffsets:                     {"ReferencedTimeOffsets", types.VR_DS},
	ProcedureCodeSequence:                     {"ProcedureCodeSequence", types.VR_SQ},
	ReferencedPerformedProcedureStepSequence:  {"ReferencedPerformedProcedureStepSequence", types.VR_SQ},
	ReferringPhysicianIdentificationSequence:  {"ReferringPhysicianIdentificationSequence", types.VR_SQ},
	RequestAttributesSequence:                 {"RequestAttributesSequence", types.VR_SQ},
	ContentItemModifierSequence:               {"ContentItemModifierSequence", types.VR_SQ},
	StudiesContainingOtherReferencedInstances: {"StudiesContainingOtherReferencedInstancesSequence", types.VR_SQ},
	RequestedProcedureID:                      {"RequestedProcedureID", types.VR_SH},
	RequestedProcedureDescription:             {"RequestedProcedureDescription", types.VR_LO},
}

// TagName returns the keyword of a known tag, or its (gggg,eeee) form.
func TagName(t Tag) string {
	if info, ok := dictionary[t]; ok {
		return info.Name
	}
	return t.String()
}

// LookupVR returns the dictionary VR of a tag. Group length elements are
// UL; anything else not in the dictionary is UN.
func LookupVR(t Tag) string {
	if info, ok := dictionary[t]; ok {
		return info.VR
	}
	if t.Element == 0x0000 {
		return types.VR_UL
	}
	return types.VR_UN
}
