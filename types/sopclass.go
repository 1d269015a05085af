package types

// DICOM SOP Class UIDs as defined in DICOM Part 4, Annex B
// https://dicom.nema.org/medical/dicom/current/output/chtml/part04/sect_B.5.html

// Structured Reporting Storage SOP Classes
const (
	BasicTextSRStorage                  = "1.2.840.10008.5.1.4.1.1.88.11"
	EnhancedSRStorage                   = "1.2.840.10008.5.1.4.1.1.88.22"
	ComprehensiveSRStorage              = "1.2.840.10008.5.1.4.1.1.88.33"
	Comprehensive3DSRStorage            = "1.2.840.10008.5.1.4.1.1.88.34"
	ExtensibleSRStorage                 = "1.2.840.10008.5.1.4.1.1.88.35"
	ProcedureLogStorage                 = "1.2.840.10008.5.1.4.1.1.88.40"
	MammographyCADSRStorage             = "1.2.840.10008.5.1.4.1.1.88.50"
	KeyObjectSelectionDocumentStorage   = "1.2.840.10008.5.1.4.1.1.88.59"
	ChestCADSRStorage                   = "1.2.840.10008.5.1.4.1.1.88.65"
	XRayRadiationDoseSRStorage          = "1.2.840.10008.5.1.4.1.1.88.67"
	RadiopharmaceuticalRadiationDoseSR  = "1.2.840.10008.5.1.4.1.1.88.68"
	ColonCADSRStorage                   = "1.2.840.10008.5.1.4.1.1.88.69"
	ImplantationPlanSRStorage           = "1.2.840.10008.5.1.4.1.1.88.70"
	AcquisitionContextSRStorage         = "1.2.840.10008.5.1.4.1.1.88.71"
	SimplifiedAdultEchoSRStorage        = "1.2.840.10008.5.1.4.1.1.88.72"
	PatientRadiationDoseSRStorage       = "1.2.840.10008.5.1.4.1.1.88.73"
	PlannedImagingAgentAdministrationSR = "1.2.840.10008.5.1.4.1.1.88.74"
	PerformedImagingAgentAdministration = "1.2.840.10008.5.1.4.1.1.88.75"
)

// Image Storage SOP Classes commonly referenced from measurement reports
const (
	CTImageStorage                  = "1.2.840.10008.5.1.4.1.1.2"
	EnhancedCTImageStorage          = "1.2.840.10008.5.1.4.1.1.2.1"
	MRImageStorage                  = "1.2.840.10008.5.1.4.1.1.4"
	EnhancedMRImageStorage          = "1.2.840.10008.5.1.4.1.1.4.1"
	DigitalXRayImageStorageForPres  = "1.2.840.10008.5.1.4.1.1.1.1"
	DigitalMammographyXRayForPres   = "1.2.840.10008.5.1.4.1.1.1.2"
	SegmentationStorage             = "1.2.840.10008.5.1.4.1.1.66.4"
	SecondaryCaptureImageStorage    = "1.2.840.10008.5.1.4.1.1.7"
	PETImageStorage                 = "1.2.840.10008.5.1.4.1.1.128"
	UltrasoundImageStorage          = "1.2.840.10008.5.1.4.1.1.6.1"
	ComputedRadiographyImageStorage = "1.2.840.10008.5.1.4.1.1.1"
)

// SOP Class categories
const (
	CategoryStructuredReport = "Structured Report"
	CategoryStorage          = "Storage"
	CategoryUnknown          = "Unknown"
)

// SOPClassInfo provides human-readable information about a SOP Class UID
type SOPClassInfo struct {
	UID      string
	Name     string
	Category string
	// ContentItems reports whether instances of this class carry an SR content tree.
	ContentItems bool
}

// GetSOPClassInfo returns information about a SOP Class UID
func GetSOPClassInfo(uid string) *SOPClassInfo {
	info, ok := sopClassRegistry[uid]
	if !ok {
		return &SOPClassInfo{
			UID:      uid,
			Name:     "Unknown",
			Category: CategoryUnknown,
		}
	}
	return &info
}

// IsStructuredReportSOPClass returns true if the UID is an SR storage class
// whose instances carry a content tree.
func IsStructuredReportSOPClass(uid string) bool {
	info := GetSOPClassInfo(uid)
	return info.Category == CategoryStructuredReport && info.ContentItems
}

// IsStorageSOPClass returns true if the UID is a storage SOP class
func IsStorageSOPClass(uid string) bool {
	info := GetSOPClassInfo(uid)
	return info.Category == CategoryStorage || info.Category == CategoryStructuredReport
}

func srClass(uid, name string) SOPClassInfo {
	return SOPClassInfo{UID: uid, Name: name, Category: CategoryStructuredReport, ContentItems: true}
}

func imageClass(uid, name string) SOPClassInfo {
	return SOPClassInfo{UID: uid, Name: name, Category: CategoryStorage}
}

// sopClassRegistry maps SOP Class UIDs to their information
var sopClassRegistry = map[string]SOPClassInfo{
	BasicTextSRStorage:                  srClass(BasicTextSRStorage, "Basic Text SR Storage"),
	EnhancedSRStorage:                   srClass(EnhancedSRStorage, "Enhanced SR Storage"),
	ComprehensiveSRStorage:              srClass(ComprehensiveSRStorage, "Comprehensive SR Storage"),
	Comprehensive3DSRStorage:            srClass(Comprehensive3DSRStorage, "Comprehensive 3D SR Storage"),
	ExtensibleSRStorage:                 srClass(ExtensibleSRStorage, "Extensible SR Storage"),
	ProcedureLogStorage:                 srClass(ProcedureLogStorage, "Procedure Log Storage"),
	MammographyCADSRStorage:             srClass(MammographyCADSRStorage, "Mammography CAD SR Storage"),
	KeyObjectSelectionDocumentStorage:   srClass(KeyObjectSelectionDocumentStorage, "Key Object Selection Document Storage"),
	ChestCADSRStorage:                   srClass(ChestCADSRStorage, "Chest CAD SR Storage"),
	XRayRadiationDoseSRStorage:          srClass(XRayRadiationDoseSRStorage, "X-Ray Radiation Dose SR Storage"),
	RadiopharmaceuticalRadiationDoseSR:  srClass(RadiopharmaceuticalRadiationDoseSR, "Radiopharmaceutical Radiation Dose SR Storage"),
	ColonCADSRStorage:                   srClass(ColonCADSRStorage, "Colon CAD SR Storage"),
	ImplantationPlanSRStorage:           srClass(ImplantationPlanSRStorage, "Implantation Plan SR Storage"),
	AcquisitionContextSRStorage:         srClass(AcquisitionContextSRStorage, "Acquisition Context SR Storage"),
	SimplifiedAdultEchoSRStorage:        srClass(SimplifiedAdultEchoSRStorage, "Simplified Adult Echo SR Storage"),
	PatientRadiationDoseSRStorage:       srClass(PatientRadiationDoseSRStorage, "Patient Radiation Dose SR Storage"),
	PlannedImagingAgentAdministrationSR: srClass(PlannedImagingAgentAdministrationSR, "Planned Imaging Agent Administration SR Storage"),
	PerformedImagingAgentAdministration: srClass(PerformedImagingAgentAdministration, "Performed Imaging Agent Administration SR Storage"),

	CTImageStorage:                  imageClass(CTImageStorage, "CT Image Storage"),
	EnhancedCTImageStorage:          imageClass(EnhancedCTImageStorage, "Enhanced CT Image Storage"),
	MRImageStorage:                  imageClass(MRImageStorage, "MR Image Storage"),
	EnhancedMRImageStorage:          imageClass(EnhancedMRImageStorage, "Enhanced MR Image Storage"),
	DigitalXRayImageStorageForPres:  imageClass(DigitalXRayImageStorageForPres, "Digital X-Ray Image Storage - For Presentation"),
	DigitalMammographyXRayForPres:   imageClass(DigitalMammographyXRayForPres, "Digital Mammography X-Ray Image Storage - For Presentation"),
	SegmentationStorage:             imageClass(SegmentationStorage, "Segmentation Storage"),
	SecondaryCaptureImageStorage:    imageClass(SecondaryCaptureImageStorage, "Secondary Capture Image Storage"),
	PETImageStorage:                 imageClass(PETImageStorage, "Positron Emission Tomography Image Storage"),
	UltrasoundImageStorage:          imageClass(UltrasoundImageStorage, "Ultrasound Image Storage"),
	ComputedRadiographyImageStorage: imageClass(ComputedRadiographyImageStorage, "Computed Radiography Image Storage"),
}
