package sr

import (
	"fmt"

	"github.com/caio-sobreiro/srassess/dicom"
	"github.com/caio-sobreiro/srassess/types"
)

var (
	findingConcept   = NewCodedConcept("125007", "DCM", "Measurement Group")
	trackingConcept  = NewCodedConcept("112039", "DCM", "Tracking Identifier")
	diameterConcept  = NewCodedConcept("81827009", "SCT", "Diameter")
	findingSiteName  = NewCodedConcept("363698007", "SCT", "Finding Site")
	lungConcept      = NewCodedConcept("39607008", "SCT", "Lung")
	millimetre       = NewCodedConcept("mm", "UCUM", "mm")
	anchorConcept    = NewCodedConcept("126010", "DCM", AnchorMeaning)
	languageConcept  = NewCodedConcept("121049", "DCM", "Language of Content Item and Descendants")
	englishConcept   = NewCodedConcept("eng", "RFC5646", "English")
	reportTitle      = NewCodedConcept("126000", "DCM", "Imaging Measurement Report")
	observerTypeName = NewCodedConcept("121005", "DCM", "Observer Type")
)

// measurementGroup builds finding n: a tracking identifier and a diameter,
// each with its own observation UID.
func measurementGroup(n int) *ContentItem {
	tracking := NewItem(HasObsContext, trackingConcept, Text{Text: fmt.Sprintf("Lesion %d", n)})
	tracking.ObservationUID = fmt.Sprintf("1.2.826.0.1.3680043.10.1.%d.1", n)

	diameter := NewItem(Contains, diameterConcept, Num{Value: fmt.Sprintf("%d.5", n+10), Unit: millimetre})
	diameter.ObservationUID = fmt.Sprintf("1.2.826.0.1.3680043.10.1.%d.2", n)

	site := NewItem(HasConceptMod, findingSiteName, Code{Code: lungConcept})

	return NewItem(Contains, findingConcept, Container{ContinuityOfContent: "SEPARATE"}, tracking, diameter, site)
}

// measurementReport builds an imaging measurement report with a language
// item, an observer context and an anchor holding the given number of
// findings.
func measurementReport(findings int) *Document {
	header := dicom.NewDataset()
	header.SetString(dicom.SOPClassUID, types.ComprehensiveSRStorage)
	header.SetString(dicom.SOPInstanceUID, "1.2.826.0.1.3680043.10.1")
	header.SetString(dicom.StudyInstanceUID, "1.2.826.0.1.3680043.10.2")
	header.SetString(dicom.SeriesInstanceUID, "1.2.826.0.1.3680043.10.3")
	header.SetString(dicom.PatientName, "Doe^Jane")
	header.SetString(dicom.PatientID, "PAT-001")
	header.SetString(dicom.Modality, "SR")
	header.SetString(dicom.ValueType, string(ValueTypeContainer))
	header.SetString(dicom.ContinuityOfContent, "SEPARATE")

	groups := make([]*ContentItem, findings)
	for i := range groups {
		groups[i] = measurementGroup(i)
	}

	title := reportTitle
	return &Document{
		Header: header,
		Title:  &title,
		Content: []*ContentItem{
			NewItem(HasConceptMod, languageConcept, Code{Code: englishConcept}),
			NewItem(HasObsContext, observerTypeName, Text{Text: "Device"}),
			NewItem(Contains, anchorConcept, Container{ContinuityOfContent: "SEPARATE"}, groups...),
		},
	}
}

// meanings lists the concept meanings of items.
func meanings(items []*ContentItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Meaning()
	}
	return out
}
