package assessment

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/caio-sobreiro/srassess/dicom"
	dcmerrors "github.com/caio-sobreiro/srassess/errors"
	"github.com/caio-sobreiro/srassess/sr"
	"github.com/caio-sobreiro/srassess/uid"
)

// Observer is recorded in the VerifyingObserverSequence.
type Observer struct {
	Name         string
	Organization string
	DateTime     string
}

// Equipment is appended to the ContributingEquipmentSequence.
type Equipment struct {
	Manufacturer         string
	Model                string
	SoftwareVersion      string
	Description          string
	ContributionDateTime string
	Institution          string
	SerialNumber         string
}

// Options configure a Synthesizer.
type Options struct {
	Observer          Observer
	Equipment         Equipment
	SeriesDescription string
	// PerObservation emits one Result Assessment per observation UID of
	// the filtered report instead of a single placeholder.
	PerObservation bool
	// Now stamps content and instance creation date and time.
	Now func() time.Time
}

// DefaultOptions returns the placeholder identity of the IHE AIR reference
// flow.
func DefaultOptions() Options {
	return Options{
		Observer: Observer{
			Name:         "Hussain^Mohannad",
			Organization: "IHE Reference Implementation",
			DateTime:     "20250204120000",
		},
		Equipment: Equipment{
			Manufacturer:         "Mohannad Hussain",
			Model:                "Python script",
			SoftwareVersion:      "0.0.1",
			Description:          "Reference IHE profile implementation",
			ContributionDateTime: "20250204120000",
		},
		SeriesDescription: "AI Result Assessment",
		Now:               time.Now,
	}
}

// Synthesizer builds approval status reports.
type Synthesizer struct {
	uids uid.Generator
	opts Options
}

// NewSynthesizer creates a Synthesizer. A nil generator uses random UUID
// derived UIDs.
func NewSynthesizer(uids uid.Generator, opts Options) *Synthesizer {
	if uids == nil {
		uids = uid.UUIDGenerator{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Synthesizer{uids: uids, opts: opts}
}

// Synthesize builds the approval status report for filtered, the result
// derived from source. The header (patient, study, ...) is taken from
// source; the report gets a new SOP instance in a new series and
// references the filtered report first and the original second. Neither
// input is modified.
func (s *Synthesizer) Synthesize(source, filtered *sr.Document) (*sr.Document, error) {
	assessed, err := reference(filtered, "filtered report")
	if err != nil {
		return nil, err
	}
	original, err := reference(source, "original report")
	if err != nil {
		return nil, err
	}

	instance, err := uid.Next(s.uids)
	if err != nil {
		return nil, err
	}
	series, err := uid.Next(s.uids)
	if err != nil {
		return nil, err
	}

	doc := sr.NewDocument(source.Header.Clone())
	doc.Reidentify(instance, series)

	header := doc.Header
	title := ApprovalStatusObject
	doc.Title = &title
	header.SetString(dicom.ValueType, string(sr.ValueTypeContainer))
	header.SetString(dicom.ContinuityOfContent, "SEPARATE")
	header.Remove(dicom.ContentTemplateSequence)

	header.SetSequence(dicom.ReferencedInstanceSequence, dicom.NewSequence(
		referencedInstance(assessed, AssessedAIResultObject),
		referencedInstance(original, OriginalAIResultObject),
	))

	header.SetString(dicom.VerificationFlag, "UNVERIFIED")
	header.SetSequence(dicom.VerifyingObserverSequence, dicom.NewSequence(s.verifyingObserver()))
	header.SetString(dicom.CompletionFlag, "PARTIAL")

	equipment := dicom.NewSequence()
	if existing, ok := header.GetSequence(dicom.ContributingEquipmentSequence); ok {
		equipment.Items = append(equipment.Items, existing.Items...)
	}
	equipment.Items = append(equipment.Items, s.contributingEquipment())
	header.SetSequence(dicom.ContributingEquipmentSequence, equipment)

	now := s.opts.Now()
	header.SetString(dicom.ContentDate, now.Format("20060102"))
	header.SetString(dicom.ContentTime, now.Format("150405"))
	header.SetString(dicom.InstanceCreationDate, now.Format("20060102"))
	header.SetString(dicom.InstanceCreationTime, now.Format("150405"))
	header.SetString(dicom.InstanceNumber, "1")
	if s.opts.SeriesDescription != "" {
		header.SetString(dicom.SeriesDescription, s.opts.SeriesDescription)
	}

	doc.Content, err = s.content(assessed, filtered.ObservationUIDs())
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("sop_instance_uid", doc.SOPInstanceUID()).
		Str("series_instance_uid", doc.SeriesInstanceUID()).
		Str("study_instance_uid", doc.StudyInstanceUID()).
		Stringer("assessed", assessed).
		Stringer("original", original).
		Int("result_assessments", len(doc.Content)-1).
		Msg("Synthesized approval status report")

	return doc, nil
}

func (s *Synthesizer) content(assessed Reference, observations []string) ([]*sr.ContentItem, error) {
	language, err := Build(LanguageTemplate, Bindings{})
	if err != nil {
		return nil, err
	}
	content := []*sr.ContentItem{language}

	bindings := []Bindings{{Instance: &assessed}}
	if s.opts.PerObservation && len(observations) > 0 {
		bindings = bindings[:0]
		for _, observation := range observations {
			bindings = append(bindings, Bindings{Instance: &assessed, ObservationUID: observation})
		}
	}

	for _, b := range bindings {
		result, err := Build(ResultAssessmentTemplate, b)
		if err != nil {
			return nil, err
		}
		content = append(content, result)
	}
	return content, nil
}

func reference(doc *sr.Document, context string) (Reference, error) {
	ref := Reference{SOPClassUID: doc.SOPClassUID(), SOPInstanceUID: doc.SOPInstanceUID()}
	if ref.SOPClassUID == "" {
		return Reference{}, dcmerrors.NewMissingAttributeError(dicom.SOPClassUID.String(), dicom.TagName(dicom.SOPClassUID), context)
	}
	if ref.SOPInstanceUID == "" {
		return Reference{}, dcmerrors.NewMissingAttributeError(dicom.SOPInstanceUID.String(), dicom.TagName(dicom.SOPInstanceUID), context)
	}
	return ref, nil
}

func referencedInstance(ref Reference, purpose sr.CodedConcept) *dicom.Dataset {
	ds := ref.dataset()
	ds.SetSequence(dicom.PurposeOfReferenceCodeSequence, purpose.Sequence())
	return ds
}

func (s *Synthesizer) verifyingObserver() *dicom.Dataset {
	ds := dicom.NewDataset()
	ds.SetString(dicom.VerifyingObserverName, s.opts.Observer.Name)
	ds.SetString(dicom.VerifyingOrganization, s.opts.Observer.Organization)
	ds.SetString(dicom.VerificationDateTime, s.opts.Observer.DateTime)
	ds.SetSequence(dicom.VerifyingObserverIdentificationCodeSeq, dicom.NewSequence())
	return ds
}

func (s *Synthesizer) contributingEquipment() *dicom.Dataset {
	e := s.opts.Equipment
	ds := dicom.NewDataset()
	ds.SetString(dicom.Manufacturer, e.Manufacturer)
	ds.SetString(dicom.ManufacturerModelName, e.Model)
	ds.SetString(dicom.SoftwareVersions, e.SoftwareVersion)
	ds.SetString(dicom.ContributionDateTime, e.ContributionDateTime)
	ds.SetString(dicom.ContributionDescription, e.Description)
	if e.Institution != "" {
		ds.SetString(dicom.InstitutionName, e.Institution)
	}
	if e.SerialNumber != "" {
		ds.SetString(dicom.DeviceSerialNumber, e.SerialNumber)
	}
	ds.SetSequence(dicom.PurposeOfReferenceCodeSequence, ProcessingEquipment.Sequence())
	return ds
}

// String describes the reference for logs and errors.
func (r Reference) String() string {
	return fmt.Sprintf("%s (%s)", r.SOPInstanceUID, r.SOPClassUID)
}
