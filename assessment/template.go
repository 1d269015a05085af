// Package assessment synthesizes the IHE AI Result Assessment (AIR)
// approval status report that accompanies a filtered AI result.
package assessment

import (
	"fmt"

	"github.com/caio-sobreiro/srassess/dicom"
	dcmerrors "github.com/caio-sobreiro/srassess/errors"
	"github.com/caio-sobreiro/srassess/sr"
)

// Coding scheme designators used by the assessment.
const (
	SchemeIHE  = "99IHE"
	SchemeDCM  = "DCM"
	SchemeLang = "RFC5646"
)

// Concepts of the approval status object.
var (
	ApprovalStatusObject     = sr.NewCodedConcept("AIRAI_01", SchemeIHE, "Approval Status Object")
	ResultAssessment         = sr.NewCodedConcept("AIRAI_02", SchemeIHE, "Result Assessment")
	ResultType               = sr.NewCodedConcept("AIRAI_03", SchemeIHE, "Result Type")
	ReferencedInstance       = sr.NewCodedConcept("AIRAI_04", SchemeIHE, "Referenced Instance")
	ResultAssessmentStatus   = sr.NewCodedConcept("AIRAI_06", SchemeIHE, "Result Assessment Status")
	AssessmentScope          = sr.NewCodedConcept("AIRAI_07", SchemeIHE, "Assessment Scope")
	ModificationScope        = sr.NewCodedConcept("AIRAI_08", SchemeIHE, "Modification Scope")
	Unreviewed               = sr.NewCodedConcept("AIRAI_13", SchemeIHE, "Unreviewed")
	ClinicallyRelevant       = sr.NewCodedConcept("AIRAI_17", SchemeIHE, "Clinically relevant")
	AcceptedAfterModified    = sr.NewCodedConcept("AIRAI_19", SchemeIHE, "Accepted after Modification")
	OriginalAIResultObject   = sr.NewCodedConcept("AIRAI_21", SchemeIHE, "Original AI Result Object")
	AssessedAIResultObject   = sr.NewCodedConcept("AIRAI_24", SchemeIHE, "Assessed AI Result Object")
	ReferencedObservation    = sr.NewCodedConcept("AIR004", SchemeIHE, "Referenced Observation")
	ReferencedObservationUID = sr.NewCodedConcept("AIR005", SchemeIHE, "Referenced Observation UID")
	LanguageOfContent        = sr.NewCodedConcept("121049", SchemeDCM, "Language of Content Item and Descendants")
	English                  = sr.NewCodedConcept("eng", SchemeLang, "English")
	ProcessingEquipment      = sr.NewCodedConcept("109102", SchemeDCM, "Processing Equipment")
)

// NodeSpec describes one content item of a fixed template.
type NodeSpec struct {
	Relationship sr.RelationshipType
	ValueType    sr.ValueType
	Concept      sr.CodedConcept
	// Code is the value of a CODE node.
	Code     *sr.CodedConcept
	Children []NodeSpec
}

func code(c sr.CodedConcept) *sr.CodedConcept { return &c }

// LanguageTemplate declares the content language.
var LanguageTemplate = NodeSpec{
	Relationship: sr.HasConceptMod,
	ValueType:    sr.ValueTypeCode,
	Concept:      LanguageOfContent,
	Code:         code(English),
}

// ResultAssessmentTemplate is the assessment of one referenced observation.
var ResultAssessmentTemplate = NodeSpec{
	Relationship: sr.Contains,
	ValueType:    sr.ValueTypeContainer,
	Concept:      ResultAssessment,
	Children: []NodeSpec{
		{Relationship: sr.Contains, ValueType: sr.ValueTypeCode, Concept: ResultType, Code: code(ReferencedObservation)},
		{Relationship: sr.Contains, ValueType: sr.ValueTypeComposite, Concept: ReferencedInstance},
		{Relationship: sr.Contains, ValueType: sr.ValueTypeUIDRef, Concept: ReferencedObservationUID},
		{
			Relationship: sr.Contains,
			ValueType:    sr.ValueTypeCode,
			Concept:      ResultAssessmentStatus,
			Code:         code(Unreviewed),
			Children: []NodeSpec{
				{Relationship: sr.HasConceptMod, ValueType: sr.ValueTypeCode, Concept: AssessmentScope, Code: code(ClinicallyRelevant)},
				{Relationship: sr.HasConceptMod, ValueType: sr.ValueTypeCode, Concept: ModificationScope, Code: code(AcceptedAfterModified)},
			},
		},
	},
}

// ApprovalStatusTemplate is the top-level content of the approval status
// object, in order.
//
// The IHE AIR profile lists the "Approval Status Object" (AIRAI_01) node
// first, followed by the language modifier. Here that node is the document
// itself: ApprovalStatusObject becomes the title of the root CONTAINER and
// this slice holds its children, so the language item comes first.
var ApprovalStatusTemplate = []NodeSpec{LanguageTemplate, ResultAssessmentTemplate}

// Reference identifies a composite instance.
type Reference struct {
	SOPClassUID    string
	SOPInstanceUID string
}

// Bindings fill the instance specific parts of a template.
type Bindings struct {
	// Instance is referenced by COMPOSITE nodes. Nil leaves them empty.
	Instance *Reference
	// ObservationUID is the value of UIDREF nodes. Empty is a placeholder.
	ObservationUID string
}

// Build instantiates a node template and its children.
func Build(spec NodeSpec, b Bindings) (*sr.ContentItem, error) {
	return build(spec, b, "1")
}

func build(spec NodeSpec, b Bindings, path string) (*sr.ContentItem, error) {
	item := &sr.ContentItem{
		RelationshipType: spec.Relationship,
		ConceptName:      code(spec.Concept),
	}

	switch spec.ValueType {
	case sr.ValueTypeCode:
		if spec.Code == nil {
			return nil, dcmerrors.NewContentItemError(path, string(spec.ValueType), "ConceptCodeSequence")
		}
		item.Value = sr.Code{Code: *spec.Code}
	case sr.ValueTypeContainer:
		item.Value = sr.Container{ContinuityOfContent: "SEPARATE"}
	case sr.ValueTypeComposite:
		item.Value = sr.Composite{}
		if b.Instance != nil {
			item.Attributes = dicom.NewDataset()
			item.Attributes.SetSequence(dicom.ReferencedSOPSequence, dicom.NewSequence(b.Instance.dataset()))
		}
	case sr.ValueTypeUIDRef:
		item.Value = sr.UIDRef{UID: b.ObservationUID}
	case sr.ValueTypeText:
		item.Value = sr.Text{}
	default:
		return nil, fmt.Errorf("%w: template node %s has unsupported value type %q",
			dcmerrors.ErrMalformedContentItem, path, spec.ValueType)
	}

	if spec.Children != nil {
		item.Children = make([]*sr.ContentItem, 0, len(spec.Children))
		for i, child := range spec.Children {
			built, err := build(child, b, fmt.Sprintf("%s.%d", path, i+1))
			if err != nil {
				return nil, err
			}
			item.Append(built)
		}
	}
	return item, nil
}

func (r Reference) dataset() *dicom.Dataset {
	ds := dicom.NewDataset()
	ds.SetString(dicom.ReferencedSOPClassUID, r.SOPClassUID)
	ds.SetString(dicom.ReferencedSOPInstanceUID, r.SOPInstanceUID)
	return ds
}
