package sr

import (
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/caio-sobreiro/srassess/dicom"
	dcmerrors "github.com/caio-sobreiro/srassess/errors"
)

// RemoveFindings returns a copy of doc with the children at the given
// positions removed from its first anchor container. Positions refer to
// the container before any removal; duplicates are ignored and removal
// runs in descending order so earlier removals do not shift later ones.
//
// doc is never modified. An empty index set returns an identical copy. An
// index outside the container fails with an IndexOutOfRangeError and a
// non-empty set on a document without an anchor fails with a
// MissingAttributeError; in both cases no copy is returned.
func RemoveFindings(doc *Document, indices []int) (*Document, error) {
	filtered := doc.Clone()
	if len(indices) == 0 {
		return filtered, nil
	}

	pos, anchor, ok := filtered.Anchor()
	if !ok {
		return nil, dcmerrors.NewMissingAttributeError(dicom.ConceptNameCodeSequence.String(), AnchorMeaning, "top-level content item")
	}

	unique := slices.Compact(slices.Sorted(slices.Values(indices)))
	for _, index := range unique {
		if index < 0 || index >= len(anchor.Children) {
			return nil, dcmerrors.NewIndexOutOfRangeError(index, len(anchor.Children))
		}
	}

	children := anchor.Children
	for _, index := range slices.Backward(unique) {
		children = slices.Delete(children, index, index+1)
	}
	// Keep the container present even when every finding is removed.
	if children == nil {
		children = []*ContentItem{}
	}
	anchor.Children = children

	log.Debug().
		Ints("removed", unique).
		Int("anchor", pos).
		Int("remaining", len(children)).
		Msg("Removed findings")

	return filtered, nil
}
