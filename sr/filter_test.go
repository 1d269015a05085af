package sr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dcmerrors "github.com/caio-sobreiro/srassess/errors"
)

func trackingIDs(t *testing.T, doc *Document) []string {
	t.Helper()
	_, anchor, ok := doc.Anchor()
	require.True(t, ok)

	ids := make([]string, len(anchor.Children))
	for i, group := range anchor.Children {
		ids[i] = group.Children[0].Value.(Text).Text
	}
	return ids
}

func TestRemoveFindings(t *testing.T) {
	doc := measurementReport(9)

	filtered, err := RemoveFindings(doc, []int{0, 7})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Lesion 1", "Lesion 2", "Lesion 3", "Lesion 4", "Lesion 5", "Lesion 6", "Lesion 8",
	}, trackingIDs(t, filtered))
	assert.Len(t, trackingIDs(t, doc), 9, "input is not modified")
}

func TestRemoveFindings_OrderAndDuplicatesDoNotMatter(t *testing.T) {
	doc := measurementReport(9)

	expected, err := RemoveFindings(doc, []int{0, 7})
	require.NoError(t, err)

	for _, indices := range [][]int{{7, 0}, {0, 7, 7}, {7, 0, 0, 7}} {
		filtered, err := RemoveFindings(doc, indices)
		require.NoError(t, err)
		assert.Equal(t, trackingIDs(t, expected), trackingIDs(t, filtered), "indices %v", indices)
	}
}

func TestRemoveFindings_SurvivorsAreOrderedSubsequence(t *testing.T) {
	doc := measurementReport(6)
	original := trackingIDs(t, doc)

	filtered, err := RemoveFindings(doc, []int{5, 1, 3})
	require.NoError(t, err)
	survivors := trackingIDs(t, filtered)

	require.Len(t, survivors, len(original)-3)
	next := 0
	for _, id := range survivors {
		for next < len(original) && original[next] != id {
			next++
		}
		require.Less(t, next, len(original), "%s out of order", id)
		next++
	}
}

func TestRemoveFindings_Identity(t *testing.T) {
	doc := measurementReport(9)

	for _, indices := range [][]int{nil, {}} {
		filtered, err := RemoveFindings(doc, indices)
		require.NoError(t, err)

		want, err := doc.Encode()
		require.NoError(t, err)
		got, err := filtered.Encode()
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
		assert.NotSame(t, doc.Header, filtered.Header)
	}
}

func TestRemoveFindings_OutOfRange(t *testing.T) {
	doc := measurementReport(9)

	for _, indices := range [][]int{{50}, {0, 9}, {-1}} {
		filtered, err := RemoveFindings(doc, indices)
		require.ErrorIs(t, err, dcmerrors.ErrIndexOutOfRange)
		assert.Nil(t, filtered)

		var rangeErr *dcmerrors.IndexOutOfRangeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, 9, rangeErr.Length)
	}
	assert.Len(t, trackingIDs(t, doc), 9)
}

func TestRemoveFindings_AllFindings(t *testing.T) {
	doc := measurementReport(2)

	filtered, err := RemoveFindings(doc, []int{0, 1})
	require.NoError(t, err)

	_, anchor, ok := filtered.Anchor()
	require.True(t, ok)
	assert.NotNil(t, anchor.Children, "container keeps an empty ContentSequence")
	assert.Empty(t, anchor.Children)
	assert.Empty(t, filtered.ObservationUIDs())
}

func TestRemoveFindings_NoAnchor(t *testing.T) {
	doc := measurementReport(2)
	doc.Content = doc.Content[:2]

	_, err := RemoveFindings(doc, []int{0})
	assert.ErrorIs(t, err, dcmerrors.ErrMissingAttribute)

	filtered, err := RemoveFindings(doc, nil)
	require.NoError(t, err)
	assert.Len(t, filtered.Content, 2)
}

func TestRemoveFindings_OtherContentUntouched(t *testing.T) {
	doc := measurementReport(3)

	filtered, err := RemoveFindings(doc, []int{1})
	require.NoError(t, err)

	assert.Equal(t, meanings(doc.Content), meanings(filtered.Content))
	assert.Equal(t, doc.Content[0].Value, filtered.Content[0].Value)
	assert.Equal(t, doc.SOPInstanceUID(), filtered.SOPInstanceUID())
	assert.Equal(t, []string{
		"1.2.826.0.1.3680043.10.1.0.1", "1.2.826.0.1.3680043.10.1.0.2",
		"1.2.826.0.1.3680043.10.1.2.1", "1.2.826.0.1.3680043.10.1.2.2",
	}, filtered.ObservationUIDs())
}

func TestRemoveFindings_RoundTripsThroughPart10(t *testing.T) {
	filtered, err := RemoveFindings(measurementReport(9), []int{0, 7})
	require.NoError(t, err)

	data, err := filtered.Bytes()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, trackingIDs(t, filtered), trackingIDs(t, parsed))
}
