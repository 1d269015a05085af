package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSOPClassInfo(t *testing.T) {
	tests := []struct {
		name     string
		uid      string
		wantName string
		wantCat  string
	}{
		{
			name:     "Comprehensive SR",
			uid:      ComprehensiveSRStorage,
			wantName: "Comprehensive SR Storage",
			wantCat:  CategoryStructuredReport,
		},
		{
			name:     "Enhanced SR",
			uid:      EnhancedSRStorage,
			wantName: "Enhanced SR Storage",
			wantCat:  CategoryStructuredReport,
		},
		{
			name:     "CT Image Storage",
			uid:      CTImageStorage,
			wantName: "CT Image Storage",
			wantCat:  CategoryStorage,
		},
		{
			name:     "Unknown SOP Class",
			uid:      "1.2.3.4.5.6.7.8.9",
			wantName: "Unknown",
			wantCat:  CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := GetSOPClassInfo(tt.uid)
			assert.Equal(t, tt.uid, info.UID)
			assert.Equal(t, tt.wantName, info.Name)
			assert.Equal(t, tt.wantCat, info.Category)
		})
	}
}

func TestIsStructuredReportSOPClass(t *testing.T) {
	assert.True(t, IsStructuredReportSOPClass(ComprehensiveSRStorage))
	assert.True(t, IsStructuredReportSOPClass(Comprehensive3DSRStorage))
	assert.True(t, IsStructuredReportSOPClass(KeyObjectSelectionDocumentStorage))
	assert.False(t, IsStructuredReportSOPClass(CTImageStorage))
	assert.False(t, IsStructuredReportSOPClass(""))
}

func TestIsStorageSOPClass(t *testing.T) {
	assert.True(t, IsStorageSOPClass(MRImageStorage))
	assert.True(t, IsStorageSOPClass(EnhancedSRStorage))
	assert.False(t, IsStorageSOPClass("1.2.3"))
}

func TestSOPClassRegistryConsistency(t *testing.T) {
	for uid, info := range sopClassRegistry {
		assert.Equal(t, uid, info.UID, "registry key must match UID field")
		assert.NotEmpty(t, info.Name, uid)
	}
}
