package properties

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyName(t *testing.T) {
	tests := []struct {
		fieldName string
		expected  string
	}{
		{"page title", "PageTitle"},
		{"page_title", "PageTitle"},
		{"pageTitle", "PageTitle"},
		{"Title", "Title"},
		{"PageURL", "PageUrl"},
		{"XMLParser", "XmlParser"},
		{"__Created", "Created"},
		{"meta-description (SEO)", "MetaDescriptionSeo"},
		{"3 columns", "X3Columns"},
		{"", ""},
		{"!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fieldName, func(t *testing.T) {
			assert.Equal(t, tt.expected, PropertyName(tt.fieldName))
		})
	}
}

func TestLookupKey(t *testing.T) {
	assert.Equal(t, lookupKey("PageURL"), lookupKey("page url"))
	assert.Equal(t, lookupKey("PageUrl"), lookupKey("page_url"))
	assert.NotEqual(t, lookupKey("PageUrl"), lookupKey("page"))
}
