package services

import (
	"testing"

	"github.com/localnerve/bakery-api/internal/models"
	"github.com/localnerve/bakery-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMessages(t *testing.T) {
	tests := []struct {
		name    string
		record  any
		field   string
		message string
	}{
		{
			name:    "required",
			record:  &models.Review{Rating: 3, Comment: "x"},
			field:   "name",
			message: "name is required",
		},
		{
			name:    "numeric min",
			record:  &models.Review{Name: "a", Rating: 0, Comment: "x"},
			field:   "rating",
			message: "rating must be at least 1",
		},
		{
			name:    "numeric max",
			record:  &models.Review{Name: "a", Rating: 9, Comment: "x"},
			field:   "rating",
			message: "rating must be at most 5",
		},
		{
			name:    "email",
			record:  &models.ContactSubmission{Name: "a", Email: "bad", Message: "x"},
			field:   "email",
			message: "email must be a valid email address",
		},
		{
			name:    "oneof",
			record:  &models.ContactSubmission{Name: "a", Email: "a@b.co", Message: "x", Status: "spam"},
			field:   "status",
			message: "status must be one of: new read replied archived",
		},
		{
			name:    "checker",
			record:  &models.Product{Name: "Bun"},
			field:   "price",
			message: "price is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.record)
			var verr *types.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestValidateAcceptsValidRecords(t *testing.T) {
	assert.NoError(t, Validate(&models.Product{Name: "Bun", Price: price("2.50")}))
	assert.NoError(t, Validate(&models.Review{Name: "a", Rating: 5, Comment: "x"}))
}

func TestSeedsAreValid(t *testing.T) {
	for _, p := range seedFrom[models.Product]("products")() {
		assert.NoError(t, Validate(&p), p.ID)
	}
	for _, r := range seedFrom[models.Review]("reviews")() {
		assert.NoError(t, Validate(&r), r.ID)
		assert.False(t, r.Verified)
	}
	for _, g := range seedFrom[models.GalleryImage]("gallery")() {
		assert.NoError(t, Validate(&g), g.ID)
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Fish & Chips", plainText("  <em>Fish</em> &amp; Chips "))
	assert.Equal(t, []string{"flour", "salt"}, plainList([]string{"flour", " ", "<b>salt</b>"}))
	assert.Nil(t, plainList(nil))

	for _, in := range []string{"5 < 6 & 7 > 3", "&lt;script&gt;alert(1)&lt;/script&gt;Hi", "Crème brûlée"} {
		once := plainText(in)
		assert.Equal(t, once, plainText(once), in)
	}
	assert.NotContains(t, plainText("&lt;script&gt;alert(1)&lt;/script&gt;Hi"), "<script>")
}
