package recommendations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupNormalisesKeys(t *testing.T) {
	for _, bt := range []string{"inverted_triangle", "Inverted-Triangle", " inverted triangle "} {
		rec, err := Lookup("Female", bt)
		require.NoError(t, err, bt)
		assert.Equal(t, "inverted_triangle", rec.BodyType)
		assert.NotEmpty(t, rec.BestStyles)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("female", "triangle")
	assert.ErrorIs(t, err, ErrUnknownBodyType)

	_, err = Lookup("other", "rectangle")
	assert.ErrorIs(t, err, ErrUnknownBodyType)
}

func TestBodyTypes(t *testing.T) {
	assert.Equal(t, []string{"apple", "hourglass", "inverted_triangle", "pear", "rectangle"}, BodyTypes("female"))
	assert.Equal(t, []string{"inverted_triangle", "oval", "rectangle", "trapezoid", "triangle"}, BodyTypes("MALE"))
	assert.Empty(t, BodyTypes("unknown"))

	for _, g := range []string{"female", "male"} {
		for _, bt := range BodyTypes(g) {
			rec, err := Lookup(g, bt)
			require.NoError(t, err)
			assert.NotEmpty(t, rec.Description)
			assert.NotEmpty(t, rec.Avoid)
			assert.NotEmpty(t, rec.Tips)
		}
	}
}
