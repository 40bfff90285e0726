package pdffill

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFillJSON(t *testing.T) {
	payload, err := buildFillJSON(map[string]string{
		"p1_applicant_name": "Mary Applicant",
		"p1_applicant_age":  "39",
	})
	require.NoError(t, err)

	var got fillData
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Len(t, got.Forms, 1)
	require.Len(t, got.Forms[0].TextFields, 2)

	// Sorted by field name, all locked.
	assert.Equal(t, "p1_applicant_age", got.Forms[0].TextFields[0].Name)
	assert.Equal(t, "39", got.Forms[0].TextFields[0].Value)
	assert.Equal(t, "p1_applicant_name", got.Forms[0].TextFields[1].Name)
	for _, tf := range got.Forms[0].TextFields {
		assert.True(t, tf.Locked)
	}
}

func TestBuildFillJSONEmpty(t *testing.T) {
	payload, err := buildFillJSON(nil)
	require.NoError(t, err)

	var got fillData
	require.NoError(t, json.Unmarshal(payload, &got))
	require.Len(t, got.Forms, 1)
	assert.Empty(t, got.Forms[0].TextFields)
}
