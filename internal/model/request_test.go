package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidateRejectsNegativeTimeout(t *testing.T) {
	r := Request{RequestID: 1, Profile: Profile{0.1}, Timeout: -1}
	err := r.Validate()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrInvalidRequest, kind)
}

func TestRequestValidateRejectsEmptyProfile(t *testing.T) {
	r := Request{RequestID: 1, Profile: Profile{}, Timeout: 0}
	require.Error(t, r.Validate())
}

func TestRequestValidateRejectsNegativeProfileValues(t *testing.T) {
	r := Request{RequestID: 1, Profile: Profile{0.1, -0.2}, Timeout: 0}
	require.Error(t, r.Validate())
}

func TestRequestValidateAcceptsWellFormedRequest(t *testing.T) {
	r := Request{RequestID: 1, DeviceName: "oven", Profile: Profile{0.1, 0.2}, Timeout: 5}
	assert.NoError(t, r.Validate())
}
