package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole("client"))
	assert.True(t, ValidRole("partner"))
	// admin cannot be chosen at signup
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("superuser"))
}

func TestValidDecision(t *testing.T) {
	assert.True(t, ValidDecision(StatusVerified))
	assert.True(t, ValidDecision(StatusRejected))
	assert.False(t, ValidDecision(StatusPending))
	assert.False(t, ValidDecision("approved"))
}

func TestValidLocationType(t *testing.T) {
	assert.True(t, ValidLocationType(LocationCity))
	assert.True(t, ValidLocationType(LocationState))
	assert.True(t, ValidLocationType(LocationCountry))
	assert.False(t, ValidLocationType("continent"))
}
