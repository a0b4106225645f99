package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionFromFilename(t *testing.T) {
	assert.Equal(t, "create users", descriptionFromFilename("2026-01-01-001-create-users.sql"))
	assert.Equal(t, "create goals", descriptionFromFilename("2026-01-01-003-create-goals.sql"))
	// No date prefix: only the suffix and dashes change.
	assert.Equal(t, "seed data", descriptionFromFilename("seed-data.sql"))
}
