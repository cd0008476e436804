package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationFS, migrationDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	content, err := fs.ReadFile(migrationFS, files[0])
	require.NoError(t, err)

	schema := string(content)
	assert.Contains(t, schema, "-- +goose Up")
	assert.Contains(t, schema, "-- +goose Down")
	for _, constraint := range []string{
		"users_email_key",
		"students_registration_number_key",
		"professors_staff_id_key",
		"projects_advisor_id_fkey",
		"projects_status_check",
		"student_projects_pkey",
		"interest_areas_name_key",
	} {
		assert.Contains(t, schema, constraint)
	}
}
