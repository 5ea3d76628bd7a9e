package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/api/internal/core/domain"
)

func (app *TestApp) searchStudents(t *testing.T, search string) []domain.Student {
	t.Helper()

	resp, err := app.Client.Get(fmt.Sprintf("%s/api/students?search=%s", app.Server.URL, url.QueryEscape(search)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var students []domain.Student
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&students))
	return students
}

func TestStudentSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	createStudent(t, app.DB, "Rajesh Kumar", "BT2024001")
	createStudent(t, app.DB, "Anita Rajan", "BT2024002")
	createStudent(t, app.DB, "Suresh Patel", "BT2024003")

	// Name match is case-insensitive and substring based.
	students := app.searchStudents(t, "raj")
	require.Len(t, students, 2)
	assert.Equal(t, "Anita Rajan", students[0].Name)
	assert.Equal(t, "Rajesh Kumar", students[1].Name)

	// USN match works the same way.
	students = app.searchStudents(t, "bt2024003")
	require.Len(t, students, 1)
	assert.Equal(t, "Suresh Patel", students[0].Name)

	// No match yields an empty list, not an error.
	students = app.searchStudents(t, "zzz")
	assert.Empty(t, students)

	// Empty search returns the roster ordered by name.
	students = app.searchStudents(t, "")
	require.Len(t, students, 3)
	assert.Equal(t, "Anita Rajan", students[0].Name)
}
