package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/sectionplanner/core/model"
)

const attendanceMD = `# Attendance accounting

## SEMESTER_FULL_TERM
METHOD: IGNORE_HOLIDAYS
DESCRIPTION: Weeks x days: holidays are absorbed by the calendar.

## SEMESTER_SHORT_TERM
METHOD: COUNT_HOLIDAYS

## INTERSESSION
DESCRIPTION: no method here
`

const contactMD = `# Bands

## LECTURE
- MIN: 1
- MAX: 4
- CONTACT_HOURS: 18

## LAB
- MIN: 0.5
- CONTACT_HOURS: 54
`

func TestParseAttendance(t *testing.T) {
	r, err := ParseAttendance(strings.NewReader(attendanceMD))
	require.NoError(t, err)
	require.Len(t, r, 2)
	assert.Equal(t, model.IgnoreHolidays, r[model.RuleSemesterFullTerm].Method)
	assert.Equal(t, "Weeks x days: holidays are absorbed by the calendar.", r[model.RuleSemesterFullTerm].Description)
	assert.Equal(t, model.CountHolidays, r[model.RuleSemesterShortTerm].Method)
	assert.Empty(t, r[model.RuleSemesterShortTerm].Description)
	_, ok := r["INTERSESSION"]
	assert.False(t, ok)
}

func TestParseAttendanceUnknownMethod(t *testing.T) {
	_, err := ParseAttendance(strings.NewReader("## X\nMETHOD: SOMETIMES\n"))
	assert.Error(t, err)
}

func TestParseContactHours(t *testing.T) {
	r, err := ParseContactHours(strings.NewReader(contactMD))
	require.NoError(t, err)
	assert.Equal(t, model.ContactHourRule{Min: 1, Max: 4, ContactHours: 18}, r["LECTURE"])
	assert.Equal(t, model.ContactHourRule{Min: 0.5, ContactHours: 54}, r["LAB"])
}

func TestParseContactHoursBadNumber(t *testing.T) {
	_, err := ParseContactHours(strings.NewReader("## LAB\n- MIN: lots\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	att := filepath.Join(dir, "attendance.md")
	ch := filepath.Join(dir, "contact.md")
	require.NoError(t, os.WriteFile(att, []byte(attendanceMD), 0o600))
	require.NoError(t, os.WriteFile(ch, []byte(contactMD), 0o600))

	set, err := Load(att, ch)
	require.NoError(t, err)
	assert.Len(t, set.Attendance, 2)
	assert.Len(t, set.ContactHours, 2)

	set, err = Load("", "")
	require.NoError(t, err)
	assert.Empty(t, set.Attendance)

	_, err = Load(filepath.Join(dir, "missing.md"), "")
	assert.Error(t, err)
}
