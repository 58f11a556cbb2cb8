// Package rules parses the institutional rule files. Both files are markdown:
// a "## KEY" heading opens an entry and the lines below it carry its fields.
//
// Attendance accounting:
//
//	## SEMESTER_FULL_TERM
//	METHOD: IGNORE_HOLIDAYS
//	DESCRIPTION: Weeks times selected days.
//
// Contact-hour bands:
//
//	## LECTURE
//	- MIN: 1
//	- MAX: 4
//	- CONTACT_HOURS: 18
package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/sectionplanner/core/model"
)

// Set is the pair of rule tables loaded together.
type Set struct {
	Attendance   model.AttendanceRules  `json:"attendance"`
	ContactHours model.ContactHourRules `json:"contact_hours"`
}

// Load reads both rule files. An empty path yields an empty table.
func Load(attendancePath, contactHoursPath string) (Set, error) {
	var s Set
	var err error
	if s.Attendance, err = LoadAttendance(attendancePath); err != nil {
		return Set{}, err
	}
	if s.ContactHours, err = LoadContactHours(contactHoursPath); err != nil {
		return Set{}, err
	}
	return s, nil
}

// LoadAttendance reads an attendance accounting file.
func LoadAttendance(path string) (model.AttendanceRules, error) {
	if path == "" {
		return model.AttendanceRules{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	r, err := ParseAttendance(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// LoadContactHours reads a contact-hour band file.
func LoadContactHours(path string) (model.ContactHourRules, error) {
	if path == "" {
		return model.ContactHourRules{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	r, err := ParseContactHours(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// heading returns the key of a "## KEY" line.
func heading(line string) (string, bool) {
	if !strings.HasPrefix(line, "## ") {
		return "", false
	}
	key := strings.TrimSpace(line[3:])
	return key, key != ""
}

// field splits "NAME: value" on the first colon.
func field(line, name string) (string, bool) {
	rest, ok := strings.CutPrefix(line, name+":")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// ParseAttendance parses attendance accounting rules. Entries without a
// METHOD line are skipped; an unknown method is an error.
func ParseAttendance(r io.Reader) (model.AttendanceRules, error) {
	rules := model.AttendanceRules{}
	var (
		key     string
		current model.AttendanceRule
		hasRule bool
	)
	flush := func() {
		if key != "" && hasRule {
			rules[key] = current
		}
	}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if k, ok := heading(line); ok {
			flush()
			key, current, hasRule = k, model.AttendanceRule{}, false
			continue
		}
		if key == "" {
			continue
		}
		if v, ok := field(line, "METHOD"); ok {
			m := model.AttendanceMethod(v)
			if !m.Valid() {
				return nil, fmt.Errorf("line %d: unknown attendance method %q", lineNo, v)
			}
			current.Method, hasRule = m, true
			continue
		}
		if v, ok := field(line, "DESCRIPTION"); ok {
			current.Description = v
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	flush()
	return rules, nil
}

// ParseContactHours parses contact-hour bands. Missing fields stay zero.
func ParseContactHours(r io.Reader) (model.ContactHourRules, error) {
	rules := model.ContactHourRules{}
	key := ""
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if k, ok := heading(line); ok {
			key = k
			rules[key] = model.ContactHourRule{}
			continue
		}
		if key == "" {
			continue
		}
		rule := rules[key]
		var dst *float64
		var raw string
		if v, ok := field(line, "- MIN"); ok {
			dst, raw = &rule.Min, v
		} else if v, ok := field(line, "- MAX"); ok {
			dst, raw = &rule.Max, v
		} else if v, ok := field(line, "- CONTACT_HOURS"); ok {
			dst, raw = &rule.ContactHours, v
		} else {
			continue
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
		*dst = f
		rules[key] = rule
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}
