package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/sectionplanner/core/calendar"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/scheduler"
)

// SpreadsheetColumns is the width of the registrar sheet (A..Z).
const SpreadsheetColumns = 26

// Registrar sheet columns, zero based.
const (
	colSubject   = 3  // D
	colNumber    = 4  // E
	colSection   = 5  // F
	colDays      = 6  // G
	colStart     = 7  // H
	colEnd       = 8  // I
	colStartDate = 13 // N
	colEndDate   = 14 // O
	colHoursDay  = 15 // P
	colHoursWeek = 16 // Q
	colHoursTerm = 17 // R
	colType      = 23 // X
)

// ErrEmptyCalendar is returned when there is no term to resolve sections against.
var ErrEmptyCalendar = errors.New("calendar has no terms")

// SpreadsheetRows builds one row per lecture or lab component of each
// section. Sections referring to an unknown term or session fall back to
// the first term and its first session. Names of the form "SUB NO SEC"
// fill the subject, number and section columns.
func SpreadsheetRows(sections []model.SavedSection, terms []model.AcademicTerm) ([][]string, error) {
	if len(terms) == 0 {
		return nil, ErrEmptyCalendar
	}
	var rows [][]string
	for _, s := range sections {
		term := terms[0]
		for _, t := range terms {
			if t.ID == s.SelectedTermID {
				term = t
				break
			}
		}
		if len(term.Sessions) == 0 {
			return nil, fmt.Errorf("term %s has no sessions", term.ID)
		}
		session, ok := term.Session(s.SelectedSessionID)
		if !ok {
			session = term.Sessions[0]
		}
		startDate, endDate, err := calendar.SessionDates(term, session)
		if err != nil {
			return nil, err
		}
		nameParts := strings.Split(s.Name, " ")
		part := func(i int) string {
			if i < len(nameParts) {
				return nameParts[i]
			}
			return ""
		}
		components := []struct {
			c     model.Component
			label string
			units float64
			days  []model.Weekday
			start string
		}{
			{model.Lecture, "Lecture", s.LectureUnits, s.LectureDays, s.StartTime},
			{model.Lab, "Lab", s.LabUnits, s.LabDays, labStart(s)},
		}
		for _, comp := range components {
			if comp.units <= 0 {
				continue
			}
			end, err := scheduler.OfficialEndTime(comp.units, len(comp.days), comp.start, session.Weeks, comp.c)
			if err != nil {
				return nil, fmt.Errorf("section %s: %w", s.Name, err)
			}
			total := comp.units * scheduler.Rate(comp.c)
			perWeek := total / float64(session.Weeks)
			perDay := ""
			if len(comp.days) > 0 {
				perDay = hours(perWeek / float64(len(comp.days)))
			}
			row := make([]string, SpreadsheetColumns)
			row[colSubject] = part(0)
			row[colNumber] = part(1)
			row[colSection] = part(2)
			row[colDays] = model.JoinDays(comp.days, "")
			row[colStart] = comp.start
			row[colEnd] = end
			row[colStartDate] = startDate
			row[colEndDate] = endDate
			row[colHoursDay] = perDay
			row[colHoursWeek] = hours(perWeek)
			row[colHoursTerm] = hours(total)
			row[colType] = comp.label
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func labStart(s model.SavedSection) string {
	if s.LabStartTime != "" {
		return s.LabStartTime
	}
	return s.StartTime
}

func hours(h float64) string { return strconv.FormatFloat(h, 'f', 1, 64) }

// Spreadsheet renders SpreadsheetRows as tab-separated lines.
func Spreadsheet(sections []model.SavedSection, terms []model.AcademicTerm) (string, error) {
	rows, err := SpreadsheetRows(sections, terms)
	if err != nil {
		return "", err
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.Join(r, "\t")
	}
	return strings.Join(lines, "\n"), nil
}

// WriteSpreadsheet writes the TSV rendering to w.
func WriteSpreadsheet(w io.Writer, sections []model.SavedSection, terms []model.AcademicTerm) error {
	s, err := Spreadsheet(sections, terms)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
