// Package scheduler turns a requested lecture/lab load into a weekly
// timetable of contact-hour blocks.
//
// The pipeline is: count meeting days in the session (CountMeetingDays),
// convert units into a rounded per-day contact-hour figure (PlanComponent),
// split the day into 50-minute instructional segments and breaks
// (Decompose), then lay the blocks onto each selected weekday (Assemble).
// Generate runs the whole pipeline for both components of a request.
//
// Every function is a pure function of its arguments.
package scheduler
