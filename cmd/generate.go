package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/sectionplanner/app"
	"github.com/kilianp07/sectionplanner/core/cache"
	coremetrics "github.com/kilianp07/sectionplanner/core/metrics"
	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/planner"
	"github.com/kilianp07/sectionplanner/infra/logger"
	"github.com/kilianp07/sectionplanner/pkg/export"
)

var genOpts struct {
	lectureUnits float64
	lectureDays  string
	labUnits     float64
	labDays      string
	start        string
	labStart     string
	term         string
	session      string
	format       string
	name         string
	timeFormat   string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a weekly timetable for one section",
	RunE:  runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.Float64Var(&genOpts.lectureUnits, "lecture-units", 0, "lecture units")
	f.StringVar(&genOpts.lectureDays, "lecture-days", "", "lecture days, e.g. Mon,Wed,Fri")
	f.Float64Var(&genOpts.labUnits, "lab-units", 0, "lab units")
	f.StringVar(&genOpts.labDays, "lab-days", "", "lab days, e.g. Tue,Thu")
	f.StringVar(&genOpts.start, "start", "", "lecture start time HH:MM (default from config)")
	f.StringVar(&genOpts.labStart, "lab-start", "", "lab start time HH:MM")
	f.StringVar(&genOpts.term, "term", "", "term id (default: first term)")
	f.StringVar(&genOpts.session, "session", "", "session id (default: first session)")
	f.StringVar(&genOpts.format, "format", "simple", "output format: simple, detailed, json or csv")
	f.StringVar(&genOpts.name, "name", "", "section name for the detailed format")
	f.StringVar(&genOpts.timeFormat, "time-format", "", "12h or 24h (default from config)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lectureDays, err := model.ParseWeekdays(genOpts.lectureDays)
	if err != nil {
		return fmt.Errorf("lecture days: %w", err)
	}
	labDays, err := model.ParseWeekdays(genOpts.labDays)
	if err != nil {
		return fmt.Errorf("lab days: %w", err)
	}
	tf := cfg.Schedule.Format()
	if genOpts.timeFormat != "" {
		if tf, err = export.ParseTimeFormat(genOpts.timeFormat); err != nil {
			return err
		}
	}

	cat, err := app.LoadCatalog(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	p := planner.New(cat, cache.Nop{}, 0, coremetrics.NopSink{}, logger.New("generate"), cfg.Schedule.DefaultStartTime)
	g, err := p.Generate(cmd.Context(), planner.GenerateInput{
		Request: model.ScheduleRequest{
			LectureUnits: genOpts.lectureUnits,
			LectureDays:  lectureDays,
			LabUnits:     genOpts.labUnits,
			LabDays:      labDays,
		},
		TermID:       genOpts.term,
		SessionID:    genOpts.session,
		StartTime:    genOpts.start,
		LabStartTime: genOpts.labStart,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch genOpts.format {
	case "json":
		return export.WriteJSON(out, g)
	case "csv":
		return export.WriteCSV(out, g)
	case "simple", "detailed":
		text := export.Simple(g, tf)
		if genOpts.format == "detailed" {
			text = export.Detailed(g, genOpts.name, tf)
		}
		for _, w := range g.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), w.String())
		}
		_, err = fmt.Fprintln(out, text)
		return err
	default:
		return fmt.Errorf("unknown format %q", genOpts.format)
	}
}
