package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/sectionplanner/core/model"
	"github.com/kilianp07/sectionplanner/core/scheduler"
)

var endOpts struct {
	units float64
	days  int
	start string
	weeks int
	lab   bool
}

var endtimeCmd = &cobra.Command{
	Use:   "endtime",
	Short: "Print the official end time of one component",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := model.Lecture
		if endOpts.lab {
			c = model.Lab
		}
		end, err := scheduler.OfficialEndTime(endOpts.units, endOpts.days, endOpts.start, endOpts.weeks, c)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), end)
		return err
	},
}

func init() {
	f := endtimeCmd.Flags()
	f.Float64Var(&endOpts.units, "units", 0, "units")
	f.IntVar(&endOpts.days, "days", 0, "meeting days per week")
	f.StringVar(&endOpts.start, "start", "08:00", "start time HH:MM")
	f.IntVar(&endOpts.weeks, "weeks", 0, "session length in weeks")
	f.BoolVar(&endOpts.lab, "lab", false, "compute for a lab instead of a lecture")
	rootCmd.AddCommand(endtimeCmd)
}
