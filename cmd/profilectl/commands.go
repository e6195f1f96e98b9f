package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"teacher_portal_backend/internal/fixture"
	"teacher_portal_backend/internal/profileview"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "profilectl",
		Short:         "Render teacher profile views offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newMetricsCmd())
	return root
}

// --- render ---

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <fixture.yaml>",
		Short: "Print the view model for one teacher as JSON",
		Long: `Print the view model for one teacher as JSON.

Examples:
  profilectl render fixtures/teachers.yaml
  profilectl render fixtures/teachers.yaml --teacher 2
  profilectl render fixtures/teachers.yaml --collapse attendance --collapse feedback`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _ := cmd.Flags().GetInt("teacher")
			collapse, _ := cmd.Flags().GetStringSlice("collapse")
			compact, _ := cmd.Flags().GetBool("compact")

			profiles, err := fixture.Load(args[0])
			if err != nil {
				return err
			}
			if index < 1 || index > len(profiles) {
				return fmt.Errorf("--teacher must be between 1 and %d", len(profiles))
			}
			p := profiles[index-1]

			session := profileview.NewSession("cli", &p, time.Now())
			for _, name := range collapse {
				id, err := profileview.ParseSectionID(name)
				if err != nil {
					return fmt.Errorf("--collapse %q: %w", name, err)
				}
				if _, err := session.Toggle(id); err != nil {
					if errors.Is(err, profileview.ErrSectionNotCollapsible) {
						fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s has no data and stays a placeholder\n", id)
						continue
					}
					return err
				}
			}

			return writeJSON(cmd.OutOrStdout(), session.Render(), compact)
		},
	}
	cmd.Flags().Int("teacher", 1, "1-based position of the teacher in the fixture")
	cmd.Flags().StringSlice("collapse", nil, "section to collapse (schedule, attendance, feedback); repeatable")
	cmd.Flags().Bool("compact", false, "print JSON on a single line")
	return cmd
}

// --- metrics ---

func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Evaluate attendance and rating formulas",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "percentage <taken> <total>",
		Short: "Attendance percentage and classification",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taken, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("taken: %w", err)
			}
			total, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("total: %w", err)
			}

			pct := profileview.AttendancePercentage(taken, total)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", pct, profileview.Classify(pct))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rating <value>",
		Short: "Format a rating with one decimal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), profileview.FormatRating(v))
			return nil
		},
	})

	return cmd
}

func writeJSON(w io.Writer, v any, compact bool) error {
	enc := json.NewEncoder(w)
	if !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
