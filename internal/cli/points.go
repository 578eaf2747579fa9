package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Alixocracy/jast/internal/points"
)

func (r *root) pointsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "points",
		Short: "Show today's points and level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			d := s.app.Ledger.Snapshot()
			lvl := points.LevelFor(d.Total)
			r.printf("%s %s  %s %s\n", bold(d.Total), "points", lvl.Current.Emoji, lvl.Current.Name)
			if lvl.Next != nil {
				r.println(faint(fmt.Sprintf("%d to %s %s", lvl.ToNext, lvl.Next.Emoji, lvl.Next.Name)))
			} else {
				r.println(green("Max level reached"))
			}
			b := points.Categorize(d.History)
			tbl := newTable("TASKS", "WELLNESS", "FOCUS", "OTHER")
			tbl.AddRow(b.Tasks, b.Wellness, b.Focus, b.Other)
			r.println(tbl)
			return nil
		},
	}
	cmd.AddCommand(r.pointsAddCmd(), r.pointsHistoryCmd(), r.pointsResetCmd())
	return cmd
}

func (r *root) pointsAddCmd() *cobra.Command {
	labels := make([]string, len(points.QuickActions))
	for i, q := range points.QuickActions {
		labels[i] = q.Label
	}
	return &cobra.Command{
		Use:       "add <quick action>",
		Aliases:   []string{"log"},
		Short:     "Log a quick wellness action",
		Long:      "Log a quick wellness action. One of: " + strings.Join(labels, ", ") + ".",
		Example:   "\njast points add drink water\n",
		Args:      cobra.MinimumNArgs(1),
		ValidArgs: labels,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			q, err := s.app.QuickAction(strings.Join(args, " "))
			if err != nil {
				return err
			}
			r.println(magenta(fmt.Sprintf("+%d", q.Points)), q.Message)
			return nil
		},
	}
}

func (r *root) pointsHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List today's point awards, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			h := s.app.Ledger.History()
			if len(h) == 0 {
				r.println(faint("No points yet. Complete a task to earn some."))
				return nil
			}
			now := r.now()
			tbl := newTable("POINTS", "ACTION", "WHEN")
			for i, e := range h {
				if limit > 0 && i == limit {
					break
				}
				tbl.AddRow(green(fmt.Sprintf("+%d", e.Points)), e.Action, faint(humanize.RelTime(e.Timestamp, now, "ago", "from now")))
			}
			r.println(tbl)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries")
	return cmd
}

func (r *root) pointsResetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset points and history to zero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("resetting points cannot be undone; pass --yes")
			}
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.app.Ledger.Reset(); err != nil {
				return fmt.Errorf("reset points: %w", err)
			}
			r.println("Points reset to 0")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	return cmd
}
