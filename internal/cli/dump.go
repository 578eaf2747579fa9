package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func (r *root) dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dump [thought]",
		Aliases: []string{"braindump"},
		Short:   "Capture racing thoughts so they stop distracting you",
		Example: `
jast dump remember to call mum
jast dump ls
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return r.listThoughts()
			}
			return r.addThought(strings.Join(args, " "))
		},
	}

	add := &cobra.Command{
		Use:   "add <thought>",
		Short: "Capture a thought",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.addThought(strings.Join(args, " "))
		},
	}
	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List captured thoughts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.listThoughts()
		},
	}
	rm := &cobra.Command{
		Use:     "rm <#|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a thought",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			th, err := resolve(s.app.Dump.Items(), args[0])
			if err != nil {
				return err
			}
			if _, err := s.app.Dump.Delete(th.ID); err != nil {
				return fmt.Errorf("delete thought: %w", err)
			}
			r.println("Deleted:", th.Text)
			return nil
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every thought",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("clearing the brain dump cannot be undone; pass --yes")
			}
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			n := s.app.Dump.Len()
			if err := s.app.Dump.Clear(); err != nil {
				return fmt.Errorf("clear brain dump: %w", err)
			}
			r.printf("Cleared %d thoughts\n", n)
			return nil
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")

	cmd.AddCommand(add, ls, rm, clearCmd)
	return cmd
}

func (r *root) addThought(text string) error {
	s, err := r.open()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := s.app.Dump.Add(text); err != nil {
		return fmt.Errorf("capture thought: %w", err)
	}
	r.println("Captured. Let it go for now.")
	return nil
}

func (r *root) listThoughts() error {
	s, err := r.open()
	if err != nil {
		return err
	}
	defer s.Close()

	items := s.app.Dump.Items()
	r.println(bold("Brain Dump"), faint(fmt.Sprintf("(%d)", len(items))))
	if len(items) == 0 {
		r.println(faint("  empty your head here: jast dump <thought>"))
		return nil
	}
	now := r.now()
	tbl := newTable("#", "THOUGHT", "WHEN", "ID")
	for i, th := range items {
		tbl.AddRow(i+1, th.Text, faint(humanize.RelTime(th.Timestamp, now, "ago", "from now")), faint(shortID(th.ID)))
	}
	r.println(tbl)
	return nil
}

func (r *root) now() time.Time {
	if r.opts.Now != nil {
		return r.opts.Now()
	}
	return time.Now()
}
