package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/points"
)

func (r *root) tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "List and change today's tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.listTasks(false)
		},
	}
	cmd.AddCommand(
		r.tasksLsCmd(),
		r.tasksAddCmd(),
		r.tasksDoneCmd(),
		r.tasksRmCmd(),
		r.tasksMvCmd(),
		r.tasksOrderCmd(),
		r.tasksEditCmd(),
	)
	return cmd
}

func (r *root) backlogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backlog",
		Short: "List tasks waiting for another day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.listTasks(true)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List backlog tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.listTasks(true)
		},
	})
	return cmd
}

func (r *root) tasksLsCmd() *cobra.Command {
	var backlog bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.listTasks(backlog)
		},
	}
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "list the backlog instead")
	return cmd
}

func (r *root) listTasks(backlog bool) error {
	s, err := r.open()
	if err != nil {
		return err
	}
	defer s.Close()

	l, title := s.app.Board.Today, "Today"
	if backlog {
		l, title = s.app.Board.Backlog, "Backlog"
	}
	items := l.Items()
	r.println(bold(title), faint(fmt.Sprintf("(%d)", len(items))))
	if len(items) == 0 {
		r.println(faint("  nothing here"))
		return nil
	}

	tbl := newTable("#", "", "TASK", "COLOR", "ID")
	for i, t := range items {
		mark, text := "○", t.Text
		if t.Completed {
			mark, text = green("✓"), faint(t.Text)
		}
		tbl.AddRow(i+1, mark, text, lists.ColorName(t.Color), faint(shortID(t.ID)))
	}
	r.println(tbl)
	return nil
}

func (r *root) tasksAddCmd() *cobra.Command {
	var (
		backlog bool
		color   string
	)
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task",
		Example: `
jast tasks add call the bank
jast tasks add --color lavender --backlog renew passport
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if backlog {
				t, err := s.app.Board.AddToBacklog(text, color)
				if err != nil {
					return fmt.Errorf("add task: %w", err)
				}
				r.println("Added to backlog:", t.Text)
				return nil
			}
			res, err := s.app.Board.AddTask(text, color)
			if err != nil {
				return fmt.Errorf("add task: %w", err)
			}
			if res.Redirected {
				r.println(yellow(fmt.Sprintf("Today has %d open tasks, added to backlog:", lists.MaxOpenToday)), res.Task.Text)
				return nil
			}
			r.println("Added:", res.Task.Text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "add to the backlog")
	cmd.Flags().StringVarP(&color, "color", "c", "", "palette color name or hex")
	return cmd
}

func (r *root) tasksDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "done <#|id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task on today's list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := resolve(s.app.Board.Today.Items(), args[0])
			if err != nil {
				return err
			}
			t, err = s.app.Board.Toggle(t.ID)
			if err != nil {
				return fmt.Errorf("toggle task: %w", err)
			}
			if t.Completed {
				r.println(green("✓"), t.Text, magenta(fmt.Sprintf("+%d points", points.TaskCompletedPoints)))
			} else {
				r.println("○", t.Text)
			}
			return nil
		},
	}
}

func (r *root) tasksRmCmd() *cobra.Command {
	var backlog bool
	cmd := &cobra.Command{
		Use:     "rm <#|id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			l := s.app.Board.Today
			if backlog {
				l = s.app.Board.Backlog
			}
			t, err := resolve(l.Items(), args[0])
			if err != nil {
				return err
			}
			if _, err := s.app.Board.Delete(t.ID); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
			r.println("Deleted:", t.Text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "position refers to the backlog")
	return cmd
}

func (r *root) tasksMvCmd() *cobra.Command {
	var backlog bool
	cmd := &cobra.Command{
		Use:   "mv <#|id>",
		Short: "Move a task between today and the backlog",
		Long: `Move a task from today's list to the backlog, or with --backlog from the
backlog to today. Today holds at most 10 open tasks.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if backlog {
				t, err := resolve(s.app.Board.Backlog.Items(), args[0])
				if err != nil {
					return err
				}
				if _, err := s.app.Board.MoveToToday(t.ID); err != nil {
					if errors.Is(err, lists.ErrTodayFull) {
						return fmt.Errorf("today already has %d open tasks: %w", lists.MaxOpenToday, err)
					}
					return fmt.Errorf("move task: %w", err)
				}
				r.println("Moved to today:", t.Text)
				return nil
			}
			t, err := resolve(s.app.Board.Today.Items(), args[0])
			if err != nil {
				return err
			}
			if _, err := s.app.Board.MoveToBacklog(t.ID); err != nil {
				return fmt.Errorf("move task: %w", err)
			}
			r.println("Moved to backlog:", t.Text)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "move from the backlog to today")
	return cmd
}

func (r *root) tasksOrderCmd() *cobra.Command {
	var backlog bool
	cmd := &cobra.Command{
		Use:     "order <#|id> <#|id>",
		Aliases: []string{"reorder"},
		Short:   "Move a task to another task's position",
		Example: `
jast tasks order 3 1
jast tasks order --backlog 4f2a 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			l := s.app.Board.Today
			if backlog {
				l = s.app.Board.Backlog
			}
			items := l.Items()
			drag, err := resolve(items, args[0])
			if err != nil {
				return err
			}
			target, err := resolve(items, args[1])
			if err != nil {
				return err
			}
			if err := l.MoveByID(drag.ID, target.ID); err != nil {
				return fmt.Errorf("reorder task: %w", err)
			}
			_, pos, _ := l.Find(drag.ID)
			r.printf("Moved %s to #%d\n", drag.Text, pos+1)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "positions refer to the backlog")
	return cmd
}

func (r *root) tasksEditCmd() *cobra.Command {
	var (
		backlog bool
		color   string
	)
	cmd := &cobra.Command{
		Use:   "edit <#|id> [text]",
		Short: "Change a task's text or color",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && color == "" {
				return errors.New("nothing to change: give new text or --color")
			}
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			l := s.app.Board.Today
			if backlog {
				l = s.app.Board.Backlog
			}
			t, err := resolve(l.Items(), args[0])
			if err != nil {
				return err
			}
			if len(args) > 1 {
				if t, err = s.app.Board.Edit(t.ID, strings.Join(args[1:], " ")); err != nil {
					return fmt.Errorf("edit task: %w", err)
				}
			}
			if color != "" {
				if t, err = s.app.Board.SetColor(t.ID, color); err != nil {
					return fmt.Errorf("edit task: %w", err)
				}
			}
			r.println("Updated:", t.Text, faint(lists.ColorName(t.Color)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&backlog, "backlog", "b", false, "position refers to the backlog")
	cmd.Flags().StringVarP(&color, "color", "c", "", "palette color name or hex")
	return cmd
}
