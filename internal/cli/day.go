package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alixocracy/jast/internal/export"
	"github.com/Alixocracy/jast/internal/mailer"
	"github.com/Alixocracy/jast/internal/summary"
)

func (r *root) summaryCmd() *cobra.Command {
	var html bool
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the end-of-day summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			d := s.app.Day()
			if !html {
				r.printf("%s", summary.Markdown(d))
				return nil
			}
			out, err := summary.HTML(d)
			if err != nil {
				return err
			}
			r.println(out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "print the email body instead of Markdown")
	return cmd
}

func (r *root) sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <email>",
		Short: "Email the end-of-day summary",
		Long: `Email the end-of-day summary, either through Resend (mail.resend_api_key)
or through a summary relay such as "jast serve" (mail.mode: endpoint).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := mailer.ValidateEmail(args[0]); err != nil {
				return err
			}
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			sender := r.sender(s)
			if sender == nil {
				return fmt.Errorf("send summary: %w (set mail.resend_api_key or mail.endpoint)", mailer.ErrNotConfigured)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.Mail.Timeout)
			defer cancel()

			res, err := sender.Send(ctx, mailer.NewPayload(args[0], s.app.Day()))
			if err != nil {
				return fmt.Errorf("send summary: %w", err)
			}
			if res != nil && res.ID != "" {
				r.println("Summary sent to", args[0], faint("("+res.ID+")"))
			} else {
				r.println("Summary sent to", args[0])
			}
			return nil
		},
	}
}

func (r *root) exportCmd() *cobra.Command {
	var (
		format string
		dir    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the end-of-day summary to a file",
		Example: `
jast export
jast export --format pdf --dir ~/Documents
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			path, err := export.Write(s.app.Day(), f, dir)
			if err != nil {
				return err
			}
			r.println("Exported to", path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.Markdown), "md, pdf, csv or json")
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "output directory")
	return cmd
}

func (r *root) newDayCmd() *cobra.Command {
	var (
		yes         bool
		clearUndone bool
	)
	cmd := &cobra.Command{
		Use:   "newday",
		Short: "Start a new day",
		Long: `Start a new day: completed tasks leave today's list, the brain dump is
cleared and points reset to 0. Unfinished tasks stay unless --clear-undone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("starting a new day cannot be undone; pass --yes")
			}
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.app.EndOfDay(!clearUndone); err != nil {
				return err
			}
			r.println("New day started. You've got this!")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm")
	cmd.Flags().BoolVar(&clearUndone, "clear-undone", false, "drop unfinished tasks too")
	return cmd
}
