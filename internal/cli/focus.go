package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/timer"
)

var (
	// tickEvery is one countdown second.
	tickEvery = time.Second
	// bellOut receives the end-of-session bell.
	bellOut io.Writer = os.Stderr
)

// alarmTail is how long the alarm keeps repeating after expiry.
func alarmTail() time.Duration {
	if len(timer.RepeatDelays) == 0 {
		return 0
	}
	return timer.RepeatDelays[len(timer.RepeatDelays)-1] + 250*time.Millisecond
}

func (r *root) focusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "focus",
		Short: "Show today's focus sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			n, total, err := s.app.FocusStats()
			if err != nil {
				return err
			}
			r.printf("%s sessions, %s focused today\n", bold(n), bold(total.Round(time.Minute)))
			return nil
		},
	}

	var quiet bool
	run := &cobra.Command{
		Use:   "run [minutes]",
		Short: "Run a focus countdown in the terminal",
		Long: `Run a focus countdown in the terminal. A countdown that reaches zero is
recorded and earns points; interrupt with ctrl+c to stop early.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes := 0
			if len(args) == 1 {
				m, err := strconv.Atoi(args[0])
				if err != nil || m < 1 {
					return fmt.Errorf("minutes %q: want a positive whole number", args[0])
				}
				minutes = m
			}
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			var alarm timer.Alarm
			if !quiet {
				alarm = &timer.Bell{W: bellOut}
			}
			t := s.app.NewTimer(minutes, alarm)
			t.Start()
			r.printf("Focusing on %s\n", orNone(s.app.CurrentTask()))

			ticker := time.NewTicker(tickEvery)
			defer ticker.Stop()
			for {
				r.printf("\r%s ", timer.FormatClock(t.Remaining()))
				select {
				case <-cmd.Context().Done():
					r.printf("\nStopped with %s left\n", timer.FormatClock(t.Remaining()))
					return nil
				case <-ticker.C:
					if !t.Tick() {
						continue
					}
					r.printf("\r%s\n", green(fmt.Sprintf("Session complete! +%d points", points.FocusSessionPoints)))
					if alarm != nil {
						wait := time.NewTimer(alarmTail())
						select {
						case <-wait.C:
						case <-cmd.Context().Done():
							wait.Stop()
							t.CancelAlarm()
						}
					}
					return nil
				}
			}
		},
	}
	run.Flags().BoolVarP(&quiet, "quiet", "q", false, "no bell at the end")

	cmd.AddCommand(run)
	return cmd
}
