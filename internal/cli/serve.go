package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alixocracy/jast/internal/mailer"
)

func (r *root) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Relay summary emails over HTTP",
		Long: `Serve POST ` + mailer.SummaryPath + `, which accepts a summary payload and
sends it through Resend. Point other installs at it with mail.mode: endpoint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := r.open()
			if err != nil {
				return err
			}
			defer s.Close()

			sender := r.opts.Sender
			if sender == nil {
				relay := s.cfg.Mail
				relay.Mode = mailer.ModeResend
				if sender, err = mailer.New(relay, mailer.NewLogObserver(s.log)); err != nil {
					return err
				}
			}
			if addr == "" {
				addr = s.cfg.ServeAddr
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			srv := &http.Server{
				Handler:           mailer.Handler(sender, s.log),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx := cmd.Context()
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
			}()

			s.log.Info("summary relay listening", "addr", ln.Addr().String())
			r.printf("Listening on http://%s%s\n", ln.Addr(), mailer.SummaryPath)
			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default serve.addr)")
	return cmd
}
