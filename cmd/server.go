package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosign/config"
	"cosign/handler"
	"cosign/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run cosign api server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		ctx = logger.WithContext(ctx, logger.FromContext(ctx).WithField("backend", cfg.Backend))

		s := provideStores()
		defer s.Close()

		decisionz := provideDecisionService(s)
		walletz := provideWalletService(s, decisionz)

		svr := handler.Server{
			Version:   rootCmd.Version,
			Backend:   cfg.Backend,
			Vaults:    s.Vaults,
			Signers:   s.Signers,
			Proposals: s.Proposals,
			Decisionz: decisionz,
			Walletz:   walletz,
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: svr.Handler(),
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logrus.Infoln("serve at", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			return nil
		})

		g.Go(func() error {
			<-ctx.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
				return err
			}

			return nil
		})

		if sync, _ := cmd.Flags().GetBool("sync"); sync && cfg.Backend == config.BackendLedger {
			g.Go(func() error {
				return worker.Serve(ctx, provideSyncer(s, decisionz))
			})
		}

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("sync", true, "sync decisions from the ledger in the background")
}
