package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"cosign/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "sync vault decisions from the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logger.FromContext(ctx).WithField("backend", cfg.Backend)
		ctx = logger.WithContext(ctx, log)

		s := provideStores()
		defer s.Close()

		syncer := provideSyncer(s, provideDecisionService(s))
		if once, _ := cmd.Flags().GetBool("once"); once {
			return syncer.Sync(sessionContext(cmd))
		}

		log.Infoln("syncer started")
		return worker.Serve(ctx, syncer)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
	workerCmd.Flags().Bool("once", false, "sync once and exit")
}
