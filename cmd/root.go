package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cosign/config"
	"cosign/core"

	"github.com/fox-one/pkg/logger"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

var (
	cfgFile     string
	cfg         config.Config
	debugMode   bool
	principal   string
	initialized bool
)

var rootCmd = cobra.Command{
	Use:           "cosign",
	Short:         "multi-signature vaults: propose, approve, execute",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig, initLogging, initDone)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file, ~/.cosign.yaml when present")
	flags.BoolVar(&debugMode, "debug", false, "debug logging")
	flags.StringVar(&principal, "as", os.Getenv("COSIGN_PRINCIPAL"), "principal acting in vault and proposal commands")
}

// Execute run the command picked by os.Args
func Execute(ver string) {
	rootCmd.Version = ver
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// defaultConfigFile ~/.cosign.yaml, empty if missing
func defaultConfigFile() string {
	dir, err := homedir.Dir()
	if err != nil {
		logrus.WithError(err).Warnln("resolve home dir")
		return ""
	}

	filename := filepath.Join(dir, ".cosign.yaml")
	if info, err := os.Stat(filename); err != nil || info.IsDir() {
		return ""
	}

	return filename
}

func initConfig() {
	if initialized {
		return
	}

	if cfgFile == "" {
		cfgFile = defaultConfigFile()
	}

	if err := config.Load(cfgFile, &cfg); err != nil {
		logrus.WithError(err).Fatalln("load config", cfgFile)
	}
}

func initLogging() {
	if initialized {
		return
	}

	level := logrus.InfoLevel
	if debugMode {
		level = logrus.DebugLevel
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Debugln("backend", cfg.Backend, "config", cfgFile)

	structs.DefaultTagName = "json"
}

func initDone() {
	initialized = true
}

// sessionContext command context acting as the --as principal
func sessionContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	log := logger.FromContext(ctx).WithField("backend", cfg.Backend)
	if principal != "" {
		ctx = core.WithSession(ctx, &core.Session{Principal: principal})
		log = log.WithField("principal", principal)
	}

	return logger.WithContext(ctx, log)
}
