package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tweets-stream/reporter/src/report"
	"github.com/tweets-stream/reporter/src/utils/config"
	"github.com/tweets-stream/reporter/src/utils/logger"
	"github.com/tweets-stream/reporter/src/utils/model"

	"github.com/spf13/cobra"
)

var (
	RootCmd = &cobra.Command{
		Use:   "reporter",
		Short: "Counts rows of tweet streams, appends them to CSV files and renders a status page",

		// All child commands will use this
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			// Setup a context that gets cancelled upon SIGINT
			ctx, cancel = context.WithCancel(context.Background())

			signalChannel = make(chan os.Signal, 1)
			signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)
			go func() {
				select {
				case <-signalChannel:
					cancel()
				case <-ctx.Done():
				}
			}()

			// Load configuration
			conf, err = config.Load(cfgFile)
			if err != nil {
				return report.NewError(report.KindConfiguration, "", err)
			}

			// Setup logging
			err = logger.Init(conf)
			if err != nil {
				return report.NewError(report.KindConfiguration, "", err)
			}
			return
		},

		// One report per invocation, scheduling is done outside
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			err = conf.Validate()
			if err != nil {
				return report.NewError(report.KindConfiguration, "", err)
			}

			db, err := model.NewConnection(ctx, conf, "reporter")
			if err != nil {
				return report.NewError(report.KindConnectivity, "", err)
			}
			defer model.Close(db)

			_, err = report.NewController(conf).
				WithCounter(report.NewStore().WithDB(db)).
				Run(ctx)
			return
		},

		PersistentPostRunE: func(cmd *cobra.Command, args []string) (err error) {
			signal.Stop(signalChannel)
			cancel()
			log := logger.NewSublogger("root-cmd")
			log.Debug("Finished")
			return
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
	}

	// Configuration
	conf    *config.Config
	cfgFile string

	// Context setup
	ctx           context.Context
	cancel        context.CancelFunc
	signalChannel chan os.Signal
)

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration file path")
}
