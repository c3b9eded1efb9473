package cmd

import (
	"github.com/tweets-stream/reporter/src/report"
	"github.com/tweets-stream/reporter/src/utils/model"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Creates stream tables in a development database",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		err = conf.ValidateDatabase()
		if err != nil {
			return report.NewError(report.KindConfiguration, "", err)
		}

		// Regular credentials are used unless a dedicated migration user is configured
		user, password := conf.Database.User, conf.Database.Password
		if conf.Database.MigrationUser != "" {
			user, password = conf.Database.MigrationUser, conf.Database.MigrationPassword
		}

		err = model.MigrateWith(ctx, &conf.Database, user, password)
		if err != nil {
			return report.NewError(report.KindConnectivity, "", err)
		}
		return
	},
}
