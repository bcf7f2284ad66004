package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rolodex",
		Short: "A web-based contact address book",
		Long: `Rolodex: a self-hosted contact address book served as plain HTML.

Rolodex keeps contacts in a single SQLite file (or PostgreSQL), renders
server-side forms for creating, editing, deleting, and spam-flagging them,
and gates all changes behind a login session. A seed admin account is
provisioned the first time it starts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./rolodex.yaml)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))
	cmd.AddCommand(newAccountCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rolodex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.rolodex")
	}

	viper.SetEnvPrefix("ROLODEX")
	viper.AutomaticEnv()
	viper.ReadInConfig() // config file is optional
}
