package wxminer

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	// windows only
	cobra.MousetrapHelpText = ""

	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "debug")
	rootCmd.PersistentFlags().StringVarP(&backupDir, "backup-dir", "b", "", "iTunes backup dir, defaults to the system backup location")
	rootCmd.PersistentFlags().StringVarP(&udid, "udid", "u", "", "device udid, required when multiple devices exist")
	rootCmd.PersistentFlags().StringVarP(&account, "account", "a", "", "wechat account, defaults to the first one found")
	rootCmd.PersistentPreRun = initLog
}

var (
	backupDir string
	udid      string
	account   string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("command execution failed")
	}
}

var rootCmd = &cobra.Command{
	Use:     "wxminer",
	Short:   "wxminer",
	Long:    `wxminer mines wechat chat history from itunes backups`,
	Example: `wxminer chatlog -b ~/backup 张三`,
	Args:    cobra.MinimumNArgs(0),
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}
