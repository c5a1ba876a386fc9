package wxminer

import (
	"fmt"

	"github.com/xleven/wxminer/internal/miner"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(accountCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "List wechat accounts found in the backup",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := miner.New(backupDir, udid, account)
		if err != nil {
			log.Err(err).Msg("failed to open backup")
			return
		}
		defer m.Close()

		users, err := m.ListAccounts()
		if err != nil {
			log.Err(err).Msg("failed to list accounts")
			return
		}

		selected := m.Account().UserName
		for _, user := range users {
			if user == selected {
				fmt.Printf("* %s (%s)\n", user, m.Account().NickName)
			} else {
				fmt.Printf("  %s\n", user)
			}
		}
	},
}
