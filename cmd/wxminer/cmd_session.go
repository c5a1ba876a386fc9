package wxminer

import (
	"fmt"

	"github.com/xleven/wxminer/internal/miner"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "List recent sessions of the selected account",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := miner.New(backupDir, udid, account)
		if err != nil {
			log.Err(err).Msg("failed to open backup")
			return
		}
		defer m.Close()

		sessions, err := m.GetSessions()
		if err != nil {
			log.Err(err).Msg("failed to list sessions")
			return
		}

		for _, session := range sessions {
			fmt.Print(session.PlainText())
		}
	},
}
