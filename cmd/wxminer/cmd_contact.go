package wxminer

import (
	"fmt"
	"strings"

	"github.com/xleven/wxminer/internal/miner"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(contactCmd)
}

var contactCmd = &cobra.Command{
	Use:   "contact [keyword]",
	Short: "List contacts of the selected account",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := miner.New(backupDir, udid, account)
		if err != nil {
			log.Err(err).Msg("failed to open backup")
			return
		}
		defer m.Close()

		list, err := m.ListContact(strings.Join(args, " "))
		if err != nil {
			log.Err(err).Msg("failed to list contacts")
			return
		}

		fmt.Println("UserName,NickName,Alias,Gender")
		for _, contact := range list {
			fmt.Printf("%s,%s,%s,%d\n", contact.UserName, contact.NickName, contact.Alias, contact.Gender)
		}
	},
}
