package wxminer

import (
	"fmt"
	"strings"

	"github.com/xleven/wxminer/internal/miner"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chatroomCmd)
}

var chatroomCmd = &cobra.Command{
	Use:   "chatroom [keyword]",
	Short: "List chat rooms of the selected account",
	Run: func(cmd *cobra.Command, args []string) {
		m, err := miner.New(backupDir, udid, account)
		if err != nil {
			log.Err(err).Msg("failed to open backup")
			return
		}
		defer m.Close()

		list, err := m.ListChatRoom(strings.Join(args, " "))
		if err != nil {
			log.Err(err).Msg("failed to list chat rooms")
			return
		}

		fmt.Println("UserName,NickName,Founder,MemberCount")
		for _, room := range list {
			fmt.Printf("%s,%s,%s,%d\n", room.UserName, room.NickName, room.Founder, len(room.Members))
		}
	},
}
