package wxminer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xleven/wxminer/internal/miner"
	"github.com/xleven/wxminer/internal/model"
	"github.com/xleven/wxminer/pkg/util"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(chatlogCmd)
	chatlogCmd.Flags().StringVarP(&chatlogStart, "start", "s", "", "start day, e.g. 2023-04-01")
	chatlogCmd.Flags().StringVarP(&chatlogEnd, "end", "e", "", "end day (inclusive), defaults to today")
	chatlogCmd.Flags().StringVarP(&chatlogOutput, "output", "o", "", "write csv to file, .gz suffix enables gzip")
}

var (
	chatlogStart  string
	chatlogEnd    string
	chatlogOutput string
)

var chatlogCmd = &cobra.Command{
	Use:   "chatlog <talker>",
	Short: "Dump chat history with a contact or chat room",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := miner.New(backupDir, udid, account)
		if err != nil {
			log.Err(err).Msg("failed to open backup")
			return
		}
		defer m.Close()

		talkers := util.Str2List(strings.Join(args, ","), ",")
		messages := make([]*model.Message, 0)
		for _, talker := range talkers {
			list, err := m.GetMessages(talker, chatlogStart, chatlogEnd)
			if err != nil {
				log.Err(err).Str("talker", talker).Msg("failed to get messages")
				return
			}
			messages = append(messages, list...)
		}

		if chatlogOutput != "" {
			if err := exportCSV(chatlogOutput, messages); err != nil {
				log.Err(err).Msg("failed to export csv")
			}
			return
		}

		for _, msg := range messages {
			fmt.Print(msg.PlainText(len(talkers) > 1, "2006-01-02 15:04:05"))
			fmt.Println()
		}
	},
}

// exportCSV 落盘聊天记录，文件名以 .gz 结尾时透明压缩
func exportCSV(path string, messages []*model.Message) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	var w io.Writer = fd
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(fd)
		defer gz.Close()
		w = gz
	}

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write([]string{"Time", "SenderName", "Sender", "TalkerName", "Talker", "Content"}); err != nil {
		return err
	}
	for _, msg := range messages {
		if err := csvWriter.Write(msg.CSV()); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
