package wxminer

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Debug bool

func initLog(cmd *cobra.Command, args []string) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logrus.SetLevel(logrus.WarnLevel)

	if Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logrus.SetLevel(logrus.DebugLevel)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logrus.SetOutput(os.Stderr)
}
