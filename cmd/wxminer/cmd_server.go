package wxminer

import (
	"github.com/xleven/wxminer/internal/miner"
	"github.com/xleven/wxminer/internal/wxminer/conf"
	"github.com/xleven/wxminer/internal/wxminer/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().StringVar(&serverAddr, "addr", "", "server address")
	serverCmd.Flags().StringVarP(&serverConfigDir, "config-dir", "c", "", "config dir")
}

var (
	serverAddr      string
	serverConfigDir string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP and MCP server",
	Run: func(cmd *cobra.Command, args []string) {
		cmdConf := make(map[string]any)
		if backupDir != "" {
			cmdConf["backup_dir"] = backupDir
		}
		if udid != "" {
			cmdConf["udid"] = udid
		}
		if account != "" {
			cmdConf["account"] = account
		}
		if serverAddr != "" {
			cmdConf["http_addr"] = serverAddr
		}
		if Debug {
			cmdConf["debug"] = true
		}

		config, _, err := conf.LoadServerConfig(serverConfigDir, cmdConf)
		if err != nil {
			log.Err(err).Msg("failed to load server config")
			return
		}

		m, err := miner.New(config.GetBackupDir(), config.GetUDID(), config.GetAccount())
		if err != nil {
			log.Err(err).Msg("failed to open backup")
			return
		}
		defer m.Close()

		if err := http.NewService(config, m).ListenAndServe(); err != nil {
			log.Err(err).Msg("failed to start server")
			return
		}
	},
}
