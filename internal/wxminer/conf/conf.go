package conf

import (
	"encoding/json"
	"os"

	"github.com/xleven/wxminer/pkg/config"

	"github.com/rs/zerolog/log"
)

const (
	AppName          = "wxminer"
	ServerConfigName = "wxminer-server"
	EnvPrefix        = "WXMINER"
	EnvConfigDir     = "WXMINER_DIR"
)

// LoadServerConfig 加载服务配置，cmdConf 为命令行覆盖项
func LoadServerConfig(configPath string, cmdConf map[string]any) (*ServerConfig, *config.Manager, error) {

	if configPath == "" {
		configPath = os.Getenv(EnvConfigDir)
	}

	scm, err := config.New(AppName, configPath, ServerConfigName, EnvPrefix, false)
	if err != nil {
		log.Error().Err(err).Msg("load server config failed")
		return nil, nil, err
	}

	conf := &ServerConfig{}
	config.SetDefaults(scm.Viper, ServerDefaults)

	for key, value := range cmdConf {
		scm.SetConfig(key, value)
	}

	if err := scm.Load(conf); err != nil {
		log.Error().Err(err).Msg("load server config failed")
		return nil, nil, err
	}

	b, _ := json.Marshal(conf)
	log.Info().Msgf("server config: %s", string(b))

	return conf, scm, nil
}
