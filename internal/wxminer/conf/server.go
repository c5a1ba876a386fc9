package conf

const (
	DefaultHTTPAddr = "127.0.0.1:5030"
)

type ServerConfig struct {
	BackupDir string `mapstructure:"backup_dir"`
	UDID      string `mapstructure:"udid"`
	Account   string `mapstructure:"account"`
	HTTPAddr  string `mapstructure:"http_addr"`
	Debug     bool   `mapstructure:"debug"`
}

var ServerDefaults = map[string]any{
	"http_addr": DefaultHTTPAddr,
}

func (c *ServerConfig) GetBackupDir() string {
	return c.BackupDir
}

func (c *ServerConfig) GetUDID() string {
	return c.UDID
}

func (c *ServerConfig) GetAccount() string {
	return c.Account
}

func (c *ServerConfig) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		c.HTTPAddr = DefaultHTTPAddr
	}
	return c.HTTPAddr
}
