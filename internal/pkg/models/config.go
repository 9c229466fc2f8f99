package models

// Config holds all configuration for the application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	Logger   LoggerConfig
	Wallet   WalletConfig
	Channels ChannelsConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Debug       bool   `json:"debug"`
	Version     string `json:"version"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	ReadTimeout     int    `json:"read_timeout"`
	WriteTimeout    int    `json:"write_timeout"`
	ShutdownTimeout int    `json:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL configuration for the ledger service
type DatabaseConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	SSLMode   string `json:"ssl_mode"`
	MaxConns  int    `json:"max_conns"`
	IdleConns int    `json:"idle_conns"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"pool_size"`
}

// NSQConfig holds NSQ producer configuration
type NSQConfig struct {
	Address string `json:"address"`
	Enabled bool   `json:"enabled"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level    string `json:"level"`
	FilePath string `json:"file_path"`
}

// WalletConfig holds device-side wallet configuration
type WalletConfig struct {
	Identity             string `json:"identity"`
	LedgerURL            string `json:"ledger_url"`
	StorePath            string `json:"store_path"`
	ProbeIntervalSeconds int    `json:"probe_interval_seconds"`
	ProbeTimeoutSeconds  int    `json:"probe_timeout_seconds"`
}

// ChannelProfile is a key-derivation input pair for one transport channel
type ChannelProfile struct {
	Secret string `json:"secret"`
	Salt   string `json:"salt"`
}

// ChannelsConfig holds the per-channel encryption profiles
type ChannelsConfig struct {
	QR        ChannelProfile `json:"qr"`
	NFC       ChannelProfile `json:"nfc"`
	Bluetooth ChannelProfile `json:"bluetooth"`
}
