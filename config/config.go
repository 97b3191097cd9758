package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Game     GameConfig     `mapstructure:"game"`
	Debug    bool           `mapstructure:"debug"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MetricsAddress string `mapstructure:"metrics_address"`
}

type DatabaseConfig struct {
	// Driver selects the persistence backend: "gorm", "postgres", or
	// "" to run without a database.
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
}

// GameConfig is the process-wide game configuration. All values are
// fixed at startup; rooms never override them.
type GameConfig struct {
	CanvasWidth       float64 `mapstructure:"canvas_width"`
	CanvasHeight      float64 `mapstructure:"canvas_height"`
	PaddleWidth       float64 `mapstructure:"paddle_width"`
	PaddleHeight      float64 `mapstructure:"paddle_height"`
	BallSize          float64 `mapstructure:"ball_size"`
	BallSpeed         float64 `mapstructure:"ball_speed"`
	PaddleSpeed       float64 `mapstructure:"paddle_speed"`
	WinningScore      int     `mapstructure:"winning_score"`
	CountdownSeconds  int     `mapstructure:"countdown_seconds"`
	TickRate          int     `mapstructure:"tick_rate"`
	RoomLingerMinutes int     `mapstructure:"room_linger_minutes"`
	RoomMaxAgeMinutes int     `mapstructure:"room_max_age_minutes"`
}

func setDefaults() {
	viper.SetDefault("server.http_address", ":8080")
	viper.SetDefault("server.rpc_address", ":8081")
	viper.SetDefault("server.metrics_address", ":9090")
	viper.SetDefault("database.driver", "")
	viper.SetDefault("database.postgres.host", "localhost")
	viper.SetDefault("database.postgres.port", 5432)
	viper.SetDefault("database.postgres.user", "postgres")
	viper.SetDefault("database.postgres.dbname", "pingpong")
	viper.SetDefault("debug", false)

	viper.SetDefault("game.canvas_width", 800)
	viper.SetDefault("game.canvas_height", 400)
	viper.SetDefault("game.paddle_width", 10)
	viper.SetDefault("game.paddle_height", 80)
	viper.SetDefault("game.ball_size", 10)
	viper.SetDefault("game.ball_speed", 5)
	viper.SetDefault("game.paddle_speed", 8)
	viper.SetDefault("game.winning_score", 5)
	viper.SetDefault("game.countdown_seconds", 5)
	viper.SetDefault("game.tick_rate", 60)
	viper.SetDefault("game.room_linger_minutes", 10)
	viper.SetDefault("game.room_max_age_minutes", 120)
}

// LoadConfig reads config.yaml from path if present and applies
// environment overrides. Missing files are fine; defaults cover
// everything.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	setDefaults()
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	return config, nil
}
