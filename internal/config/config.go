package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env-default:"9090"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env-default:"./gridlock.db"`
	JWTSecretKey      string `yaml:"jwt-secret-key"`
	Game              Game   `yaml:"game"`
	Rooms             Rooms  `yaml:"rooms"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Game struct {
	BoardSize int `yaml:"board-size" env-default:"3"`
}

// Rooms controls how long the directory keeps rooms around before the
// sweeper evicts them.
type Rooms struct {
	FinishedRetention time.Duration `yaml:"finished-retention" env-default:"2m"`
	WaitingTimeout    time.Duration `yaml:"waiting-timeout" env-default:"15m"`
	SweepInterval     time.Duration `yaml:"sweep-interval" env-default:"30s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
