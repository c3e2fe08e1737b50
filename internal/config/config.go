package config

import (
	"errors"
	"fmt"
	"time"

	"cognitive-crawler/pkg/dungeon"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска.
type Config struct {
	// Seed - мастер-зерно забега. От него зависят все уровни:
	// сид уровня N = Mix(Seed + N). 0 означает "взять из часов".
	Seed uint64 `env:"CRAWLER_SEED" envDefault:"0"`

	// Сохранения
	SaveDB   string `env:"CRAWLER_SAVE_DB" envDefault:"crawler.db"`
	SaveSlot string `env:"CRAWLER_SAVE_SLOT" envDefault:"default"`

	// Размер уровня
	MapWidth  int `env:"CRAWLER_MAP_WIDTH" envDefault:"80"`
	MapHeight int `env:"CRAWLER_MAP_HEIGHT" envDefault:"43"`

	// Логи
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"CRAWLER_LOG_FILE" envDefault:"crawler.log"`

	// WebSocket-мост
	Port string `env:"CD_PORT" envDefault:"8080"`
}

// Минимальный размер карты, при котором генератор укладывает
// MinRooms комнат.
const (
	MinMapWidth  = dungeon.MinWidth
	MinMapHeight = dungeon.MinHeight
)

// ParseEnv загружает конфигурацию из переменных окружения.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load читает окружение и проверяет значения. Нулевой сид остается
// нулем: флаги могут его переопределить, поэтому ResolveSeed
// вызывается после разбора флагов.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ResolveSeed заменяет нулевой сид значением из часов.
func (c *Config) ResolveSeed() {
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
}

// Validate проверяет значения, которые нельзя описать тегами.
func (c Config) Validate() error {
	if c.MapWidth < MinMapWidth || c.MapHeight < MinMapHeight {
		return fmt.Errorf("map size %dx%d is below minimum %dx%d", c.MapWidth, c.MapHeight, MinMapWidth, MinMapHeight)
	}
	if c.SaveSlot == "" {
		return errors.New("save slot must not be empty")
	}
	return nil
}
