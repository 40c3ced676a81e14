package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/riubs/rental-service/internal/augment"
	"github.com/riubs/rental-service/internal/cache"
	"github.com/riubs/rental-service/pkg/authgw"
	"github.com/riubs/rental-service/pkg/kafka"
	"github.com/riubs/rental-service/pkg/logger"
	"github.com/riubs/rental-service/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Seed struct {
	Attempts int           `yaml:"attempts" envconfig:"SEED_ATTEMPTS" default:"5"`
	Delay    time.Duration `yaml:"delay" envconfig:"SEED_DELAY" default:"5s"`
}

type Config struct {
	Server   HTTPServer `yaml:"server"`
	Database postgres.Database
	Cache    cache.Config
	Kafka    kafka.Config
	Augment  augment.Config
	Auth     authgw.Config
	Seed     Seed
	Log      logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
