package config

import (
	"flag"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"localhost"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

type Rooms struct {
	// TTL is the staleness horizon for the eviction sweep.
	TTL           time.Duration `env:"ROOM_TTL" envDefault:"24h"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`
}

type WS struct {
	SendBuffer int `env:"WS_SEND_BUFFER" envDefault:"16"`
}

type Config struct {
	HTTP  HTTPServer
	Rooms Rooms
	WS    WS
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("%s err parsing env : %v", logtag, err)
	}

	log.Printf("%s backend config : %+v\n", logtag, cfg)
	return cfg
}
