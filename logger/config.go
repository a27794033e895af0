package logger

import (
	"errors"
	"log"

	"github.com/joeshaw/envdecode"
)

type Conf struct {
	LogDir string `env:"AIWEB_LOG_DIR"`
	Level  string `env:"AIWEB_LOG_LEVEL,default=info"`
}

// LogConfig reads the logger settings from the environment. Both fields are
// optional; an unset AIWEB_LOG_DIR keeps logging on stderr only.
func LogConfig() *Conf {
	configs := &Conf{Level: "info"}

	if err := envdecode.Decode(configs); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		log.Fatalf("failed to decode log config from environment: %s", err)
	}

	return configs
}
