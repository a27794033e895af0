package server

import (
	"time"
)

type Conf struct {
	Addr         string        `mapstructure:"addr"`
	TimeoutRead  time.Duration `mapstructure:"read_timeout"`
	TimeoutWrite time.Duration `mapstructure:"write_timeout"`
	TimeoutIdle  time.Duration `mapstructure:"idle_timeout"`
	// MaxUpload bounds the multipart form accepted by the call route.
	MaxUpload int64 `mapstructure:"max_upload"`
}

// ServerConfigs returns the defaults. The write timeout has to outlast the
// backend call timeout, since a call is answered on the same request.
func ServerConfigs() *Conf {
	return &Conf{
		Addr:         "localhost:9090",
		TimeoutRead:  time.Second * 30,
		TimeoutWrite: time.Second * 90,
		TimeoutIdle:  time.Second * 30,
		MaxUpload:    64 << 20,
	}
}
