package server

import (
	"time"
)

type Config struct {
	Port                 int           `yaml:"port"`
	Host                 string        `yaml:"host"`
	AntidosBuckets       int           `yaml:"antidosBuckets"`
	AntidosPeriod        time.Duration `yaml:"antidosPeriod"`
	AntidosMaxConcurrent int           `yaml:"antidosMaxConcurrent"`
	DataDir              string        `yaml:"dataDir"`
	ShutdownTimeout      time.Duration `yaml:"shutdownTimeout"`
	AdminKey             string        `yaml:"adminKey"`

	TLSCertFile       string        `yaml:"tlsCertFile"`
	TLSKeyFile        string        `yaml:"tlsKeyFile"`
	TLSReloadInterval time.Duration `yaml:"tlsReloadInterval"`

	SearchWorkers int           `yaml:"searchWorkers"`
	SearchTimeout time.Duration `yaml:"searchTimeout"`
	MaxCiphertext int           `yaml:"maxCiphertext"`
	MaxShifts     int           `yaml:"maxShifts"`
}
