package db

type Config struct {
	File string `yaml:"file"`
}
