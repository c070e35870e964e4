// Package config is engine configuration: which storage backend to
// open and where its data lives, loaded from an HCL file.
package config

import (
	"fmt"
	"io/ioutil"

	"github.com/hashicorp/hcl"
	log "github.com/sirupsen/logrus"

	"github.com/sievedb/sieve/storage"
	"github.com/sievedb/sieve/storage/keyval"
	"github.com/sievedb/sieve/storage/memkv"
)

type Config struct {
	Storage string `hcl:"storage"`
	DataDir string `hcl:"data_dir"`
	Sync    bool   `hcl:"sync"`
}

var configVars = map[string]struct{}{
	"storage":  {},
	"data_dir": {},
	"sync":     {},
}

func Default() Config {
	return Config{
		Storage: "memkv",
		DataDir: "data",
		Sync:    false,
	}
}

// Parse decodes an HCL config body over the defaults.
func Parse(b []byte) (*Config, error) {
	var vars map[string]interface{}
	err := hcl.Decode(&vars, string(b))
	if err != nil {
		return nil, err
	}
	for name := range vars {
		if _, ok := configVars[name]; !ok {
			return nil, fmt.Errorf("config: %s is not a config variable", name)
		}
	}

	cfg := Default()
	err = hcl.Decode(&cfg, string(b))
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Load(filename string) (*Config, error) {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// OpenStore opens the storage backend the config names. The logger is
// passed through to backends that log.
func OpenStore(cfg *Config, logger *log.Logger) (storage.Store, error) {
	switch cfg.Storage {
	case "memkv":
		return memkv.NewStore(), nil
	case "bbolt":
		kv, err := keyval.MakeBBoltKV(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return keyval.NewStore(kv, cfg.Sync), nil
	case "badger":
		kv, err := keyval.MakeBadgerKV(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		return keyval.NewStore(kv, cfg.Sync), nil
	case "pebble":
		kv, err := keyval.MakePebbleKV(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		return keyval.NewStore(kv, cfg.Sync), nil
	}
	return nil, fmt.Errorf("config: unknown storage backend: %s", cfg.Storage)
}
