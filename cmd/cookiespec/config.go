package main

import (
	"github.com/always-cache/cookiespec"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// appFs backs every file the CLI reads.
var appFs afero.Fs = afero.NewOsFs()

type Config struct {
	Origin          cookiespec.Origin `yaml:"origin"`
	EmptyCookieName string            `yaml:"emptyCookieName"`
	DB              string            `yaml:"db"`
	Port            int               `yaml:"port"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := afero.ReadFile(appFs, filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}
