// Package conf contains the pngme configuration.
package conf

import (
	"fmt"
	"os"

	"github.com/bluenviron/pngme/internal/conf/decrypt"
	"github.com/bluenviron/pngme/internal/conf/env"
	"github.com/bluenviron/pngme/internal/conf/yamlwrapper"
	"github.com/bluenviron/pngme/internal/logger"
)

// EnvPrefix is the prefix of environment variables that override the configuration.
const EnvPrefix = "PNGME"

func firstThatExists(paths []string) string {
	for _, pa := range paths {
		_, err := os.Stat(pa)
		if err == nil {
			return pa
		}
	}
	return ""
}

// Conf is the pngme configuration.
type Conf struct {
	LogLevel        LogLevel        `json:"logLevel"`
	LogDestinations LogDestinations `json:"logDestinations"`
	LogFile         string          `json:"logFile"`
	MaxFileSize     StringSize      `json:"maxFileSize"`
	RunOnWrite      string          `json:"runOnWrite"`
}

func (conf *Conf) setDefaults() {
	conf.LogLevel = LogLevel(logger.Info)
	conf.LogDestinations = LogDestinations{logger.DestinationStderr}
	conf.LogFile = "pngme.log"
	conf.MaxFileSize = 50 * 1024 * 1024
}

// Load loads a Conf.
// When fpath is empty, the first existing path of defaultConfPaths is used;
// if none exists, defaults are used.
func Load(fpath string, defaultConfPaths []string) (*Conf, string, error) {
	conf := &Conf{}

	fpath, err := conf.loadFromFile(fpath, defaultConfPaths)
	if err != nil {
		return nil, "", err
	}

	err = env.Load(EnvPrefix, conf)
	if err != nil {
		return nil, "", err
	}

	err = conf.Validate()
	if err != nil {
		return nil, "", err
	}

	return conf, fpath, nil
}

func (conf *Conf) loadFromFile(fpath string, defaultConfPaths []string) (string, error) {
	conf.setDefaults()

	if fpath == "" {
		fpath = firstThatExists(defaultConfPaths)

		// when the configuration file is not explicitly set,
		// it is optional.
		if fpath == "" {
			return "", nil
		}
	}

	byts, err := os.ReadFile(fpath)
	if err != nil {
		return "", err
	}

	if key, ok := os.LookupEnv(EnvPrefix + "_CONFKEY"); ok {
		byts, err = decrypt.Decrypt(key, byts)
		if err != nil {
			return "", err
		}
	}

	err = yamlwrapper.Unmarshal(byts, conf)
	if err != nil {
		return "", err
	}

	return fpath, nil
}

// Validate checks the configuration for errors.
func (conf *Conf) Validate() error {
	if len(conf.LogDestinations) == 0 {
		return fmt.Errorf("'logDestinations' must contain at least one destination")
	}

	for _, d := range conf.LogDestinations {
		if d == logger.DestinationFile && conf.LogFile == "" {
			return fmt.Errorf("'logFile' must be set when logging to file")
		}
	}

	if conf.MaxFileSize == 0 {
		return fmt.Errorf("'maxFileSize' must be greater than zero")
	}

	return nil
}
