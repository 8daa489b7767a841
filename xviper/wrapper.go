package xviper

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joshyorko/previewctl/common"
	"github.com/spf13/viper"
)

const (
	envPrefix = `PREVIEWCTL`
)

var (
	lock     sync.RWMutex
	config   *viper.Viper
	filename string
	defaults = make(map[string]interface{})
)

func init() {
	config = fresh()
}

func fresh() *viper.Viper {
	result := viper.New()
	result.SetConfigType("yaml")
	result.SetEnvPrefix(envPrefix)
	result.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	result.AutomaticEnv()
	for key, value := range defaults {
		result.SetDefault(key, value)
	}
	return result
}

// SetConfigFile points the settings at a yaml file. A missing file is fine,
// it is created on the first Set.
func SetConfigFile(location string) {
	lock.Lock()
	defer lock.Unlock()

	filename = location
	config = fresh()
	config.SetConfigFile(location)
	_, err := os.Stat(location)
	if err != nil {
		common.Trace("Settings file %q not available: %v", location, err)
		return
	}
	err = config.ReadInConfig()
	if err != nil {
		common.Error("settings", err)
	}
}

func ConfigFileUsed() string {
	lock.RLock()
	defer lock.RUnlock()
	return filename
}

func SetDefault(key string, value interface{}) {
	lock.Lock()
	defer lock.Unlock()
	defaults[key] = value
	config.SetDefault(key, value)
}

func Set(key string, value interface{}) error {
	lock.Lock()
	defer lock.Unlock()

	config.Set(key, value)
	if len(filename) == 0 {
		return nil
	}
	err := os.MkdirAll(filepath.Dir(filename), 0o750)
	if err != nil {
		return err
	}
	return config.WriteConfigAs(filename)
}

func IsSet(key string) bool {
	lock.RLock()
	defer lock.RUnlock()
	return config.IsSet(key)
}

func GetString(key string) string {
	lock.RLock()
	defer lock.RUnlock()
	return config.GetString(key)
}

func GetBool(key string) bool {
	lock.RLock()
	defer lock.RUnlock()
	return config.GetBool(key)
}

func GetDuration(key string) time.Duration {
	lock.RLock()
	defer lock.RUnlock()
	return config.GetDuration(key)
}
