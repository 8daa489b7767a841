package common

import (
	"os"
	"path/filepath"
)

const (
	PREVIEWCTL_HOME_VARIABLE = `PREVIEWCTL_HOME`
	SETTINGS_FILENAME        = `previewctl.yaml`

	defaultHomeLocation = "$HOME/.previewctl"
)

type (
	ProductStrategy interface {
		Name() string
		ForceHome(string)
		HomeVariable() string
		Home() string
		SettingsFile() string
	}

	previewStrategy struct {
		forcedHome string
	}
)

var Strategy ProductStrategy = PreviewMode()

func PreviewMode() ProductStrategy {
	return &previewStrategy{}
}

func ExpandPath(entry string) string {
	intermediate := os.ExpandEnv(entry)
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}

func (it *previewStrategy) Name() string {
	return Product
}

func (it *previewStrategy) ForceHome(value string) {
	it.forcedHome = value
}

func (it *previewStrategy) HomeVariable() string {
	return PREVIEWCTL_HOME_VARIABLE
}

func (it *previewStrategy) Home() string {
	if len(it.forcedHome) > 0 {
		return ExpandPath(it.forcedHome)
	}
	home := os.Getenv(PREVIEWCTL_HOME_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	return ExpandPath(defaultHomeLocation)
}

func (it *previewStrategy) SettingsFile() string {
	return filepath.Join(it.Home(), SETTINGS_FILENAME)
}
