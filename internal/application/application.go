package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "curatr"

	// AppExeName is the executable name (without extension)
	AppExeName = "curatr"

	// AppExeNameWindows is the executable name on Windows
	AppExeNameWindows = "curatr.exe"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the curatr configuration directory path.
// Linux: ~/.config/curatr (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\curatr (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, errDir
}

func lazyLoad() {
	var base string

	var err error

	if runtime.GOOS == "windows" {
		base, err = os.UserCacheDir()
	} else {
		base, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("resolve user config dir: %w", err)

		return
	}

	appDir = filepath.Join(base, AppName)
	errDir = os.MkdirAll(appDir, 0o755)
}
