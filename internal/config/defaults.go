package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultConfigPath      = "~/.config/mbdiscid/config.toml"
	projectConfigName      = "mbdiscid.toml"
	defaultProvider        = ProviderAuto
	defaultCDDiscIDBinary  = "cd-discid"
	defaultDebounceSeconds = 2
	defaultLogFormat       = "auto"
	defaultLogLevel        = "warn"

	providerEnvVar = "MBDISCID_PROVIDER"
)

// Provider names accepted in discid.provider.
const (
	ProviderAuto      = "auto"
	ProviderLibdiscid = "libdiscid"
	ProviderLinux     = "linux"
	ProviderCDDiscID  = "cd-discid"
)

// ProviderNames lists the concrete providers in auto-selection order.
var ProviderNames = []string{ProviderLibdiscid, ProviderLinux, ProviderCDDiscID}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DiscID: DiscID{
			Provider:       defaultProvider,
			CDDiscIDBinary: defaultCDDiscIDBinary,
		},
		Watch: Watch{
			LockDir:         defaultLockDir(),
			DebounceSeconds: defaultDebounceSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultLockDir() string {
	if base, ok := os.LookupEnv("XDG_RUNTIME_DIR"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "mbdiscid")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mbdiscid")
	}
	return filepath.Join(home, ".local", "state", "mbdiscid")
}
