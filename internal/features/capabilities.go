package features

import (
	"os"
	"strconv"

	"github.com/wilbur182/flagreg/internal/config"
)

// DebugEnvVar forces the debug runtime when set to a true value.
const DebugEnvVar = "FLAGREG_DEBUG"

// Capabilities are the environment-determined inputs read when flags are
// constructed.
type Capabilities struct {
	// DebugRuntime selects DebugFlag over StaticFlag.
	DebugRuntime bool
	// DeveloperOptions is the user-level setting that, together with
	// DebugRuntime, exposes flags for interactive toggling.
	DeveloperOptions bool
}

// ShowTogglerUI reports whether flags should be exposed for interactive toggling.
func (c Capabilities) ShowTogglerUI() bool {
	return c.DebugRuntime && c.DeveloperOptions
}

// DetectCapabilities derives capabilities from the build, the environment and cfg.
func DetectCapabilities(cfg config.RuntimeConfig) Capabilities {
	return Capabilities{
		DebugRuntime:     debugBuild || cfg.Debug || envEnabled(DebugEnvVar),
		DeveloperOptions: cfg.DeveloperOptions,
	}
}

func envEnabled(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}
