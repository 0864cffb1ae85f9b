package cli

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/pluqqy/pluqqy-code/pkg/models"
)

// logOff is the commonlog verbosity that silences every level.
const logOff = -4

// ConfigureLogging sets up the commonlog backend. The terminal belongs to the
// UI, so without a log file nothing is logged at all. Flag values win over
// the settings file. It returns the file logs go to, if any.
func ConfigureLogging(settings models.LoggingSettings, verbose int, logFile string) string {
	verbosity := settings.Verbosity
	if verbose > verbosity {
		verbosity = verbose
	}

	path := settings.File
	if logFile != "" {
		path = logFile
	}

	if path == "" {
		commonlog.Configure(logOff, nil)
		return ""
	}

	commonlog.Configure(verbosity, &path)
	commonlog.GetLogger("pluqqy-code").Noticef("logging at verbosity %d", verbosity)
	return path
}
