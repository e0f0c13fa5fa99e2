package codec

import (
	"sync"

	"github.com/wippyai/textcodec/log"
)

var (
	loggerMu sync.RWMutex
	logger   log.Logger = log.NopLogger{}
)

// SetLogger installs the sink for the package's debug diagnostics (fallback
// substitutions, stage recovery). Nil restores the no-op default.
func SetLogger(l log.Logger) {
	if l == nil {
		l = log.NopLogger{}
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

func lgr() log.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	return l
}
