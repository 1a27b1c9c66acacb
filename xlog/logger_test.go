package xlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewModuleLoggerDoesNotPanic(t *testing.T) {
	l := NewModuleLogger(ModuleScan)
	assert.NotPanics(t, func() {
		l.Debug("debug message", "key", "value")
		l.Info("info message")
		l.Warn("warn message", "n", 1)
		l.Error("error message", "err", assert.AnError)
	})
}

func TestModuleNamesAreDistinct(t *testing.T) {
	names := map[Module]bool{
		ModuleScan:       true,
		ModuleTxBuilder:  true,
		ModuleWallet:     true,
		ModuleWalletFile: true,
		ModuleDaemon:     true,
		ModuleNotify:     true,
	}
	assert.Len(t, names, 6)
}
