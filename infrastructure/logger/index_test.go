package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpersSafeBeforeInitialisation(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	assert.NotPanics(t, func() {
		Info("info before init", LoggerOptions{Key: "key", Data: "value"})
		Warning("warning before init")
		Error("error before init", LoggerOptions{Key: "error", Data: "boom"})
	})
}
