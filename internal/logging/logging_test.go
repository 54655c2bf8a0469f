package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, NewLogger("debug").GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger("WARN").GetLevel())
	assert.Equal(t, logrus.InfoLevel, NewLogger("nonsense").GetLevel())
}

func TestInit_ChangesGlobalLevel(t *testing.T) {
	defer Init("info")

	Init("error")
	assert.Equal(t, logrus.ErrorLevel, Log.GetLevel())
}
