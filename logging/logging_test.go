package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggerIsShared(t *testing.T) {
	assert.Same(t, GetLogger(), GetLogger())
}

func TestInitLoggerSetsLevel(t *testing.T) {
	l := InitLogger(logrus.WarnLevel)
	defer InitLogger(logrus.InfoLevel)

	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.Equal(t, logrus.WarnLevel, GetLogger().GetLevel())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
