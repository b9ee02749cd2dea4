package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("nonsense").GetLevel())
}

func TestNewAuthAudit_Disabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "auth.log")
	logger, err := NewAuthAudit(false, path)
	require.NoError(t, err)
	logger.Info("ignored")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestNewAuthAudit_Enabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "auth.log")
	logger, err := NewAuthAudit(true, path)
	require.NoError(t, err)

	logger.WithFields(logrus.Fields{"auth_type": "Local", "status": "Fail"}).Warn("Invalid email or password")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"Fail"`)
	assert.Contains(t, string(data), "Invalid email or password")
}
