package cmd

import (
	"bytes"
	"testing"

	"github.com/RigelNana/arkstudy/services/admin-service/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestVersionCommand(t *testing.T) {
	out := &bytes.Buffer{}
	versionCmd.SetOut(out)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "edudash v"+Version+"\n", out.String())
}

func TestNewLogger(t *testing.T) {
	log := newLogger(config.LogConfig{Level: "debug", Format: "text"})
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	log = newLogger(config.LogConfig{Level: "loud", Format: "json"})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "frontend", "migrate", "version"} {
		cmd, _, err := RootCmd.Find([]string{name})
		assert.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
