package api

import (
	"testing"
	"time"

	"github.com/Pato1236897/Golf/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestReadConfig(t *testing.T) {
	logging.Log = logrus.New()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		viper.Set("server.port", 9090)

		conf := ReadConfig()

		assert.Equal(t, 9090, conf.Port)
		assert.Equal(t, StorageDriverSQLite, conf.Driver)
		assert.Equal(t, "Matches", conf.TableNameMatches)
		assert.Equal(t, "Scores", conf.TableNameScores)
		assert.Equal(t, 5*time.Second, conf.WriteTimeout)
		assert.Equal(t, 100, conf.ListLimit)
		assert.Empty(t, conf.RabbitURL)
		assert.Equal(t, "golf.events", conf.Exchange)
	})

	t.Run("Overrides", func(t *testing.T) {
		viper.Reset()
		viper.Set("server.port", 8080)
		viper.Set("storage.driver", StorageDriverDynamo)
		viper.Set("storage.endpoint", "http://localhost:4566")
		viper.Set("storage.createTables", true)
		viper.Set("realtime.writeTimeout", "250ms")
		viper.Set("match.listLimit", 20)

		conf := ReadConfig()

		assert.Equal(t, StorageDriverDynamo, conf.Driver)
		assert.Equal(t, "http://localhost:4566", conf.Endpoint)
		assert.True(t, conf.CreateTables)
		assert.Equal(t, 250*time.Millisecond, conf.WriteTimeout)
		assert.Equal(t, 20, conf.ListLimit)
	})

	t.Cleanup(viper.Reset)
}

func TestGinMode(t *testing.T) {
	s := NewServer(&Config{ServerConfig: ServerConfig{Mode: "release"}})
	assert.Equal(t, "release", s.ginMode())

	s = NewServer(&Config{ServerConfig: ServerConfig{Mode: "verbose"}})
	assert.Equal(t, "debug", s.ginMode())
}
