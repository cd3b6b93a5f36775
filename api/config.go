package api

import (
	"sync"
	"time"

	"github.com/Pato1236897/Golf/logging"
	"github.com/spf13/viper"
)

const (
	StorageDriverDynamo = "dynamodb"
	StorageDriverSQLite = "sqlite"
)

type Config struct {
	StorageConfig
	ServerConfig
	RealtimeConfig
	EventsConfig
	MatchConfig
	LogConfig
}

type StorageConfig struct {
	Driver           string
	TableNameMatches string
	TableNameScores  string
	Endpoint         string
	Region           string
	CreateTables     bool
	SqlitePath       string
}

type ServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type RealtimeConfig struct {
	WriteTimeout time.Duration
}

// EventsConfig enables the AMQP publisher when RabbitURL is set.
type EventsConfig struct {
	RabbitURL string
	Exchange  string
}

type MatchConfig struct {
	ListLimit int
}

type LogConfig struct {
	Level string
	JSON  bool
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			Driver:           getStringOrDefault("storage.driver", StorageDriverSQLite),
			TableNameMatches: getStringOrDefault("storage.TableNameMatches", "Matches"),
			TableNameScores:  getStringOrDefault("storage.TableNameScores", "Scores"),
			Endpoint:         getStringOrDefault("storage.endpoint", ""),
			Region:           getStringOrDefault("storage.region", "us-east-1"),
			CreateTables:     getBoolOrDefault("storage.createTables", false),
			SqlitePath:       getStringOrDefault("storage.sqlitePath", "golf.db"),
		},
		ServerConfig: ServerConfig{
			Port:            getInt("server.port"),
			Mode:            getStringOrDefault("server.mode", "debug"),
			ShutdownTimeout: getDurationOrDefault("server.shutdownTimeout", 10*time.Second),
		},
		RealtimeConfig: RealtimeConfig{
			WriteTimeout: getDurationOrDefault("realtime.writeTimeout", 5*time.Second),
		},
		EventsConfig: EventsConfig{
			RabbitURL: getStringOrDefault("events.rabbitUrl", ""),
			Exchange:  getStringOrDefault("events.exchange", "golf.events"),
		},
		MatchConfig: MatchConfig{
			ListLimit: getIntOrDefault("match.listLimit", 100),
		},
		LogConfig: LogConfig{
			Level: getStringOrDefault("log.level", "info"),
			JSON:  getBoolOrDefault("log.json", false),
		},
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getInt(name string) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Fatalf("required environment variable '%s' is missing", name)
	return -1
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getBoolOrDefault(name string, def bool) bool {
	if viper.IsSet(name) {
		v := viper.GetBool(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getStringOrDefault(name string, def string) string {
	if viper.IsSet(name) {
		v := viper.GetString(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}

func getDurationOrDefault(name string, def time.Duration) time.Duration {
	if viper.IsSet(name) {
		v := viper.GetDuration(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
