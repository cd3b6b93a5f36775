// @title Golf Scorekeeping API
// @version 1.0
// @description Team golf matches with private in-round scoring, leaderboards and live updates
package main

import (
	"strings"

	_ "github.com/Pato1236897/Golf/docs"

	"github.com/Pato1236897/Golf/api"
	"github.com/Pato1236897/Golf/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	// Load env
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	logging.BoostrapLogger(viper.GetString("log.level"), viper.GetBool("log.json"))

	// Read config
	config := api.ReadConfig()

	service := api.NewServer(config)
	service.Start()
}
