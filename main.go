package main

import (
	"github.com/haojie06/inference-http/internal/logger"
	"github.com/haojie06/inference-http/internal/mlclient"
	"github.com/haojie06/inference-http/internal/server"
	"github.com/spf13/viper"
)

func main() {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
	var machineLearningConfig mlclient.MachineLearningConfig
	if err := viper.UnmarshalKey("machineLearning", &machineLearningConfig); err != nil {
		panic(err)
	}
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", "9000")
	host := viper.GetString("server.host")
	port := viper.GetString("server.port")
	apiKey := viper.GetString("server.apiKey")
	logger.Infof("service is starting, host: %s, port: %s, ml servers: %s", host, port, machineLearningConfig.ServerURLs)
	client := mlclient.NewMLClient(machineLearningConfig, nil)
	server.Start(host, port, apiKey, client)
}
