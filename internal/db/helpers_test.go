package db

import "github.com/MyelinBots/connectmap-go/config"

func testDBConfig() config.DBConfig {
	return config.DBConfig{
		Host:     "db",
		DataBase: "connectmap",
		User:     "app",
		Password: "pw",
		Port:     5432,
		SSLMode:  "disable",
	}
}
