package main

import (
	"log"

	"backend/aiservice"
	"backend/config"
	"backend/jwt"
	"backend/routers"
)

func main() {
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		panic("Không đọc được file config: " + err.Error())
	}

	jwt.Init(cfg.Server.JWTSecret)

	db, err := config.SetupMySQLConnection(cfg)
	if err != nil {
		panic("Không kết nối được database: " + err.Error())
	}
	defer func() {
		dbInstance, _ := db.DB()
		_ = dbInstance.Close()
	}()

	rdb := config.SetupRedisConnection(cfg)
	defer rdb.Close()

	ai := aiservice.NewClient(aiservice.Options{
		BaseURL:             cfg.AI.BaseURL,
		DashboardTimeout:    cfg.AI.DashboardTimeout(),
		ChatTimeout:         cfg.AI.ChatTimeout(),
		VisualSearchTimeout: cfg.AI.VisualSearchTimeout(),
	})

	router := routers.SetupRouters(db, rdb, ai)
	log.Printf("Gateway chạy tại cổng %s", cfg.Server.Port)
	router.Run(":" + cfg.Server.Port)
}
