package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"chatrelay"
	"chatrelay/auth"
	"chatrelay/controllers"
	"chatrelay/models/gemini"
	"chatrelay/search"
)

func main() {
	cfg := chatrelay.LoadConfig()

	controller := controllers.NewChatController(
		&gemini.Gemini_Model{Model: cfg.Model},
		search.NewClientFromEnv(),
		auth.NewTokenResolverFromEnv(),
		cfg.StreamTimeout,
	)

	router := gin.Default()
	controller.RegisterRoutes(router)

	log.Printf("chatrelay listening on %s (model %s)", cfg.Addr, cfg.Model)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
