package main

import (
	"github.com/gin-gonic/gin"

	"github.com/zuhrulumam/code-builders-hub/internal/app"
	"github.com/zuhrulumam/code-builders-hub/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
