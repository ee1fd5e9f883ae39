package controllers

import (
	"github.com/gin-gonic/gin"

	"wanderplan/internal/config"
	"wanderplan/pkg/utils"
)

type HealthController struct {
	provider string
	model    string
}

func NewHealthController(cfg config.AppConfig) *HealthController {
	return &HealthController{provider: cfg.LLM.Provider, model: cfg.LLM.Model}
}

// HealthHandler godoc
// @Summary Liveness probe
// @Produce json
// @Router /health [get]
func (hc *HealthController) HealthHandler(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"provider": hc.provider,
		"model":    hc.model,
	}, "ok")
}
