package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/moneyfield/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// homeResponse reports that the server is up and which record kinds it serves.
type homeResponse struct {
	Message string   `json:"message"`
	Kinds   []string `json:"kinds"`
}

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server and the record kinds it serves.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} homeResponse
// @Router / [get]
func getHome(recordService portssvc.RecordReaderSvc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, homeResponse{
			Message: "Money field API v1",
			Kinds:   recordService.Kinds(ctx.Request.Context()),
		})
	}
}

// registerHomeRoutes registers the root status route.
func registerHomeRoutes(r *gin.Engine, recordService portssvc.RecordReaderSvc) {
	r.GET("/", getHome(recordService))
}
