package handler

import "github.com/gin-gonic/gin"

// Register mounts every business route under the API prefix.
func Register(r *gin.Engine, prefix string, items *ItemHandler, movers *MoverHandler, audit *AuditHandler) {
	api := r.Group(prefix)

	api.POST("/items", items.Create)
	api.GET("/items", items.List)

	api.POST("/movers", movers.Create)
	api.GET("/movers", movers.List)
	api.POST("/movers/load-items", movers.LoadItems)
	api.PUT("/movers/start-mission", movers.StartMission)
	api.PUT("/movers/end-mission", movers.EndMission)
	api.GET("/movers/mission-completion", movers.MissionCompletion)

	api.GET("/logs", audit.List)
	api.GET("/logs/export", audit.Export)
}
