package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"personal-color-agent-backend/dao"
	"personal-color-agent-backend/response"
)

func Health(c *gin.Context) {
	sqlDB, err := dao.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, response.Response{
			Msg: "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, response.Response{
		Data: gin.H{"status": "ok"},
	})
}
