package attendsvc

import (
	"github.com/gin-gonic/gin"
)

func SetupAttendRoutes(router gin.IRouter, controller Controller) {
	router.GET("/attend", controller.List)    // GET /attend - List attendees
	router.POST("/attend", controller.Attend) // POST /attend - Register an attendee
}
