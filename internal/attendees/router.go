package attendees

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupPageRoutes registers the two pages and the form handler
func SetupPageRoutes(engine *gin.Engine, controller Controller) {
	engine.GET(HomePath, controller.ShowForm)             // GET / - Registration page
	engine.POST(RegisterPath, controller.Register)        // POST /register - Form submission
	engine.GET(ConfirmationPath, controller.Confirmation) // GET /confirmation?name= - Attendee list
	engine.GET(StylesheetPath, serveStylesheet)           // GET /static/site.css
}

func serveStylesheet(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "text/css; charset=utf-8", siteCSS)
}

// SetupAPIRoutes registers the JSON mirror of the attendee endpoints
func SetupAPIRoutes(router *gin.RouterGroup, controller Controller) {
	attendees := router.Group("/attendees")
	{
		attendees.GET("", controller.ListAttendees)   // GET /api/v1/attendees - Attendee list
		attendees.POST("", controller.CreateAttendee) // POST /api/v1/attendees - Register
	}
}
