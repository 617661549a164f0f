package attendsvc

import (
	"net/http"

	"iftar/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Attend(c *gin.Context)
	List(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// Attend godoc
// @Summary      Register an attendee
// @Tags         attend
// @Accept       json
// @Produce      json
// @Param        request  body      AttendRequest  true  "Registration"
// @Success      201      {object}  AttendeeResponse
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /attend [post]
func (ctrl *controller) Attend(c *gin.Context) {
	var req AttendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	attendee, err := ctrl.service.Attend(c.Request.Context(), req)
	if err != nil {
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store attendee"})
		return
	}

	c.JSON(http.StatusCreated, attendee)
}

// List godoc
// @Summary      List attendees
// @Tags         attend
// @Produce      json
// @Success      200  {array}   AttendeeResponse
// @Failure      500  {object}  map[string]string
// @Router       /attend [get]
func (ctrl *controller) List(c *gin.Context) {
	attendees, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list attendees"})
		return
	}

	c.JSON(http.StatusOK, attendees)
}
