package attendees

import (
	"net/http"
	"net/url"
	"strings"

	"iftar/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

const (
	HomePath         = "/"
	RegisterPath     = "/register"
	ConfirmationPath = "/confirmation"
	StylesheetPath   = "/static/site.css"
)

type Controller interface {
	ShowForm(c *gin.Context)
	Register(c *gin.Context)
	Confirmation(c *gin.Context)
	ListAttendees(c *gin.Context)
	CreateAttendee(c *gin.Context)
}

type controller struct {
	service             Service
	event               EventDetails
	requireConfirmation bool
}

// NewController creates the page and API handlers. With requireConfirmation
// false a failed submission still navigates to the confirmation page.
func NewController(service Service, event EventDetails, requireConfirmation bool) Controller {
	return &controller{
		service:             service,
		event:               event,
		requireConfirmation: requireConfirmation,
	}
}

type formPage struct {
	Event     EventDetails
	Form      RegistrationRequest
	Errors    ValidationErrors
	FormError string
}

type confirmationPage struct {
	Event  EventDetails
	Roster Roster
}

func (ctrl *controller) renderForm(c *gin.Context, code int, page formPage) {
	page.Event = ctrl.event
	c.HTML(code, TemplateRegister, page)
}

func (ctrl *controller) ShowForm(c *gin.Context) {
	ctrl.renderForm(c, http.StatusOK, formPage{})
}

func (ctrl *controller) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBind(&req); err != nil {
		ctrl.renderForm(c, http.StatusBadRequest, formPage{FormError: MsgInvalidForm})
		return
	}

	cleaned, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		if ve, ok := IsValidationError(err); ok {
			ctrl.renderForm(c, http.StatusUnprocessableEntity, formPage{Form: cleaned, Errors: ve})
			return
		}
		if ctrl.requireConfirmation {
			ctrl.renderForm(c, http.StatusBadGateway, formPage{Form: cleaned, FormError: MsgSubmitFailed})
			return
		}
		// Parity mode: the failure was logged by the service, navigate anyway
	}

	c.Redirect(http.StatusSeeOther, ConfirmationURL(cleaned.Name))
}

func (ctrl *controller) Confirmation(c *gin.Context) {
	viewer := c.Query("name")
	if viewer == "" {
		viewer = DefaultViewer
	}

	c.HTML(http.StatusOK, TemplateConfirmation, confirmationPage{
		Event:  ctrl.event,
		Roster: ctrl.service.Roster(c.Request.Context(), viewer),
	})
}

func (ctrl *controller) ListAttendees(c *gin.Context) {
	attendees, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusBadGateway, "Attendance service unavailable", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Attendees retrieved successfully", attendees)
}

func (ctrl *controller) CreateAttendee(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	cleaned, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		if ve, ok := IsValidationError(err); ok {
			response.Error(c, http.StatusUnprocessableEntity, "Validation failed", ve)
			return
		}
		response.Error(c, http.StatusBadGateway, MsgSubmitFailed, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Registration submitted successfully", gin.H{
		"registration": cleaned,
		"confirmation": ConfirmationURL(cleaned.Name),
	})
}

// ConfirmationURL builds the confirmation path for name, escaping the value
// the way encodeURIComponent does (spaces become %20, not +).
func ConfirmationURL(name string) string {
	return ConfirmationPath + "?name=" + escapeQueryComponent(name)
}

// componentUnescaper undoes url.QueryEscape for the marks encodeURIComponent
// leaves alone.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeQueryComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}
