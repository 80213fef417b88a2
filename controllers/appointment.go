// controllers/appointment.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agenda-backend/models"
	"agenda-backend/services"
	"agenda-backend/utils"
)

// AppointmentInput defines the expected JSON structure for previewing or
// booking an appointment.
type AppointmentInput struct {
	ClientName   string   `json:"clientName" binding:"required"`
	ServiceNames []string `json:"serviceNames" binding:"required,min=1"`
	Date         string   `json:"date" binding:"required"`
	Time         string   `json:"time" binding:"required"`
}

type AppointmentController struct {
	Booking *services.BookingService
}

func (ac *AppointmentController) request(input AppointmentInput) models.AppointmentRequest {
	return models.AppointmentRequest{
		ClientName:   input.ClientName,
		ServiceNames: input.ServiceNames,
		Date:         input.Date,
		Time:         input.Time,
	}
}

// PreviewAppointment computes price, duration and time span without
// publishing anything.
func (ac *AppointmentController) PreviewAppointment(c *gin.Context) {
	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.TranslateBindingError(err))
		return
	}

	appt, err := ac.Booking.Preview(c.Request.Context(), ac.request(input))
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, appt)
}

// BookAppointment confirms the appointment: composes it from the current
// catalog, publishes the calendar event and appends the audit log entry.
func (ac *AppointmentController) BookAppointment(c *gin.Context) {
	var input AppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, utils.TranslateBindingError(err))
		return
	}

	appt, err := ac.Booking.Book(c.Request.Context(), ac.request(input))
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, appt)
}
