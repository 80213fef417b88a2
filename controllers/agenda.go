// controllers/agenda.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agenda-backend/calendar"
	"agenda-backend/utils"
)

// agendaMaxEvents caps the upcoming-events view.
const agendaMaxEvents = 15

type AgendaController struct {
	Reader calendar.AgendaReader
}

// GetAgenda lists the next confirmed appointments from the external
// calendar, ordered by start time.
func (ac *AgendaController) GetAgenda(c *gin.Context) {
	events, err := ac.Reader.ListUpcoming(c.Request.Context(), agendaMaxEvents)
	if err != nil {
		utils.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
