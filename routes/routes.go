package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"agenda-backend/config"
	"agenda-backend/controllers"
	"agenda-backend/logger"
)

func SetupRouter(svcCtl *controllers.ServiceController, apptCtl *controllers.AppointmentController, agendaCtl *controllers.AgendaController, log *logger.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		services := api.Group("/services")
		{
			services.GET("", svcCtl.GetServices)
			services.POST("", svcCtl.CreateService)
			services.PUT("/:id", svcCtl.UpdateService)
			services.DELETE("/:id", svcCtl.DeleteService)
			services.POST("/migrate-durations", svcCtl.MigrateDurations)
		}

		appointments := api.Group("/appointments")
		{
			appointments.POST("/preview", apptCtl.PreviewAppointment)
			appointments.POST("", apptCtl.BookAppointment)
		}

		api.GET("/agenda", agendaCtl.GetAgenda)
	}

	return r
}
