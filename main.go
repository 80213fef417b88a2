package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"agenda-backend/calendar"
	"agenda-backend/config"
	"agenda-backend/controllers"
	"agenda-backend/logger"
	"agenda-backend/routes"
	"agenda-backend/services"
	"agenda-backend/store"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Service: "agenda-backend",
	})

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid TIMEZONE", "timezone", cfg.Timezone, "error", err)
	}

	catalogStore, logStore, err := buildStores(cfg)
	if err != nil {
		log.Fatal("store setup failed", "backend", cfg.StoreBackend, "error", err)
	}

	publisher, agendaReader, err := buildCalendar(cfg, loc)
	if err != nil {
		log.Fatal("calendar setup failed", "backend", cfg.PublisherBackend, "error", err)
	}

	catalogSvc := services.NewCatalogService(catalogStore, cfg.CatalogHasDurations, log)
	bookingSvc := services.NewBookingService(catalogSvc, publisher, logStore, loc, cfg.DefaultDurationMin, log)

	r := routes.SetupRouter(
		&controllers.ServiceController{Catalog: catalogSvc},
		&controllers.AppointmentController{Booking: bookingSvc},
		&controllers.AgendaController{Reader: agendaReader},
		log,
	)
	printRoutes(r)

	log.Info("listening", "port", cfg.Port, "store", cfg.StoreBackend, "publisher", cfg.PublisherBackend)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}

// buildStores selects the catalog and appointment-log backends. The log
// store is optional: an empty location disables the audit log.
func buildStores(cfg *config.Config) (store.CatalogStore, store.LogStore, error) {
	switch cfg.StoreBackend {
	case config.StoreFile:
		var logStore store.LogStore
		if cfg.AppointmentLogFile != "" {
			logStore = store.NewFileLogStore(cfg.AppointmentLogFile)
		}
		return store.NewFileCatalogStore(cfg.CatalogFile), logStore, nil

	case config.StoreGitHub:
		catalogStore, err := store.NewGitHubCatalogStore(cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubCatalogPath)
		if err != nil {
			return nil, nil, err
		}
		var logStore store.LogStore
		if cfg.GitHubLogPath != "" {
			logStore, err = store.NewGitHubLogStore(cfg.GitHubToken, cfg.GitHubRepo, cfg.GitHubLogPath)
			if err != nil {
				return nil, nil, err
			}
		}
		return catalogStore, logStore, nil

	case config.StorePostgres:
		db, err := config.ConnectDB(cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		if err := store.AutoMigrate(db); err != nil {
			return nil, nil, err
		}
		return store.NewGormCatalogStore(db), store.NewGormLogStore(db), nil
	}

	return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

func buildCalendar(cfg *config.Config, loc *time.Location) (calendar.Publisher, calendar.AgendaReader, error) {
	switch cfg.PublisherBackend {
	case config.PublisherGoogle:
		gc, err := calendar.NewGoogleCalendar(context.Background(), cfg.CalendarID, cfg.Timezone, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return gc, gc, nil

	case config.PublisherICS:
		ic := calendar.NewICSCalendar(cfg.ICSFile, loc)
		return ic, ic, nil
	}

	return nil, nil, fmt.Errorf("unknown PUBLISHER_BACKEND %q", cfg.PublisherBackend)
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
