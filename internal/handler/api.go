package handler

import (
	"github.com/wellnest/internal/config"
	"github.com/wellnest/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	cfg         *config.AppConfig
	users       *service.UserService
	journal     *service.JournalService
	medications *service.MedicationService
	fitness     *service.FitnessService
	insights    *service.InsightsService
	stats       *service.StatsService
	circles     *service.CircleService
	exports     *service.ExportService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg *config.AppConfig) *API {
	return &API{
		db:          gdb,
		cfg:         cfg,
		users:       service.NewUserService(gdb),
		journal:     service.NewJournalService(gdb),
		medications: service.NewMedicationService(gdb),
		fitness:     service.NewFitnessService(gdb),
		insights:    service.NewInsightsService(service.NewGormRecordStore(gdb), cfg.Analytics),
		stats:       service.NewStatsService(gdb),
		circles:     service.NewCircleService(gdb),
		exports:     service.NewExportService(gdb),
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}
