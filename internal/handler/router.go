package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Timetable     *TimetableHandler
	Catalog       *CatalogHandler
	Configuration *ConfigurationHandler
	Data          *DataHandler
	Export        *ExportHandler
	Metrics       *MetricsHandler
}

// Register mounts all API routes under the given prefix. Health and metrics
// stay at the root so probes and scrapers do not depend on the prefix.
func Register(r *gin.Engine, prefix string, h Handlers) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Health)
	r.GET("/metrics", h.Metrics.Prometheus)
	r.GET("/system", h.Metrics.System)

	api := r.Group(prefix)

	api.GET("/timetable", h.Timetable.Get)
	api.POST("/timetable/generate", h.Timetable.Generate)
	api.GET("/timetable/status", h.Timetable.Status)
	api.GET("/timetable/batch/:id", h.Timetable.ByBatch)
	api.GET("/timetable/faculty/:id", h.Timetable.ByFaculty)
	api.GET("/timetable/room/:id", h.Timetable.ByRoom)

	api.GET("/faculty", h.Catalog.Faculty)
	api.GET("/rooms", h.Catalog.Rooms)
	api.GET("/batches", h.Catalog.Batches)
	api.GET("/courses", h.Catalog.Courses)

	api.GET("/solver/config", h.Configuration.GetSolverConfig)
	api.POST("/solver/config", h.Configuration.UpdateSolverConfig)
	api.GET("/timeslots/config", h.Configuration.GetSlotConfig)
	api.POST("/timeslots/config", h.Configuration.UpdateSlotConfig)
	api.POST("/timeslots/config/reset", h.Configuration.ResetSlotConfig)
	api.GET("/batch-year-mapping", h.Configuration.GetBatchYearMapping)
	api.POST("/batch-year-mapping", h.Configuration.ReplaceBatchYearMapping)
	api.POST("/batch-year-mapping/add", h.Configuration.AddBatchYearMapping)
	api.DELETE("/batch-year-mapping/:yearIdentifier", h.Configuration.RemoveBatchYearMapping)

	api.GET("/data/metadata", h.Data.Metadata)
	api.GET("/data/statistics", h.Data.Statistics)
	api.GET("/data/validate", h.Data.ValidateAll)
	api.GET("/data/validate/:file", h.Data.Validate)
	api.POST("/data/upload/:file", h.Data.Upload)
	api.GET("/data/preview/:file", h.Data.Preview)

	api.GET("/export/csv", h.Export.CSV)
	api.GET("/export/pdf", h.Export.PDF)
}
