package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	api_types "folio/api-types"
	folio_errors "folio/internal"
	"folio/internal/allocation"
	"folio/internal/csvtable"
	"folio/internal/resolver"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ApiHandler struct {
	Resolver resolver.Resolver
	log      zerolog.Logger
	// tests pin the clock
	now func() time.Time
}

func NewApiHandler(r resolver.Resolver, log zerolog.Logger) *ApiHandler {
	return &ApiHandler{
		Resolver: r,
		log:      log.With().Str("component", "api").Logger(),
		now:      time.Now,
	}
}

func StartApi(port int, r resolver.Resolver, log zerolog.Logger) error {
	return NewApiHandler(r, log).Router().Run(fmt.Sprintf(":%d", port))
}

func (m *ApiHandler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(m.requestLogger)
	router.Use(blockBots)
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, map[string]string{"message": "welcome to folio"})
	})

	router.GET("/etfs", func(c *gin.Context) {
		c.JSON(http.StatusOK, m.Resolver.ListEtfs())
	})

	router.POST("/portfolio/analyze", func(c *gin.Context) {
		var req api_types.AnalyzePortfolioRequest
		if !m.bind(c, &req) {
			return
		}
		c.JSON(http.StatusOK, m.Resolver.AnalyzePortfolio(req))
	})

	router.POST("/portfolio/allocation", func(c *gin.Context) {
		var req api_types.UpdateAllocationRequest
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.UpdateAllocation(req))
	})

	router.POST("/portfolio/holding", func(c *gin.Context) {
		var req api_types.AddHoldingRequest
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.AddHolding(req))
	})

	router.POST("/portfolio/remove", func(c *gin.Context) {
		var req api_types.RemoveHoldingRequest
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.RemoveHolding(req))
	})

	router.POST("/portfolio/toggle", func(c *gin.Context) {
		var req api_types.ToggleHoldingRequest
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.ToggleHolding(req))
	})

	router.POST("/portfolio/equal-weight", func(c *gin.Context) {
		var req api_types.EqualWeightRequest
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.EqualWeight(req))
	})

	router.GET("/portfolios", func(c *gin.Context) {
		m.respond(c)(m.Resolver.ListPortfolios(c.Request.Context()))
	})

	router.POST("/portfolios", func(c *gin.Context) {
		var req api_types.SavePortfolioRequest
		if !m.bind(c, &req) {
			return
		}
		if err := m.Resolver.SavePortfolio(c.Request.Context(), req); err != nil {
			m.returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"saved": req.Portfolio.Name})
	})

	router.DELETE("/portfolios/:name", func(c *gin.Context) {
		if err := m.Resolver.DeletePortfolio(c.Request.Context(), c.Param("name")); err != nil {
			m.returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": c.Param("name")})
	})

	router.GET("/portfolios/:name/exists", func(c *gin.Context) {
		m.respond(c)(m.Resolver.PortfolioExists(c.Request.Context(), c.Param("name")))
	})

	router.POST("/csv/parse", func(c *gin.Context) {
		var req api_types.ParseCsvRequest
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.ParseCsv(req))
	})

	router.POST("/csv/export", func(c *gin.Context) {
		var req api_types.ExportCsvRequest
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.ExportCsv(req))
	})

	router.GET("/csv/preferences", func(c *gin.Context) {
		m.respond(c)(m.Resolver.GetCsvPreferences())
	})

	router.PUT("/csv/preferences", func(c *gin.Context) {
		var req api_types.CsvPreferences
		if !m.bind(c, &req) {
			return
		}
		m.respond(c)(m.Resolver.UpdateCsvPreferences(req))
	})

	router.GET("/medication", func(c *gin.Context) {
		m.respond(c)(m.Resolver.GetMedicationStatus(m.now()))
	})

	router.GET("/medication/adherence", func(c *gin.Context) {
		status, err := m.Resolver.GetMedicationStatus(m.now())
		if err != nil {
			m.returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, status.Adherence)
	})

	router.POST("/medication/doses", func(c *gin.Context) {
		var req api_types.LogDoseRequest
		if !m.bind(c, &req) {
			return
		}
		resp, err := m.Resolver.LogDose(req)
		if err != nil {
			m.returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusCreated, resp)
	})

	router.DELETE("/medication/doses/:id", func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid dose id: %w", err), c, http.StatusBadRequest)
			return
		}
		m.respond(c)(m.Resolver.DeleteDose(api_types.DeleteDoseRequest{DoseID: id}))
	})

	router.PUT("/medication/interval", func(c *gin.Context) {
		var req api_types.SetIntervalRequest
		if !m.bind(c, &req) {
			return
		}
		if req.IntervalHours <= 0 {
			returnErrorJsonCode(fmt.Errorf("intervalHours must be positive"), c, http.StatusBadRequest)
			return
		}
		m.respond(c)(m.Resolver.SetInterval(req))
	})

	router.POST("/medication/backup", func(c *gin.Context) {
		m.respond(c)(m.Resolver.BackupMedication(c.Request.Context()))
	})

	router.POST("/medication/restore", func(c *gin.Context) {
		m.respond(c)(m.Resolver.RestoreMedication(c.Request.Context()))
	})

	return router
}

func (m *ApiHandler) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, http.StatusBadRequest)
		return false
	}
	return true
}

// respond writes whatever a resolver call returned
func (m *ApiHandler) respond(c *gin.Context) func(interface{}, error) {
	return func(resp interface{}, err error) {
		if err != nil {
			m.returnErrorJson(err, c)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func statusFor(err error) int {
	var notFound folio_errors.ErrPortfolioNotFound
	var backupNotFound folio_errors.ErrBackupNotFound
	var unknownEtf folio_errors.ErrUnknownETF
	var unavailable folio_errors.ErrBackupUnavailable
	var invalid folio_errors.ErrInvalidRequest
	switch {
	case errors.As(err, &notFound), errors.As(err, &backupNotFound):
		return http.StatusNotFound
	case errors.As(err, &unknownEtf),
		errors.As(err, &invalid),
		errors.Is(err, csvtable.ErrEmptyInput),
		errors.Is(err, csvtable.ErrRowOutOfRange),
		errors.Is(err, csvtable.ErrColOutOfRange),
		errors.Is(err, csvtable.ErrInvalidPreference):
		return http.StatusBadRequest
	case errors.Is(err, allocation.ErrUnknownHolding),
		errors.Is(err, allocation.ErrHoldingExists),
		errors.Is(err, allocation.ErrHoldingLocked),
		errors.Is(err, allocation.ErrHoldingDisabled),
		errors.Is(err, allocation.ErrInsufficientAllocation),
		errors.Is(err, allocation.ErrNoAdjustableHoldings):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (m *ApiHandler) returnErrorJson(err error, c *gin.Context) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		m.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	returnErrorJsonCode(err, c, code)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m *ApiHandler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	m.log.Debug().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("latency", time.Since(start)).
		Msg("request")
}

func blockBots(c *gin.Context) {
	clientIP := c.ClientIP()
	blockedIps := []string{"172.31.45.22"}
	for _, ip := range blockedIps {
		if ip == clientIP {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
			c.Abort()
			return
		}
	}
	c.Next()
}
