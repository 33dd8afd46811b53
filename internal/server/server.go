package server

import (
	"database/sql"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"compliance-service/internal/domain"
	"compliance-service/internal/service"
	"compliance-service/internal/view"

	log "github.com/sirupsen/logrus"

	"github.com/labstack/echo/v4"
)

// ProfileCookie holds the URL-encoded JSON profile cached by the client.
const ProfileCookie = "user_profile"

type Server struct {
	dashboardService service.DashboardServiceInterface
	db               *sql.DB
	defaultProfile   domain.Profile
}

// NewServer wires the handlers. db may be nil when records come from memory.
func NewServer(dashboardService service.DashboardServiceInterface, db *sql.DB, defaultProfile domain.Profile) *Server {
	return &Server{
		dashboardService: dashboardService,
		db:               db,
		defaultProfile:   defaultProfile,
	}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.HealthCheck)
	e.GET(domain.CompliancePath, s.CompliancePage)
	e.StaticFS("/static", view.StaticFiles())

	api := e.Group("/api")
	api.GET("/navigation", s.Navigation)

	compliance := api.Group("/compliance")
	compliance.GET("/stats", s.Stats)
	compliance.GET("/licenses", s.ListLicenses)
	compliance.GET("/audit-logs", s.ListAuditLogs)
	compliance.GET("/checks", s.ListComplianceChecks)
	compliance.POST("/checks/:id/run", s.RunCheck)
	compliance.GET("/export", s.Export)
}

func handleComplianceError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrCheckNotFound):
		return http.StatusNotFound, "compliance check not found"
	case errors.Is(err, domain.ErrCheckNotPending):
		return http.StatusConflict, "compliance check is not pending"
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "invalid request"
	case errors.Is(err, domain.ErrAuditUnavailable):
		return http.StatusServiceUnavailable, "audit publisher unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (s *Server) HealthCheck(c echo.Context) error {
	if s.db != nil {
		if err := s.db.PingContext(c.Request().Context()); err != nil {
			log.WithField("error", err).Error("Health check failed: database is down")
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  "database connection error",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// profile resolves the display attributes for the current request: the
// profile cookie wins, otherwise the configured default is used.
func (s *Server) profile(c echo.Context) domain.Profile {
	cookie, err := c.Cookie(ProfileCookie)
	if err != nil || cookie.Value == "" {
		return s.defaultProfile
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return domain.Profile{}
	}
	return domain.ParseProfile([]byte(raw))
}

func (s *Server) CompliancePage(c echo.Context) error {
	ctx := c.Request().Context()
	dashboard, err := s.dashboardService.Dashboard(ctx, service.DashboardQuery{
		Tab:      c.QueryParam("tab"),
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Profile:  s.profile(c),
	})
	if err != nil {
		log.WithError(err).Error("Failed to build compliance dashboard")
		statusCode, errorMsg := handleComplianceError(err)
		return c.String(statusCode, errorMsg)
	}

	return c.Render(http.StatusOK, "compliance.html", view.NewPage(dashboard))
}

func (s *Server) Navigation(c echo.Context) error {
	return c.JSON(http.StatusOK, domain.Navigation())
}

func (s *Server) Stats(c echo.Context) error {
	stats, err := s.dashboardService.Stats(c.Request().Context())
	if err != nil {
		log.WithError(err).Error("Failed to compute compliance stats")
		statusCode, errorMsg := handleComplianceError(err)
		return c.JSON(statusCode, map[string]string{
			"error": errorMsg,
		})
	}

	return c.JSON(http.StatusOK, stats)
}

func (s *Server) ListLicenses(c echo.Context) error {
	query := c.QueryParam("q")

	licenses, err := s.dashboardService.SearchLicenses(c.Request().Context(), query)
	if err != nil {
		log.WithError(err).WithField("query", query).Error("Failed to list licenses")
		statusCode, errorMsg := handleComplianceError(err)
		return c.JSON(statusCode, map[string]string{
			"error": errorMsg,
		})
	}

	return c.JSON(http.StatusOK, licenses)
}

func (s *Server) ListAuditLogs(c echo.Context) error {
	filter := domain.ParseAuditFilter(c.QueryParam("category"))

	entries, err := s.dashboardService.FilterAuditLogs(c.Request().Context(), filter)
	if err != nil {
		log.WithError(err).WithField("category", filter).Error("Failed to list audit logs")
		statusCode, errorMsg := handleComplianceError(err)
		return c.JSON(statusCode, map[string]string{
			"error": errorMsg,
		})
	}

	return c.JSON(http.StatusOK, entries)
}

func (s *Server) ListComplianceChecks(c echo.Context) error {
	checks, err := s.dashboardService.ListComplianceChecks(c.Request().Context())
	if err != nil {
		log.WithError(err).Error("Failed to list compliance checks")
		statusCode, errorMsg := handleComplianceError(err)
		return c.JSON(statusCode, map[string]string{
			"error": errorMsg,
		})
	}

	return c.JSON(http.StatusOK, checks)
}

func (s *Server) RunCheck(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request",
		})
	}

	actor := s.profile(c).DisplayName()
	fromPage := isPageRequest(c)

	check, err := s.dashboardService.RunCheck(c.Request().Context(), id, actor)
	if err != nil {
		statusCode, errorMsg := handleComplianceError(err)
		if statusCode >= http.StatusInternalServerError {
			log.WithError(err).WithField("check_id", id).Error("Failed to run compliance check")
		}
		if fromPage {
			return c.String(statusCode, errorMsg)
		}
		return c.JSON(statusCode, map[string]string{
			"error": errorMsg,
		})
	}

	if fromPage {
		return c.Redirect(http.StatusSeeOther, domain.CompliancePath+"?tab="+string(domain.TabCompliance))
	}

	return c.JSON(http.StatusAccepted, map[string]string{
		"message":  "compliance check requested",
		"check_id": check.ID,
	})
}

// isPageRequest reports whether the request came from the rendered page's
// form rather than an API client.
func isPageRequest(c echo.Context) bool {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		return true
	}
	return strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
