package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/johnquangdev/crm-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	authHandler    *Auth
	meetingHandler *Meeting
	crmHandler     *CRM
	authRequired   echo.MiddlewareFunc
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authHandler *Auth,
	meetingHandler *Meeting,
	crmHandler *CRM,
	authRequired echo.MiddlewareFunc,
) *Router {
	return &Router{
		cfg:            cfg,
		authHandler:    authHandler,
		meetingHandler: meetingHandler,
		crmHandler:     crmHandler,
		authRequired:   authRequired,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupMeetingRoutes(v1)
	rt.setupCRMRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.POST("/logout", rt.authHandler.Logout)
	authGroup.GET("/me", rt.authHandler.Me, rt.authRequired)
}

// setupMeetingRoutes configures the meeting lifecycle routes. The trailing
// slashes are part of the public contract and must stay.
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings", rt.authRequired)

	meetings.POST("/create/", rt.meetingHandler.Create)
	meetings.GET("", rt.meetingHandler.List)
	meetings.GET("/:id/", rt.meetingHandler.Get)
	meetings.PUT("/update/:id/", rt.meetingHandler.Update)
	meetings.DELETE("/delete/:id/", rt.meetingHandler.Delete)
	meetings.GET("/today/count/", rt.meetingHandler.TodayCount)
	meetings.GET("/filter/", rt.meetingHandler.Filter)
}

// setupCRMRoutes configures the generic CRUD resources and the dashboard
func (rt *Router) setupCRMRoutes(g *echo.Group) {
	companies := g.Group("/companies", rt.authRequired)
	companies.POST("", rt.crmHandler.CreateCompany)
	companies.GET("", rt.crmHandler.ListCompanies)
	companies.GET("/:id", rt.crmHandler.GetCompany)
	companies.PUT("/:id", rt.crmHandler.UpdateCompany)
	companies.DELETE("/:id", rt.crmHandler.DeleteCompany)

	contacts := g.Group("/contacts", rt.authRequired)
	contacts.POST("", rt.crmHandler.CreateContact)
	contacts.GET("", rt.crmHandler.ListContacts)
	contacts.GET("/:id", rt.crmHandler.GetContact)
	contacts.PUT("/:id", rt.crmHandler.UpdateContact)
	contacts.DELETE("/:id", rt.crmHandler.DeleteContact)

	deals := g.Group("/deals", rt.authRequired)
	deals.POST("", rt.crmHandler.CreateDeal)
	deals.GET("", rt.crmHandler.ListDeals)
	deals.GET("/:id", rt.crmHandler.GetDeal)
	deals.PUT("/:id", rt.crmHandler.UpdateDeal)
	deals.DELETE("/:id", rt.crmHandler.DeleteDeal)

	tasks := g.Group("/tasks", rt.authRequired)
	tasks.POST("", rt.crmHandler.CreateTask)
	tasks.GET("", rt.crmHandler.ListTasks)
	tasks.GET("/:id", rt.crmHandler.GetTask)
	tasks.PUT("/:id", rt.crmHandler.UpdateTask)
	tasks.DELETE("/:id", rt.crmHandler.DeleteTask)

	dashboard := g.Group("/dashboard", rt.authRequired)
	dashboard.GET("/stats", rt.crmHandler.DashboardStats)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "crm-backend",
	})
}
