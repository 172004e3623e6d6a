package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lumenbank/credit-approval/pkg/auth"
	"github.com/lumenbank/credit-approval/pkg/observability"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Customers      *CustomerHandler
	Loans          *LoanHandler
	Health         *HealthHandler
	Ingest         *IngestHandler
	Metrics        *observability.Metrics
	MetricsHandler http.Handler
	JWT            *auth.JWTService
}

// NewRouter builds the gin engine with all routes attached. The admin ingest
// trigger is registered only when a JWT service is configured.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.Metrics != nil {
		router.Use(MetricsMiddleware(deps.Metrics))
	}

	router.POST("/register", deps.Customers.Register)
	router.POST("/check-eligibility", deps.Loans.CheckEligibility)
	router.POST("/create-loan", deps.Loans.CreateLoan)
	router.GET("/view-loan/:loan_id", deps.Loans.GetLoan)
	router.GET("/view-loans/:customer_id", deps.Loans.ListCustomerLoans)

	router.GET("/healthz", deps.Health.Liveness)
	router.GET("/readyz", deps.Health.Readiness)
	if deps.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	if deps.Ingest != nil && deps.JWT != nil {
		admin := router.Group("/admin", RequireRole(deps.JWT, auth.RoleAdmin))
		admin.POST("/ingest", deps.Ingest.Trigger)
	}

	return router
}
