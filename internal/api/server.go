package api

import (
	"database/sql"

	"github.com/drillforge/drillforge/internal/auth"
	"github.com/drillforge/drillforge/internal/services"
)

// Server holds the dependencies of the HTTP layer.
type Server struct {
	DrillService   services.DrillService
	AttemptService services.AttemptService
	StatsService   services.StatsService
	UserService    services.UserService
	Auth           *auth.Service
	DB             *sql.DB
	CORSOrigins    []string
}
