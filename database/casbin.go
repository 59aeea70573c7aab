package database

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// Casbin builds the enforcer gating team-admin endpoints. Policies live in
// the backend database so every device sees the same roles.
func Casbin(db *gorm.DB) *casbin.Enforcer {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize casbin adapter: %v", err))
	}

	e, err := casbin.NewEnforcer("config/rbac_model.conf", adapter)
	if err != nil {
		panic(fmt.Sprintf("failed to create casbin enforcer: %v", err))
	}

	// Default policy: team admins manage members and attendance overviews.
	if hasPolicy, _ := e.HasPolicy("admin", "/v1/team/*", "(GET)|(POST)|(DELETE)"); !hasPolicy {
		e.AddPolicy("admin", "/v1/team/*", "(GET)|(POST)|(DELETE)")
	}

	e.LoadPolicy()
	return e
}
