package persistence

import (
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/internal/database"
)

// AgentStore persists the agent hierarchy.
type AgentStore struct {
	database.Repository[broker.Agent, AgentModel]
}

// NewAgentStore creates a new AgentStore.
func NewAgentStore(db database.Database) AgentStore {
	return AgentStore{
		Repository: database.NewRepository[broker.Agent, AgentModel](db, AgentMapper{}, "agents"),
	}
}

// PerformanceStore persists monthly agent performance.
type PerformanceStore struct {
	database.Repository[broker.AgentPerformance, AgentPerformanceModel]
}

// NewPerformanceStore creates a new PerformanceStore.
func NewPerformanceStore(db database.Database) PerformanceStore {
	return PerformanceStore{
		Repository: database.NewRepository[broker.AgentPerformance, AgentPerformanceModel](db, PerformanceMapper{}, "agent performance"),
	}
}

// UserStore persists login accounts.
type UserStore struct {
	database.Repository[broker.User, UserModel]
}

// NewUserStore creates a new UserStore.
func NewUserStore(db database.Database) UserStore {
	return UserStore{
		Repository: database.NewRepository[broker.User, UserModel](db, UserMapper{}, "users"),
	}
}

// UserRoleStore persists role grants.
type UserRoleStore struct {
	database.Repository[broker.UserRole, UserRoleModel]
}

// NewUserRoleStore creates a new UserRoleStore.
func NewUserRoleStore(db database.Database) UserRoleStore {
	return UserRoleStore{
		Repository: database.NewRepository[broker.UserRole, UserRoleModel](db, UserRoleMapper{}, "user roles"),
	}
}
