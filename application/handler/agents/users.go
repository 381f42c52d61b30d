package agents

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/helixml/brokerseed/application/handler"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/hierarchy"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// account is a user together with the roles it is granted.
type account struct {
	user  broker.User
	roles []int64
}

// Users handles the agents.users step.
type Users struct {
	rt     *handler.Runtime
	agents persistence.AgentStore
	users  persistence.UserStore
	roles  persistence.UserRoleStore
}

// NewUsers creates a new Users handler.
func NewUsers(rt *handler.Runtime) *Users {
	return &Users{
		rt:     rt,
		agents: persistence.NewAgentStore(rt.DB),
		users:  persistence.NewUserStore(rt.DB),
		roles:  persistence.NewUserRoleStore(rt.DB),
	}
}

// Execute creates a login for every agent without one.
func (h *Users) Execute(ctx context.Context, marker progress.Step) (int, error) {
	tracker := h.rt.Trackers.ForStep(progress.StepAgentUsers)

	dict, err := h.rt.Dictionary(ctx)
	if err != nil {
		return 0, err
	}
	roles, err := broker.Lookups(dict.Role, broker.RoleAdmin, broker.RoleManager, broker.RoleAgent)
	if err != nil {
		return 0, err
	}

	parents, err := withoutChildren(ctx, h.agents, marker, "users")
	if err != nil {
		return 0, err
	}
	hashes, err := h.hash(ctx, len(parents))
	if err != nil {
		return 0, err
	}

	i := 0
	return handler.ChildBatches(ctx, h.rt, tracker, marker, parents, agentID,
		func(a broker.Agent) ([]account, error) {
			acc := h.generate(a, hashes[i], roles)
			i++
			return []account{acc}, nil
		},
		h.insert,
	)
}

// hash computes n bcrypt hashes of the demo password concurrently. Every
// hash carries its own salt.
func (h *Users) hash(ctx context.Context, n int) ([]string, error) {
	password := []byte(h.rt.Config.Password())
	cost := h.rt.Config.PasswordCost()
	hashes := make([]string, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := bcrypt.GenerateFromPassword(password, cost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			hashes[i] = string(b)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return hashes, nil
}

func (h *Users) generate(a broker.Agent, hash string, roles map[string]broker.Lookup) account {
	agent := a.ID
	username, _, _ := strings.Cut(a.Email, "@")
	user := broker.User{
		Username:     username,
		Email:        a.Email,
		PasswordHash: hash,
		AgentID:      &agent,
		Active:       a.Active,
		CreatedAt:    a.HireDate,
	}
	if a.Active {
		now := h.rt.Now()
		login := sampling.DateBetween(h.rt.Source, now.Add(-30*24*time.Hour), now)
		user.LastLogin = &login
	}

	var granted []int64
	switch hierarchy.Level(a.Level) {
	case hierarchy.LevelRoot:
		granted = []int64{roles[broker.RoleAdmin].ID}
	case hierarchy.LevelRegional, hierarchy.LevelTeamLead:
		granted = []int64{roles[broker.RoleManager].ID, roles[broker.RoleAgent].ID}
	default:
		granted = []int64{roles[broker.RoleAgent].ID}
	}
	return account{user: user, roles: granted}
}

func (h *Users) insert(tx *gorm.DB, accounts []account) (int, error) {
	users := make([]broker.User, len(accounts))
	for i, acc := range accounts {
		users[i] = acc.user
	}
	created, err := h.users.CreateAll(tx, users)
	if err != nil {
		return 0, err
	}

	var grants []broker.UserRole
	for i, u := range created {
		for _, role := range accounts[i].roles {
			grants = append(grants, broker.UserRole{UserID: u.ID, RoleID: role})
		}
	}
	if _, err := h.roles.CreateAll(tx, grants); err != nil {
		return 0, err
	}
	return len(created) + len(grants), nil
}
