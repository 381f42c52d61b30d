package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/helixml/brokerseed/application/handler/claims"
	"github.com/helixml/brokerseed/domain/broker"
	"github.com/helixml/brokerseed/domain/hierarchy"
	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/progress"
	"github.com/helixml/brokerseed/domain/query"
	"github.com/helixml/brokerseed/domain/sequence"
	"github.com/helixml/brokerseed/infrastructure/persistence"
	"github.com/helixml/brokerseed/internal/config"
	"github.com/helixml/brokerseed/internal/database"
	"github.com/helixml/brokerseed/internal/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func smallConfig() config.SeedConfig {
	return config.NewSeedConfig().
		WithClients(40).
		WithAgents(40).
		WithPolicies(60).
		WithClaims(20).
		WithBatchSize(25).
		WithChildBatchSize(50).
		WithRandomSeed(42).
		WithPasswordCost(bcrypt.MinCost)
}

func newSeeder(db database.Database, cfg config.SeedConfig) *Seeder {
	return NewSeeder(db, cfg, clock, slog.New(slog.DiscardHandler))
}

func seeded(t *testing.T) (database.Database, Summary) {
	t.Helper()
	db := testdb.New(t)
	summary, err := newSeeder(db, smallConfig()).Run(context.Background(), false)
	require.NoError(t, err)
	return db, summary
}

func TestSeeder_Run_SeedsEveryLayer(t *testing.T) {
	_, summary := seeded(t)

	assert.Equal(t, uint64(42), summary.Seed)
	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Steps, 17)
	for _, r := range summary.Steps {
		assert.False(t, r.Skipped, r.Step)
	}

	stats := summary.Stats
	assert.Equal(t, map[string]int64{"B2C": 30, "B2B": 6, "VIP": 3, "Corporate": 1}, stats.ClientsByType)
	assert.Equal(t, int64(40), stats.Agents)
	assert.Equal(t, int64(40), stats.Users)
	assert.Equal(t, int64(60), stats.Policies)
	assert.Equal(t, int64(20), stats.Claims)
	assert.Equal(t, int64(60), stats.Invoices)
	assert.Equal(t, int64(60), stats.Commissions)
	assert.GreaterOrEqual(t, stats.Addresses, int64(40))
	assert.GreaterOrEqual(t, stats.Contacts, int64(40))
	assert.Positive(t, stats.Payments)

	clients, ok := summary.Step(progress.StepClients)
	require.True(t, ok)
	assert.Equal(t, 40, clients.Inserted)
}

func TestSeeder_Run_SecondRunInsertsNothing(t *testing.T) {
	db, first := seeded(t)

	second, err := newSeeder(db, smallConfig()).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Zero(t, second.Inserted())
	for _, r := range second.Steps {
		assert.True(t, r.Skipped, r.Step)
	}
	assert.Equal(t, first.Stats, second.Stats)
}

func TestSeeder_Run_ResumesIncompleteChildStep(t *testing.T) {
	db, first := seeded(t)
	ctx := context.Background()

	require.NoError(t, db.Session(ctx).Exec("DELETE FROM invoices").Error)
	require.NoError(t, db.Session(ctx).Exec("DELETE FROM seed_steps WHERE name = ?", progress.StepPolicyInvoices.String()).Error)

	second, err := newSeeder(db, smallConfig()).Run(ctx, false)
	require.NoError(t, err)

	invoices, ok := second.Step(progress.StepPolicyInvoices)
	require.True(t, ok)
	assert.False(t, invoices.Skipped)
	assert.Equal(t, 60, invoices.Inserted)
	assert.Equal(t, 60, second.Inserted())

	history, ok := second.Step(progress.StepPolicyStatusHistory)
	require.True(t, ok)
	assert.True(t, history.Skipped)
	assert.Equal(t, first.Stats.Invoices, second.Stats.Invoices)
}

func TestSeeder_Run_InvoiceNumbersContinueAfterResume(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	saved, err := persistence.NewSequenceStore(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sequence.Start+60, saved[sequence.Policy])
	assert.Equal(t, sequence.Start+60, saved[sequence.Invoice])

	require.NoError(t, db.Session(ctx).Exec("DELETE FROM invoices WHERE id > 30").Error)
	require.NoError(t, db.Session(ctx).Exec("DELETE FROM seed_steps WHERE name = ?", progress.StepPolicyInvoices.String()).Error)

	_, err = newSeeder(db, smallConfig()).Run(ctx, false)
	require.NoError(t, err)

	invoices, err := persistence.NewInvoiceStore(db).Find(ctx, query.WithOrderDesc("id"), query.WithLimit(1))
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Contains(t, invoices[0].Number, "/100090")
}

func TestSeeder_Run_TopsUpRootStep(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	require.NoError(t, db.Session(ctx).Exec("DELETE FROM seed_steps WHERE name = ?", progress.StepClients.String()).Error)

	summary, err := newSeeder(db, smallConfig().WithClients(60)).Run(ctx, false)
	require.NoError(t, err)

	clients, ok := summary.Step(progress.StepClients)
	require.True(t, ok)
	assert.Equal(t, 20, clients.Inserted)
	assert.Equal(t, map[string]int64{"B2C": 45, "B2B": 9, "VIP": 4, "Corporate": 2}, summary.Stats.ClientsByType)
}

func TestSeeder_Run_Reset(t *testing.T) {
	db, first := seeded(t)
	ctx := context.Background()

	second, err := newSeeder(db, smallConfig()).Run(ctx, true)
	require.NoError(t, err)

	assert.True(t, second.Reset)
	assert.Positive(t, second.Inserted())
	assert.Equal(t, first.Stats, second.Stats)

	runs, err := newSeeder(db, smallConfig()).Runs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, second.RunID, runs[0].ID())
	assert.Equal(t, progress.RunCompleted, runs[0].State())
}

func TestSeeder_Run_Cancelled(t *testing.T) {
	db := testdb.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := newSeeder(db, smallConfig()).Run(ctx, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	runs, err := persistence.NewRunStore(db).Latest(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, summary.RunID, runs[0].ID())
	assert.Equal(t, progress.RunFailed, runs[0].State())
}

func TestSeeder_Run_TooFewAgents(t *testing.T) {
	db := testdb.New(t)

	_, err := newSeeder(db, smallConfig().WithAgents(10)).Run(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, hierarchy.ErrTooFewAgents)
	assert.Contains(t, err.Error(), progress.StepAgents.String())

	steps, err := persistence.NewStepStore(db).All(context.Background())
	require.NoError(t, err)
	assert.True(t, steps[progress.StepClientContacts].IsComplete())
	assert.False(t, steps[progress.StepAgents].IsComplete())
}

func TestSeeder_Run_InvalidConfig(t *testing.T) {
	db := testdb.New(t)

	_, err := newSeeder(db, smallConfig().WithClients(-1)).Run(context.Background(), false)
	assert.True(t, errors.Is(err, config.ErrInvalidSeedConfig))
}

func TestSeeder_Run_Reproducible(t *testing.T) {
	db1, _ := seeded(t)
	db2, _ := seeded(t)
	ctx := context.Background()

	p1, err := persistence.NewPolicyStore(db1).Find(ctx, query.WithOrderAsc("id"))
	require.NoError(t, err)
	p2, err := persistence.NewPolicyStore(db2).Find(ctx, query.WithOrderAsc("id"))
	require.NoError(t, err)
	require.Equal(t, len(p1), len(p2))
	for i := range p1 {
		assert.Equal(t, p1[i].Number, p2[i].Number)
		assert.True(t, p1[i].Premium.Equal(p2[i].Premium))
	}
}

func TestSeeded_ClientInvariants(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	clients, err := persistence.NewClientStore(db).Find(ctx)
	require.NoError(t, err)
	addresses, err := persistence.NewAddressStore(db).Find(ctx)
	require.NoError(t, err)
	contacts, err := persistence.NewContactStore(db).Find(ctx)
	require.NoError(t, err)

	current := map[int64]int{}
	for _, a := range addresses {
		assert.Regexp(t, `^\d{2}-\d{3}$`, a.PostalCode)
		if a.Current {
			current[a.ClientID]++
			assert.Nil(t, a.ValidTo)
		} else {
			require.NotNil(t, a.ValidTo)
			assert.True(t, a.ValidTo.After(a.ValidFrom))
		}
	}
	primary := map[int64]int{}
	for _, c := range contacts {
		if c.Primary {
			primary[c.ClientID]++
			assert.Equal(t, broker.ContactEmail, c.Type)
		}
	}

	for _, c := range clients {
		assert.Equal(t, 1, current[c.ID], "client %d current addresses", c.ID)
		assert.Equal(t, 1, primary[c.ID], "client %d primary contacts", c.ID)
		if c.IsPerson() {
			assert.NotNil(t, c.DateOfBirth)
			assert.Len(t, c.TaxID, 11)
		} else {
			assert.Nil(t, c.FirstName)
			assert.Regexp(t, `^\d{3}-\d{3}-\d{2}-\d{2}$`, c.TaxID)
		}
	}
}

func TestSeeded_AgentTree(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	agents, err := persistence.NewAgentStore(db).Find(ctx)
	require.NoError(t, err)

	managers := make(map[int64]*int64, len(agents))
	for _, a := range agents {
		managers[a.ID] = a.ManagerID
		assert.Regexp(t, `^[a-z0-9.-]+@brokersystem\.pl$`, a.Email)
		if a.IsRoot() {
			assert.Equal(t, "Jan", a.FirstName)
			assert.Equal(t, "Kowalski", a.LastName)
			assert.True(t, a.Active)
		}
	}
	depths, err := hierarchy.Depths(managers)
	require.NoError(t, err)

	deepest := 0
	for _, a := range agents {
		assert.Equal(t, a.Level, depths[a.ID])
		deepest = max(deepest, depths[a.ID])
	}
	assert.Equal(t, hierarchy.Depth, deepest)

	roles, err := persistence.NewUserRoleStore(db).Find(ctx)
	require.NoError(t, err)
	assert.Greater(t, len(roles), len(agents))
}

func TestSeeded_PolicyInvariants(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	policies, err := persistence.NewPolicyStore(db).Find(ctx)
	require.NoError(t, err)
	agents, err := persistence.NewAgentStore(db).Find(ctx)
	require.NoError(t, err)
	rates := map[int64]decimal.Decimal{}
	for _, a := range agents {
		rates[a.ID] = a.CommissionRate
	}
	byID := map[int64]broker.Policy{}
	for _, p := range policies {
		byID[p.ID] = p
		assert.True(t, p.EndDate.After(p.StartDate))
		k := p.SumInsured.Div(p.Premium)
		assert.True(t, k.IsInteger(), "sum insured %s is not a whole multiple of %s", p.SumInsured, p.Premium)
	}

	commissions, err := persistence.NewCommissionStore(db).Find(ctx)
	require.NoError(t, err)
	for _, c := range commissions {
		p := byID[c.PolicyID]
		assert.True(t, c.Rate.Equal(rates[p.AgentID]))
		assert.True(t, c.Amount.Equal(money.Percent(p.Premium, c.Rate)))
	}

	invoices, err := persistence.NewInvoiceStore(db).Find(ctx)
	require.NoError(t, err)
	for _, inv := range invoices {
		assert.True(t, inv.Gross.Equal(inv.Net.Add(inv.VAT)))
		assert.True(t, inv.Net.Equal(byID[inv.PolicyID].Premium))
	}

	beneficiaries, err := persistence.NewBeneficiaryStore(db).Find(ctx)
	require.NoError(t, err)
	shares := map[int64]decimal.Decimal{}
	for _, b := range beneficiaries {
		shares[b.PolicyID] = shares[b.PolicyID].Add(b.Share)
	}
	for id, total := range shares {
		assert.True(t, total.Equal(decimal.NewFromInt(100)), "policy %d shares sum to %s", id, total)
	}

	payments, err := persistence.NewPaymentStore(db).Find(ctx)
	require.NoError(t, err)
	paid := map[int64]decimal.Decimal{}
	for _, pay := range payments {
		assert.False(t, pay.PaymentDate.After(fixedNow))
		paid[pay.PolicyID] = paid[pay.PolicyID].Add(pay.Amount)
	}
	for id, total := range paid {
		p := byID[id]
		assert.True(t, total.LessThanOrEqual(p.Premium))
		if p.EndDate.Before(fixedNow.AddDate(-1, 0, 0)) {
			assert.True(t, total.Equal(p.Premium), "policy %s paid %s of %s", p.Number, total, p.Premium)
		}
	}
}

func TestSeeded_ClaimInvariants(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	dict, err := persistence.NewReferenceStore(db).Dictionary(ctx)
	require.NoError(t, err)
	found, err := persistence.NewClaimStore(db).Find(ctx)
	require.NoError(t, err)
	history, err := persistence.NewClaimHistoryStore(db).Find(ctx, query.WithOrderAsc("id"))
	require.NoError(t, err)
	payments, err := persistence.NewClaimPaymentStore(db).Find(ctx)
	require.NoError(t, err)

	paidOut := map[int64]decimal.Decimal{}
	for _, p := range payments {
		paidOut[p.ClaimID] = paidOut[p.ClaimID].Add(p.Amount)
	}
	trail := map[int64][]broker.ClaimStatusChange{}
	for _, h := range history {
		trail[h.ClaimID] = append(trail[h.ClaimID], h)
	}

	for _, c := range found {
		status, err := dict.ClaimStatusByID(c.StatusID)
		require.NoError(t, err)
		assert.False(t, c.ReportedDate.Before(c.IncidentDate))

		switch status.Name {
		case broker.ClaimApproved, broker.ClaimPaid:
			require.True(t, c.ApprovedAmount.Valid, c.Number)
			assert.True(t, c.ApprovedAmount.Decimal.LessThanOrEqual(c.ClaimedAmount))
		default:
			assert.False(t, c.ApprovedAmount.Valid, c.Number)
		}
		if status.Name == broker.ClaimPaid {
			assert.True(t, paidOut[c.ID].Equal(c.ApprovedAmount.Decimal), c.Number)
		} else {
			assert.True(t, paidOut[c.ID].IsZero(), c.Number)
		}

		rows := trail[c.ID]
		require.NotEmpty(t, rows, c.Number)
		assert.Nil(t, rows[0].OldStatusID)
		assert.Equal(t, c.StatusID, rows[len(rows)-1].NewStatusID)
		for i := 1; i < len(rows); i++ {
			assert.True(t, rows[i].ChangedAt.After(rows[i-1].ChangedAt), c.Number)
			assert.Equal(t, rows[i-1].NewStatusID, *rows[i].OldStatusID)
		}
	}
}

func claimCutoff() time.Time {
	return time.Date(fixedNow.Year(), fixedNow.Month(), fixedNow.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, -claims.EligibleAfterMonths, 0)
}

func TestSeeded_ClaimsOnlyOnEligiblePolicies(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	policies, err := persistence.NewPolicyStore(db).Find(ctx)
	require.NoError(t, err)
	startDates := make(map[int64]time.Time, len(policies))
	for _, p := range policies {
		startDates[p.ID] = p.StartDate
	}

	found, err := persistence.NewClaimStore(db).Find(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	for _, c := range found {
		start, ok := startDates[c.PolicyID]
		require.True(t, ok, c.Number)
		assert.True(t, start.Before(claimCutoff()), "claim %s on policy started %s", c.Number, start)
	}
}

func TestSeeder_Run_MoreClaimsThanEligiblePolicies(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()
	cfg := smallConfig().WithPolicies(10).WithClaims(200)

	summary, err := newSeeder(db, cfg).Run(ctx, false)
	require.NoError(t, err)

	policies, err := persistence.NewPolicyStore(db).Find(ctx)
	require.NoError(t, err)
	require.Len(t, policies, 10)
	eligible := map[int64]bool{}
	for _, p := range policies {
		if p.StartDate.Before(claimCutoff()) {
			eligible[p.ID] = true
		}
	}

	found, err := persistence.NewClaimStore(db).Find(ctx)
	require.NoError(t, err)
	if len(eligible) == 0 {
		assert.Empty(t, found)
		return
	}
	assert.Equal(t, int64(200), summary.Stats.Claims)
	require.Len(t, found, 200)
	for _, c := range found {
		assert.True(t, eligible[c.PolicyID], c.Number)
	}
}

func TestSeeder_Run_WarnsAboutUnweightedClientType(t *testing.T) {
	db, _ := seeded(t)
	ctx := context.Background()

	partner := persistence.ClientTypeModel{Name: "Partner", DiscountRate: decimal.Zero}
	require.NoError(t, db.Session(ctx).Create(&partner).Error)
	client := persistence.ClientModel{
		ClientTypeID:     partner.ID,
		TaxID:            "5260250995",
		RegistrationDate: fixedNow.AddDate(-2, 0, 0),
		IsActive:         true,
		RiskScore:        decimal.NewFromInt(50),
	}
	require.NoError(t, db.Session(ctx).Create(&client).Error)
	require.NoError(t, db.Session(ctx).Exec("DELETE FROM seed_steps WHERE name = ?", progress.StepPolicies.String()).Error)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	summary, err := NewSeeder(db, smallConfig().WithPolicies(80), clock, logger).Run(ctx, false)
	require.NoError(t, err)

	policies, ok := summary.Step(progress.StepPolicies)
	require.True(t, ok)
	assert.Equal(t, 20, policies.Inserted)
	assert.Contains(t, buf.String(), "client type has no sampling weight")
	assert.Contains(t, buf.String(), "client_type=Partner")

	var onPartner int64
	require.NoError(t, db.Session(ctx).Raw("SELECT COUNT(*) FROM policies WHERE client_id = ?", client.ID).Scan(&onPartner).Error)
	assert.Zero(t, onPartner)
}
