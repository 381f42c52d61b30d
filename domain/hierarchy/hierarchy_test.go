package hierarchy

import (
	"testing"

	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan_DefaultShape(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		p, err := NewPlan(100, 5, sampling.NewSource(seed))
		require.NoError(t, err)

		assert.Equal(t, 100, p.Size())
		assert.Equal(t, 1, p.Count(LevelRoot))
		assert.Equal(t, 5, p.Count(LevelRegional))
		assert.GreaterOrEqual(t, p.Count(LevelTeamLead), 15)
		assert.LessOrEqual(t, p.Count(LevelTeamLead), 20)

		leaves := p.Leaves()
		lo, hi := leaves[0], leaves[0]
		for _, l := range leaves {
			lo, hi = min(lo, l), max(hi, l)
		}
		assert.LessOrEqual(t, hi-lo, 1, "leaves are spread evenly")
		assert.Equal(t, hi, leaves[0], "remainder goes to the first team leads")
		assert.Positive(t, lo)
	}
}

func TestNewPlan_NoAgentDropped(t *testing.T) {
	for total := MinAgents(5); total <= 160; total++ {
		p, err := NewPlan(total, 5, sampling.NewSource(uint64(total)))
		require.NoError(t, err, "total=%d", total)
		assert.Equal(t, total, p.Size(), "total=%d", total)
		for _, l := range p.Leaves() {
			assert.Positive(t, l, "every team lead has a leaf, total=%d", total)
		}
	}
}

func TestNewPlan_TightBudgetShrinksTeamLeads(t *testing.T) {
	p, err := NewPlan(MinAgents(5), 5, sampling.NewSource(3))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3, 3, 3, 3}, p.TeamLeads())
	assert.Equal(t, 15, p.Count(LevelAgent))
}

func TestNewPlan_TooFew(t *testing.T) {
	_, err := NewPlan(35, 5, sampling.NewSource(1))
	assert.ErrorIs(t, err, ErrTooFewAgents)

	_, err = NewPlan(100, 0, sampling.NewSource(1))
	assert.ErrorIs(t, err, ErrTooFewAgents)

	assert.Equal(t, 36, MinAgents(5))
}

func TestPlan_Parents(t *testing.T) {
	p, err := NewPlan(40, 2, sampling.NewSource(9))
	require.NoError(t, err)

	assert.Equal(t, []int{-1}, p.Parents(LevelRoot))
	assert.Equal(t, []int{0, 0}, p.Parents(LevelRegional))

	tl := p.Parents(LevelTeamLead)
	assert.Len(t, tl, p.Count(LevelTeamLead))
	assert.Equal(t, 0, tl[0])
	assert.Equal(t, 1, tl[len(tl)-1])

	agents := p.Parents(LevelAgent)
	assert.Len(t, agents, p.Count(LevelAgent))
	assert.Equal(t, p.Count(LevelTeamLead)-1, agents[len(agents)-1])
	assert.Nil(t, p.Parents(Level(9)))
}

func TestRate(t *testing.T) {
	src := sampling.NewSource(4)
	assert.True(t, Rate(LevelRoot, src).Equal(decimal.NewFromInt(5)))
	assert.True(t, Rate(LevelRegional, src).Equal(decimal.NewFromInt(8)))
	assert.True(t, Rate(LevelTeamLead, src).Equal(decimal.NewFromInt(10)))

	for range 200 {
		r := Rate(LevelAgent, src)
		assert.True(t, r.GreaterThanOrEqual(decimal.NewFromInt(12)))
		assert.True(t, r.LessThanOrEqual(decimal.NewFromInt(18)))
		assert.GreaterOrEqual(t, r.Exponent(), int32(-2))
	}
}

func ptr(v int64) *int64 { return &v }

func TestDepths(t *testing.T) {
	depths, err := Depths(map[int64]*int64{
		1: nil,
		2: ptr(1),
		3: ptr(2),
		4: ptr(3),
		5: ptr(3),
	})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 4}, depths)
}

func TestDepths_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		managers map[int64]*int64
	}{
		{"two roots", map[int64]*int64{1: nil, 2: nil}},
		{"no root", map[int64]*int64{1: ptr(2), 2: ptr(1)}},
		{"unknown manager", map[int64]*int64{1: nil, 2: ptr(7)}},
		{"detached cycle", map[int64]*int64{1: nil, 2: ptr(3), 3: ptr(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Depths(tt.managers)
			assert.ErrorIs(t, err, ErrNotATree)
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "ceo", LevelRoot.String())
	assert.Equal(t, "agent", LevelAgent.String())
	assert.Equal(t, "level_7", Level(7).String())
}
