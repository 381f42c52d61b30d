// Package hierarchy plans the four-level agent management tree.
package hierarchy

import (
	"errors"
	"fmt"

	"github.com/helixml/brokerseed/domain/money"
	"github.com/helixml/brokerseed/domain/sampling"
	"github.com/shopspring/decimal"
)

// Level is the depth of a node, 1 for the root.
type Level int

// Tree levels.
const (
	LevelRoot Level = iota + 1
	LevelRegional
	LevelTeamLead
	LevelAgent
)

// Depth is the number of levels in every planned tree.
const Depth = int(LevelAgent)

// Team-lead fan-out per regional manager.
const (
	MinTeamLeads = 3
	MaxTeamLeads = 4
)

var (
	// ErrTooFewAgents indicates a total too small to give every team lead a leaf.
	ErrTooFewAgents = errors.New("too few agents for a four-level tree")
	// ErrNotATree indicates manager links that do not form a single rooted tree.
	ErrNotATree = errors.New("manager links do not form a rooted tree")
)

// String returns the role name of the level.
func (l Level) String() string {
	switch l {
	case LevelRoot:
		return "ceo"
	case LevelRegional:
		return "regional_manager"
	case LevelTeamLead:
		return "team_lead"
	case LevelAgent:
		return "agent"
	default:
		return fmt.Sprintf("level_%d", int(l))
	}
}

// MinAgents returns the smallest total that NewPlan accepts for regions.
func MinAgents(regions int) int {
	return 1 + regions + MinTeamLeads*regions + MinTeamLeads*regions
}

// Plan is the shape of an agent tree before any row exists.
type Plan struct {
	regions   int
	teamLeads []int
	leaves    []int
}

// NewPlan draws a tree of exactly total nodes: one root, regions regional
// managers, 3–4 team leads per region and the remaining budget spread over
// team leads as evenly as possible, the remainder going one each to the
// first team leads. Team-lead counts shrink toward 3 while there would be
// fewer leaves than team leads.
func NewPlan(total, regions int, src sampling.Source) (Plan, error) {
	if regions < 1 {
		return Plan{}, fmt.Errorf("%w: regions=%d", ErrTooFewAgents, regions)
	}
	if total < MinAgents(regions) {
		return Plan{}, fmt.Errorf("%w: total=%d, need at least %d for %d regions",
			ErrTooFewAgents, total, MinAgents(regions), regions)
	}

	teamLeads := make([]int, regions)
	tl := 0
	for i := range teamLeads {
		teamLeads[i] = sampling.IntBetween(src, MinTeamLeads, MaxTeamLeads)
		tl += teamLeads[i]
	}

	leaves := total - 1 - regions - tl
	for i := len(teamLeads) - 1; i >= 0 && leaves < tl; i-- {
		if teamLeads[i] > MinTeamLeads {
			teamLeads[i]--
			tl--
			leaves++
		}
	}

	perLead := make([]int, tl)
	base, rest := leaves/tl, leaves%tl
	for i := range perLead {
		perLead[i] = base
		if i < rest {
			perLead[i]++
		}
	}

	return Plan{regions: regions, teamLeads: teamLeads, leaves: perLead}, nil
}

// Regions returns the number of regional managers.
func (p Plan) Regions() int { return p.regions }

// TeamLeads returns the team-lead count per region.
func (p Plan) TeamLeads() []int { return append([]int(nil), p.teamLeads...) }

// Leaves returns the leaf count per team lead, team leads in region order.
func (p Plan) Leaves() []int { return append([]int(nil), p.leaves...) }

// Count returns the number of nodes at level.
func (p Plan) Count(level Level) int {
	switch level {
	case LevelRoot:
		return 1
	case LevelRegional:
		return p.regions
	case LevelTeamLead:
		return len(p.leaves)
	case LevelAgent:
		n := 0
		for _, l := range p.leaves {
			n += l
		}
		return n
	default:
		return 0
	}
}

// Size returns the total number of nodes.
func (p Plan) Size() int {
	n := 0
	for l := LevelRoot; l <= LevelAgent; l++ {
		n += p.Count(l)
	}
	return n
}

// Parents returns, for every node of level, the index of its manager within
// the previous level in insertion order. The root has parent -1.
func (p Plan) Parents(level Level) []int {
	var fanout []int
	switch level {
	case LevelRoot:
		return []int{-1}
	case LevelRegional:
		fanout = []int{p.regions}
	case LevelTeamLead:
		fanout = p.teamLeads
	case LevelAgent:
		fanout = p.leaves
	default:
		return nil
	}
	parents := make([]int, 0, p.Count(level))
	for parent, n := range fanout {
		for range n {
			parents = append(parents, parent)
		}
	}
	return parents
}

// Rate returns the commission rate for a node at level: 5 for the root, 8
// for regional managers, 10 for team leads and a uniform 12–18 for agents.
func Rate(level Level, src sampling.Source) decimal.Decimal {
	switch level {
	case LevelRoot:
		return decimal.NewFromInt(5)
	case LevelRegional:
		return decimal.NewFromInt(8)
	case LevelTeamLead:
		return decimal.NewFromInt(10)
	default:
		return money.FromFloat(sampling.FloatBetween(src, 12, 18))
	}
}

// Depths checks that managers (node id to manager id, nil for the root)
// forms one rooted, acyclic tree and returns every node's level.
func Depths(managers map[int64]*int64) (map[int64]int, error) {
	var root int64
	roots := 0
	children := make(map[int64][]int64, len(managers))
	for id, m := range managers {
		if m == nil {
			root = id
			roots++
			continue
		}
		if _, ok := managers[*m]; !ok {
			return nil, fmt.Errorf("%w: node %d has unknown manager %d", ErrNotATree, id, *m)
		}
		children[*m] = append(children[*m], id)
	}
	if roots != 1 {
		return nil, fmt.Errorf("%w: %d roots", ErrNotATree, roots)
	}

	depths := map[int64]int{root: 1}
	queue := []int64{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, c := range children[id] {
			depths[c] = depths[id] + 1
			queue = append(queue, c)
		}
	}
	if len(depths) != len(managers) {
		return nil, fmt.Errorf("%w: %d nodes unreachable from the root", ErrNotATree, len(managers)-len(depths))
	}
	return depths, nil
}
