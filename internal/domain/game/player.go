package game

import (
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

// PlayerRelation is how one player regards another.
type PlayerRelation int

const (
	RelationEnemy PlayerRelation = iota
	RelationNeutral
	RelationFriend
)

// NextResearchField chooses where research goes once the current field levels up.
type NextResearchField int

const (
	NextResearchSameField NextResearchField = iota
	NextResearchLowestField
	NextResearchEnergy
	NextResearchWeapons
	NextResearchPropulsion
	NextResearchConstruction
	NextResearchElectronics
	NextResearchBiotechnology
)

// BattleTactic governs how a token engages.
type BattleTactic int

const (
	TacticDisengage BattleTactic = iota
	TacticDisengageIfChallenged
	TacticMinimizeDamageToSelf
	TacticMaximizeNetDamage
	TacticMaximizeDamageRatio
	TacticMaximizeDamage
)

// BattleTarget is a class of token a battle plan prefers to shoot.
type BattleTarget int

const (
	TargetNone BattleTarget = iota
	TargetAny
	TargetStarbase
	TargetArmedShips
	TargetBombersFreighters
	TargetUnarmedShips
	TargetFuelTransports
	TargetFreighters
)

// BattleAttackWho picks which players a battle plan treats as targets.
type BattleAttackWho int

const (
	AttackEnemies BattleAttackWho = iota
	AttackEnemiesAndNeutrals
	AttackEveryone
)

type BattlePlan struct {
	Num             int             `json:"num"`
	Name            string          `json:"name"`
	PrimaryTarget   BattleTarget    `json:"primaryTarget"`
	SecondaryTarget BattleTarget    `json:"secondaryTarget"`
	Tactic          BattleTactic    `json:"tactic"`
	AttackWho       BattleAttackWho `json:"attackWho"`
}

// DefaultBattlePlan is every player's plan 0.
func DefaultBattlePlan() BattlePlan {
	return BattlePlan{
		Num:             0,
		Name:            "Default",
		PrimaryTarget:   TargetArmedShips,
		SecondaryTarget: TargetAny,
		Tactic:          TacticMaximizeDamageRatio,
		AttackWho:       AttackEnemiesAndNeutrals,
	}
}

// Player is one seat in the game.
type Player struct {
	Num          int    `json:"num"`
	Name         string `json:"name"`
	Race         Race   `json:"race"`
	AIControlled bool   `json:"aiControlled"`
	AIProcessor  string `json:"aiProcessor,omitempty"`

	TechLevels        rules.TechLevel   `json:"techLevels"`
	TechLevelsSpent   rules.TechLevel   `json:"techLevelsSpent"`
	Researching       rules.TechField   `json:"researching"`
	NextResearchField NextResearchField `json:"nextResearchField"`
	ResearchAmount    int               `json:"researchAmount"` // percent of resources
	ResearchSpent     rules.TechLevel   `json:"researchSpentLastYear"`

	Designs     []*ShipDesign    `json:"designs"`
	BattlePlans []BattlePlan     `json:"battlePlans"`
	Relations   []PlayerRelation `json:"relations"` // indexed by player num - 1

	Intel    PlayerIntel `json:"intel"`
	Messages []Message   `json:"messages"`

	SubmittedTurn             bool                   `json:"submittedTurn"`
	Score                     PlayerScore            `json:"score"`
	ScoreHistory              []PlayerScore          `json:"scoreHistory,omitempty"`
	AchievedVictoryConditions rules.VictoryCondition `json:"achievedVictoryConditions"`
	Victor                    bool                   `json:"victor"`
}

// Design looks up a live design by number.
func (p *Player) Design(num int) *ShipDesign {
	for _, d := range p.Designs {
		if d.Num == num && !d.Deleted {
			return d
		}
	}
	return nil
}

// DesignByName looks up a live design by name.
func (p *Player) DesignByName(name string) *ShipDesign {
	for _, d := range p.Designs {
		if d.Name == name && !d.Deleted {
			return d
		}
	}
	return nil
}

// NextDesignNum is one past the highest design number.
func (p *Player) NextDesignNum() int {
	next := 1
	for _, d := range p.Designs {
		if d.Num >= next {
			next = d.Num + 1
		}
	}
	return next
}

// BattlePlan returns plan num, falling back to the default plan.
func (p *Player) BattlePlan(num int) BattlePlan {
	for _, plan := range p.BattlePlans {
		if plan.Num == num {
			return plan
		}
	}
	return DefaultBattlePlan()
}

// RelationTo reports this player's stance toward another. Players regard
// themselves as friends and everyone else as enemies unless told otherwise.
func (p *Player) RelationTo(other int) PlayerRelation {
	if other == p.Num {
		return RelationFriend
	}
	if other >= 1 && other <= len(p.Relations) {
		return p.Relations[other-1]
	}
	return RelationEnemy
}

// IsEnemy reports whether other is an enemy.
func (p *Player) IsEnemy(other int) bool {
	return p.RelationTo(other) == RelationEnemy
}

// WillAttack reports whether a battle plan makes this player shoot at other.
func (p *Player) WillAttack(plan BattlePlan, other int) bool {
	if other == p.Num {
		return false
	}
	switch p.RelationTo(other) {
	case RelationFriend:
		return plan.AttackWho == AttackEveryone
	case RelationNeutral:
		return plan.AttackWho != AttackEnemies
	}
	return true
}

// AddMessage queues a message for the player.
func (p *Player) AddMessage(m Message) {
	p.Messages = append(p.Messages, m)
}

// ComputeDesignSpecs recomputes every design's cached spec.
func (p *Player) ComputeDesignSpecs(rs *rules.Rules, techs *rules.TechCatalog) []error {
	var errs []error
	for _, d := range p.Designs {
		spec, err := ComputeSpec(d, rs, techs, &p.Race, p.TechLevels)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		d.Spec = spec
	}
	return errs
}
