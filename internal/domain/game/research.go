package game

import (
	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

// Research spends a year's research resources. Resources go into the field
// being researched; once it levels up the remainder flows into the field
// picked by NextResearchField. It returns the fields that gained a level, in
// the order they were gained.
func (p *Player) Research(rs *rules.Rules, resources int) []rules.TechField {
	var gained []rules.TechField
	field := p.Researching
	for resources > 0 {
		if p.TechLevels.Get(field) >= rules.MaxTechLevel {
			next, ok := p.nextResearchField(field)
			if !ok {
				break
			}
			field = next
			p.Researching = next
			continue
		}
		spent, leveled := p.invest(rs, field, resources)
		resources -= spent
		if !leveled {
			break
		}
		gained = append(gained, field)
		if next, ok := p.nextResearchField(field); ok {
			field = next
			p.Researching = next
		}
	}
	return gained
}

// AddResearch puts resources into one field without touching the player's
// research choices. Stolen research arrives this way.
func (p *Player) AddResearch(rs *rules.Rules, field rules.TechField, resources int) []rules.TechField {
	var gained []rules.TechField
	for resources > 0 && p.TechLevels.Get(field) < rules.MaxTechLevel {
		spent, leveled := p.invest(rs, field, resources)
		resources -= spent
		if !leveled {
			break
		}
		gained = append(gained, field)
	}
	return gained
}

// ResearchCost is what the next level of field costs this player.
func (p *Player) ResearchCost(rs *rules.Rules, field rules.TechField) int {
	return rs.ResearchCostForLevel(p.TechLevels.Get(field)+1, p.Race.ResearchCost.Get(field), p.TechLevels.Sum())
}

// invest spends up to resources on field and reports what was spent and
// whether the field reached its next level.
func (p *Player) invest(rs *rules.Rules, field rules.TechField, resources int) (int, bool) {
	cost := p.ResearchCost(rs, field)
	if cost < 0 {
		return 0, false
	}
	need := cost - p.TechLevelsSpent.Get(field)
	if resources < need {
		p.TechLevelsSpent.Add(field, resources)
		p.ResearchSpent.Add(field, resources)
		return resources, false
	}
	need = max(need, 0)
	p.ResearchSpent.Add(field, need)
	p.TechLevelsSpent.Set(field, 0)
	p.TechLevels.Add(field, 1)
	return need, true
}

// nextResearchField picks where research goes after field levels up. Maxed
// fields are skipped; false means everything is maxed.
func (p *Player) nextResearchField(field rules.TechField) (rules.TechField, bool) {
	var next rules.TechField
	switch p.NextResearchField {
	case NextResearchSameField:
		next = field
	case NextResearchLowestField:
		next = p.TechLevels.Lowest()
	default:
		next = rules.TechField(p.NextResearchField - NextResearchEnergy)
	}
	if p.TechLevels.Get(next) < rules.MaxTechLevel {
		return next, true
	}
	for _, f := range rules.TechFields {
		if p.TechLevels.Get(f) < rules.MaxTechLevel {
			return f, true
		}
	}
	return next, false
}
