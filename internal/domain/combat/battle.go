// Package combat resolves fleet battles.
//
// A battle is fought wherever fleets of players hostile to each other share a
// position and at least one side is armed. Every token (one stack of ships
// of one design) is placed on a square board at its side's starting square
// and the battle runs for a fixed number of rounds.
//
// # Round structure
//
//  1. Movement: armed tokens close on their chosen target until it is in
//     range of their longest weapon. Tokens that want to leave move away from
//     the nearest threat and leave the board once they have survived enough
//     rounds and no enemy weapon reaches them.
//  2. Fire: every weapon slot fires once, highest initiative first, ties
//     broken by player number and token number. Beams lose damage with
//     distance and strike shields before armor. Torpedoes roll to hit; a hit
//     splits its damage between shields and armor, a miss splashes shields.
//
// The battle ends early when no armed token has a target left. All rolls
// come from the turn's Random, so a battle is reproducible from the seed.
package combat

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// Engine resolves battles for one turn.
type Engine struct {
	rules  *rules.Rules
	techs  *rules.TechCatalog
	random *shared.Random
}

// NewEngine creates an engine drawing from the turn's random stream.
func NewEngine(rs *rules.Rules, techs *rules.TechCatalog, random *shared.Random) *Engine {
	return &Engine{rules: rs, techs: techs, random: random}
}

// ResolveAll fights every battle site in the world, in site order.
func (e *Engine) ResolveAll(w *game.World) []*game.BattleRecord {
	var records []*game.BattleRecord
	for _, site := range FindSites(w) {
		if record := e.Resolve(w, site); record != nil {
			records = append(records, record)
		}
	}
	return records
}

// Resolve fights one site and applies the outcome to the world. It returns
// nil when the site holds nothing that can fight.
func (e *Engine) Resolve(w *game.World, site Site) *game.BattleRecord {
	b := e.newBattle(w, site)
	if len(b.tokens) == 0 || !b.anyoneCanFight() {
		return nil
	}
	b.run()
	b.finish(w)
	return b.record
}

type battle struct {
	engine *Engine
	site   Site
	size   int
	tokens []*battleToken
	record *game.BattleRecord
}

func (e *Engine) newBattle(w *game.World, site Site) *battle {
	players := site.Players()
	side := make(map[int]int, len(players))
	for i, p := range players {
		side[p] = i
	}

	b := &battle{engine: e, site: site, size: e.rules.BattleGridSize}
	b.record = &game.BattleRecord{
		ID:       e.random.GUID(),
		Year:     w.Year,
		Position: site.Position,
		Players:  players,
		Stats: game.BattleStats{
			ShipsByPlayer:          map[int]int{},
			ShipsDestroyedByPlayer: map[int]int{},
			DamageTakenByPlayer:    map[int]int{},
			RanAwayByPlayer:        map[int]int{},
		},
	}
	if site.Planet != nil {
		b.record.PlanetID = site.Planet.ID
	}

	for _, f := range site.Fleets {
		owner := w.Player(f.PlayerNum)
		if owner == nil {
			continue
		}
		plan := owner.BattlePlan(f.BattlePlanNum)
		for _, st := range f.Tokens {
			if st.Design == nil || st.Quantity <= 0 {
				continue
			}
			t := &battleToken{
				num:           len(b.tokens) + 1,
				playerNum:     f.PlayerNum,
				fleet:         f,
				ship:          st,
				design:        st.Design,
				plan:          plan,
				owner:         owner,
				pos:           startPosition(side[f.PlayerNum], b.size),
				shields:       float64(st.Design.Spec.Shield * st.Quantity),
				initiative:    st.Design.Spec.Initiative,
				movement:      (st.Design.Spec.Movement + 1) / 2,
				startQuantity: st.Quantity,
			}
			b.tokens = append(b.tokens, t)
			b.record.Stats.ShipsByPlayer[t.playerNum] += st.Quantity
			b.record.Tokens = append(b.record.Tokens, game.BattleRecordToken{
				Num:        t.num,
				PlayerNum:  t.playerNum,
				FleetID:    f.ID,
				DesignNum:  st.DesignNum,
				DesignName: st.Design.Name,
				Quantity:   st.Quantity,
				Armor:      st.Design.Spec.Armor,
				Shields:    st.Design.Spec.Shield,
				Damage:     st.Damage,
				Initiative: t.initiative,
				Movement:   t.movement,
				Tactic:     plan.Tactic,
				Position:   t.pos,
			})
		}
	}
	return b
}

func (b *battle) run() {
	for round := 1; round <= b.engine.rules.NumBattleRounds; round++ {
		if !b.anyoneCanFight() {
			break
		}
		b.record.Stats.NumRounds = round
		b.move(round)
		b.fire(round)
		for _, t := range b.tokens {
			if t.alive() {
				t.roundsSurvived++
			}
		}
	}
}

// anyoneCanFight reports whether some armed token still has a live target.
func (b *battle) anyoneCanFight() bool {
	for _, a := range b.tokens {
		if !a.alive() || !a.armed() {
			continue
		}
		for _, t := range b.tokens {
			if t.alive() && a.willAttack(t) {
				return true
			}
		}
	}
	return false
}

// chooseTarget picks the best target for attacker within maxRange squares;
// a negative maxRange ignores distance.
func (b *battle) chooseTarget(attacker *battleToken, maxRange int) *battleToken {
	for _, class := range []game.BattleTarget{attacker.plan.PrimaryTarget, attacker.plan.SecondaryTarget} {
		if class == game.TargetNone {
			continue
		}
		var candidates []*battleToken
		for _, t := range b.tokens {
			if !t.alive() || !attacker.willAttack(t) || !t.matches(class) {
				continue
			}
			if maxRange >= 0 && boardDistance(attacker.pos, t.pos) > maxRange {
				continue
			}
			candidates = append(candidates, t)
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			ai, aj := candidates[i].attractiveness(), candidates[j].attractiveness()
			if ai != aj {
				return ai > aj
			}
			di, dj := boardDistance(attacker.pos, candidates[i].pos), boardDistance(attacker.pos, candidates[j].pos)
			if di != dj {
				return di < dj
			}
			return candidates[i].num < candidates[j].num
		})
		return candidates[0]
	}
	return nil
}

// nearestThreat is the closest live armed token that wants t dead.
func (b *battle) nearestThreat(t *battleToken) *battleToken {
	var best *battleToken
	for _, e := range b.tokens {
		if !e.alive() || !e.armed() || !e.willAttack(t) {
			continue
		}
		if best == nil || boardDistance(t.pos, e.pos) < boardDistance(t.pos, best.pos) {
			best = e
		}
	}
	return best
}

// inEnemyRange reports whether any hostile weapon reaches t.
func (b *battle) inEnemyRange(t *battleToken) bool {
	for _, e := range b.tokens {
		if e.alive() && e.armed() && e.willAttack(t) && boardDistance(t.pos, e.pos) <= e.design.Spec.MaxWeaponRange() {
			return true
		}
	}
	return false
}

func (b *battle) move(round int) {
	order := make([]*battleToken, 0, len(b.tokens))
	for _, t := range b.tokens {
		if t.alive() && t.movement > 0 {
			order = append(order, t)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].movement != order[j].movement {
			return order[i].movement > order[j].movement
		}
		return order[i].num < order[j].num
	})

	for _, t := range order {
		from := t.pos
		if t.wantsToRun() {
			if t.roundsSurvived >= b.engine.rules.RunAwayAfterRounds && !b.inEnemyRange(t) {
				t.ranAway = true
				b.record.Stats.RanAwayByPlayer[t.playerNum] += t.ship.Quantity
				b.record.Actions = append(b.record.Actions, game.BattleRecordAction{
					Round: round, TokenNum: t.num, Kind: game.BattleActionRanAway, From: from, To: from,
				})
				continue
			}
			if threat := b.nearestThreat(t); threat != nil {
				for step := 0; step < t.movement; step++ {
					t.pos = stepAway(t.pos, threat.pos, b.size)
				}
			}
		} else if target := b.chooseTarget(t, -1); target != nil {
			reach := t.design.Spec.MaxWeaponRange()
			for step := 0; step < t.movement && boardDistance(t.pos, target.pos) > reach; step++ {
				t.pos = stepToward(t.pos, target.pos)
			}
		}
		if t.pos != from {
			b.record.Actions = append(b.record.Actions, game.BattleRecordAction{
				Round: round, TokenNum: t.num, Kind: game.BattleActionMove, From: from, To: t.pos,
			})
		}
	}
}

type shot struct {
	token  *battleToken
	weapon game.WeaponSlot
	slot   int
}

func (b *battle) fire(round int) {
	var shots []shot
	for _, t := range b.tokens {
		if !t.alive() {
			continue
		}
		for i, w := range t.design.Spec.Weapons {
			shots = append(shots, shot{token: t, weapon: w, slot: i})
		}
	}
	sort.SliceStable(shots, func(i, j int) bool {
		a, c := shots[i], shots[j]
		if a.weapon.Initiative != c.weapon.Initiative {
			return a.weapon.Initiative > c.weapon.Initiative
		}
		if a.token.playerNum != c.token.playerNum {
			return a.token.playerNum < c.token.playerNum
		}
		if a.token.num != c.token.num {
			return a.token.num < c.token.num
		}
		return a.slot < c.slot
	})

	for _, s := range shots {
		if !s.token.alive() {
			continue
		}
		target := b.chooseTarget(s.token, s.weapon.Range)
		if target == nil {
			continue
		}
		count := s.weapon.Quantity * s.token.ship.Quantity
		action := game.BattleRecordAction{
			Round:     round,
			TokenNum:  s.token.num,
			Kind:      game.BattleActionFire,
			From:      s.token.pos,
			To:        target.pos,
			TargetNum: target.num,
			Weapon:    s.weapon.Name,
		}

		var toShields, toArmor float64
		var destroyed int
		switch s.weapon.Type {
		case rules.WeaponTorpedo:
			hits := 0
			for i := 0; i < count; i++ {
				if b.engine.random.Chance(float64(s.weapon.Accuracy) / 100) {
					hits++
				}
			}
			hitDamage := float64(s.weapon.Power * hits)
			splash := float64(s.weapon.Power*(count-hits)) * b.engine.rules.TorpedoSplashDamage
			shieldsHit, armorHit, killed := b.damage(target, hitDamage/2, hitDamage/2, true)
			splashHit, _, _ := b.damage(target, splash, 0, false)
			toShields, toArmor, destroyed = shieldsHit+splashHit, armorHit, killed
			action.Missed = hits == 0
		default:
			dist := boardDistance(s.token.pos, target.pos)
			falloff := 1.0
			if s.weapon.Range > 0 {
				falloff = 1 - b.engine.rules.BeamRangeDropoff*float64(dist)/float64(s.weapon.Range)
			}
			toShields, toArmor, destroyed = b.damage(target, float64(s.weapon.Power*count)*falloff, 0, true)
		}

		action.DamageToShields = int(toShields + 0.5)
		action.DamageToArmor = int(toArmor + 0.5)
		action.TokensDestroyed = destroyed
		b.record.Actions = append(b.record.Actions, action)

		b.record.Stats.ShipsDestroyedByPlayer[target.playerNum] += destroyed
		b.record.Stats.DamageTakenByPlayer[target.playerNum] += int(toShields + toArmor + 0.5)
		if target.ship.Quantity == 0 && !target.destroyed {
			target.destroyed = true
			b.record.Actions = append(b.record.Actions, game.BattleRecordAction{
				Round: round, TokenNum: target.num, Kind: game.BattleActionDestroyed, From: target.pos, To: target.pos,
			})
		}
	}
}

// damage applies shield then armor damage to a token. With overflow, damage
// the shields cannot absorb carries into armor. It returns the damage done
// to shields and armor and the ships destroyed.
func (b *battle) damage(t *battleToken, shieldDamage, armorDamage float64, overflow bool) (float64, float64, int) {
	absorbed := min(t.shields, shieldDamage)
	t.shields -= absorbed
	if overflow {
		armorDamage += shieldDamage - absorbed
	}
	destroyed := 0
	if armorDamage > 0 {
		destroyed = t.ship.ApplyArmorDamage(armorDamage)
	}
	t.shields = min(t.shields, float64(t.design.Spec.Shield*t.ship.Quantity))
	t.challenged = true
	t.damageTaken += absorbed + armorDamage
	return absorbed, armorDamage, destroyed
}

// finish applies losses to fleets, leaves salvage, rolls tech gain and
// tells every participant.
func (b *battle) finish(w *game.World) {
	rs := b.engine.rules
	var salvage shared.Cargo
	lostByPlayer := map[int]int{}
	fleets := map[*game.Fleet]bool{}
	for _, t := range b.tokens {
		lost := t.startQuantity - t.ship.Quantity
		if lost > 0 {
			lostByPlayer[t.playerNum] += lost
			minerals := t.design.Spec.Cost.Minerals()
			salvage = salvage.Add(minerals.Scale(float64(lost*rs.SalvageFromBattlePercent) / 100))
		}
		fleets[t.fleet] = true
	}
	for _, f := range b.site.Fleets {
		if !fleets[f] {
			continue
		}
		f.RemoveEmptyTokens()
		if !f.HasTokens() {
			f.Delete = true
			salvage = salvage.Add(f.Cargo.Minerals())
			f.Cargo = shared.Cargo{}
		}
	}

	if !salvage.IsZero() {
		if b.site.Planet != nil {
			b.site.Planet.Cargo = b.site.Planet.Cargo.Add(salvage)
		} else {
			w.AddSalvage(&game.Salvage{
				ID:        b.engine.random.GUID(),
				PlayerNum: game.Unowned,
				Position:  b.site.Position,
				Cargo:     salvage,
			})
		}
	}

	b.gainTech(w)

	where := fmt.Sprintf("(%.0f, %.0f)", b.site.Position.X, b.site.Position.Y)
	if b.site.Planet != nil {
		where = b.site.Planet.Name
	}
	for _, num := range b.record.Players {
		p := w.Player(num)
		if p == nil {
			continue
		}
		enemyLosses := 0
		for other, lost := range lostByPlayer {
			if other != num {
				enemyLosses += lost
			}
		}
		p.AddMessage(game.NewBattleMessage(b.record, fmt.Sprintf(
			"A battle took place at %s. You lost %d ships; %d enemy ships were destroyed.",
			where, lostByPlayer[num], enemyLosses)))
	}
}

// gainTech gives each player still on the field a chance to learn one level
// from the wreckage of an enemy design more advanced than its own tech.
func (b *battle) gainTech(w *game.World) {
	for _, num := range b.record.Players {
		survived := false
		for _, t := range b.tokens {
			if t.playerNum == num && t.ship.Quantity > 0 {
				survived = true
				break
			}
		}
		p := w.Player(num)
		if !survived || p == nil {
			continue
		}
		field, ok := b.learnableField(p)
		if !ok || !b.engine.random.Chance(b.engine.rules.TechGainChance) {
			continue
		}
		p.TechLevels.Add(field, 1)
		p.ComputeDesignSpecs(b.engine.rules, b.engine.techs)
		p.AddMessage(game.NewBattleMessage(b.record, fmt.Sprintf(
			"Your scientists studied the wreckage and gained a level in %s.", field)))
	}
}

func (b *battle) learnableField(p *game.Player) (rules.TechField, bool) {
	for _, t := range b.tokens {
		if t.playerNum == p.Num || t.startQuantity == t.ship.Quantity {
			continue
		}
		req := t.design.Requirements(b.engine.techs)
		for _, f := range rules.TechFields {
			if req.Get(f) > p.TechLevels.Get(f) && p.TechLevels.Get(f) < rules.MaxTechLevel {
				return f, true
			}
		}
	}
	return 0, false
}
