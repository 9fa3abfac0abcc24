package game

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

// GameState tracks where a game is in its lifecycle.
type GameState string

const (
	GameStateSetup             GameState = "SETUP"
	GameStateWaitingForPlayers GameState = "WAITING_FOR_PLAYERS"
	GameStateGeneratingTurn    GameState = "GENERATING_TURN"
	GameStateFinished          GameState = "FINISHED"
)

// World is the complete authoritative game state. Entity slices are owned by
// the world and kept in a deterministic order; cross references are
// GUIDs or player numbers, with pointer shortcuts rebuilt by Link.
type World struct {
	GameID         string             `json:"gameId"`
	Name           string             `json:"name"`
	Year           int                `json:"year"`
	State          GameState          `json:"state"`
	Rules          *rules.Rules       `json:"rules"`
	Techs          *rules.TechCatalog `json:"-"`
	Players        []*Player          `json:"players"`
	Planets        []*Planet          `json:"planets"`
	Fleets         []*Fleet           `json:"fleets"`
	MineralPackets []*MineralPacket   `json:"mineralPackets"`
	MineFields     []*MineField       `json:"mineFields"`
	Wormholes      []*Wormhole        `json:"wormholes"`
	Salvages       []*Salvage         `json:"salvages"`
	MysteryTraders []*MysteryTrader   `json:"mysteryTraders"`
	BattleRecords  []*BattleRecord    `json:"battleRecords"` // this year only
	VictorDeclared bool               `json:"victorDeclared"`

	planets       map[uuid.UUID]*Planet
	fleets        map[uuid.UUID]*Fleet
	packets       map[uuid.UUID]*MineralPacket
	mineFields    map[uuid.UUID]*MineField
	wormholes     map[uuid.UUID]*Wormhole
	battleRecords map[uuid.UUID]*BattleRecord
}

// BuildIndex rebuilds the GUID lookup maps from the entity slices.
func (w *World) BuildIndex() {
	w.planets = make(map[uuid.UUID]*Planet, len(w.Planets))
	for _, p := range w.Planets {
		w.planets[p.ID] = p
	}
	w.fleets = make(map[uuid.UUID]*Fleet, len(w.Fleets))
	for _, f := range w.Fleets {
		w.fleets[f.ID] = f
	}
	w.packets = make(map[uuid.UUID]*MineralPacket, len(w.MineralPackets))
	for _, p := range w.MineralPackets {
		w.packets[p.ID] = p
	}
	w.mineFields = make(map[uuid.UUID]*MineField, len(w.MineFields))
	for _, m := range w.MineFields {
		w.mineFields[m.ID] = m
	}
	w.wormholes = make(map[uuid.UUID]*Wormhole, len(w.Wormholes))
	for _, wh := range w.Wormholes {
		w.wormholes[wh.ID] = wh
	}
	w.battleRecords = make(map[uuid.UUID]*BattleRecord, len(w.BattleRecords))
	for _, r := range w.BattleRecords {
		w.battleRecords[r.ID] = r
	}
}

// Link resolves pointer shortcuts: token designs, fleet orbits and planet
// starbases. Unknown design numbers are returned as missing references.
func (w *World) Link() []error {
	w.BuildIndex()
	var errs []error
	for _, p := range w.Planets {
		p.Starbase = nil
	}
	for _, f := range w.Fleets {
		owner := w.Player(f.PlayerNum)
		if owner == nil {
			errs = append(errs, shared.NewMissingReferenceError("player", fmt.Sprint(f.PlayerNum)))
			continue
		}
		for _, t := range f.Tokens {
			t.Design = nil
			for _, d := range owner.Designs {
				if d.Num == t.DesignNum {
					t.Design = d
					break
				}
			}
			if t.Design == nil {
				errs = append(errs, shared.NewMissingReferenceError("design", fmt.Sprintf("%d/%d", f.PlayerNum, t.DesignNum)))
			}
		}
		f.Orbiting = w.PlanetAt(f.Position)
		if f.Starbase && f.Orbiting != nil {
			f.Orbiting.Starbase = f
		}
	}
	return errs
}

func (w *World) Planet(id uuid.UUID) *Planet {
	if w.planets == nil {
		w.BuildIndex()
	}
	return w.planets[id]
}

func (w *World) Fleet(id uuid.UUID) *Fleet {
	if w.fleets == nil {
		w.BuildIndex()
	}
	return w.fleets[id]
}

func (w *World) MineralPacket(id uuid.UUID) *MineralPacket {
	if w.packets == nil {
		w.BuildIndex()
	}
	return w.packets[id]
}

func (w *World) MineField(id uuid.UUID) *MineField {
	if w.mineFields == nil {
		w.BuildIndex()
	}
	return w.mineFields[id]
}

func (w *World) Wormhole(id uuid.UUID) *Wormhole {
	if w.wormholes == nil {
		w.BuildIndex()
	}
	return w.wormholes[id]
}

func (w *World) BattleRecord(id uuid.UUID) *BattleRecord {
	if w.battleRecords == nil {
		w.BuildIndex()
	}
	return w.battleRecords[id]
}

// Player returns player num (1-based) or nil.
func (w *World) Player(num int) *Player {
	if num < 1 || num > len(w.Players) {
		return nil
	}
	return w.Players[num-1]
}

// Design resolves a design by owner and number.
func (w *World) Design(playerNum, designNum int) *ShipDesign {
	p := w.Player(playerNum)
	if p == nil {
		return nil
	}
	return p.Design(designNum)
}

// PlanetAt returns the planet sitting exactly at pos.
func (w *World) PlanetAt(pos shared.Vector) *Planet {
	for _, p := range w.Planets {
		if p.Position == pos {
			return p
		}
	}
	return nil
}

// NextFleetNum is one past the highest fleet number owned by a player.
func (w *World) NextFleetNum(playerNum int) int {
	next := 1
	for _, f := range w.Fleets {
		if f.PlayerNum == playerNum && f.Num >= next {
			next = f.Num + 1
		}
	}
	return next
}

// AddFleet registers a new fleet. A zero Num is assigned from the owner's
// sequence. Starbases attach to the planet they orbit, replacing any old one.
func (w *World) AddFleet(f *Fleet) {
	if f.Num == 0 {
		f.Num = w.NextFleetNum(f.PlayerNum)
	}
	if f.Name == "" {
		f.Name = fmt.Sprintf("Fleet #%d", f.Num)
	}
	if len(f.Waypoints) == 0 {
		f.Waypoints = []*Waypoint{NewPositionWaypoint(f.Position, 0)}
	}
	if f.Orbiting == nil {
		f.Orbiting = w.PlanetAt(f.Position)
	}
	if f.Starbase && f.Orbiting != nil {
		if old := f.Orbiting.Starbase; old != nil && old != f {
			old.Delete = true
		}
		f.Orbiting.Starbase = f
	}
	w.Fleets = append(w.Fleets, f)
	if w.fleets != nil {
		w.fleets[f.ID] = f
	}
}

func (w *World) AddMineralPacket(p *MineralPacket) {
	if p.Num == 0 {
		for _, other := range w.MineralPackets {
			if other.PlayerNum == p.PlayerNum && other.Num >= p.Num {
				p.Num = other.Num
			}
		}
		p.Num++
	}
	w.MineralPackets = append(w.MineralPackets, p)
	if w.packets != nil {
		w.packets[p.ID] = p
	}
}

func (w *World) AddMineField(m *MineField) {
	if m.Num == 0 {
		for _, other := range w.MineFields {
			if other.PlayerNum == m.PlayerNum && other.Num >= m.Num {
				m.Num = other.Num
			}
		}
		m.Num++
	}
	w.MineFields = append(w.MineFields, m)
	if w.mineFields != nil {
		w.mineFields[m.ID] = m
	}
}

func (w *World) AddSalvage(s *Salvage) {
	s.Num = len(w.Salvages) + 1
	w.Salvages = append(w.Salvages, s)
}

func (w *World) AddBattleRecord(r *BattleRecord) {
	w.BattleRecords = append(w.BattleRecords, r)
	if w.battleRecords != nil {
		w.battleRecords[r.ID] = r
	}
}

// MineFieldsNear returns fields whose radius covers pos.
func (w *World) MineFieldsNear(pos shared.Vector) []*MineField {
	var out []*MineField
	for _, m := range w.MineFields {
		if !m.Delete && m.Contains(pos) {
			out = append(out, m)
		}
	}
	return out
}

// PlanetsOwnedBy returns a player's planets in world order.
func (w *World) PlanetsOwnedBy(playerNum int) []*Planet {
	var out []*Planet
	for _, p := range w.Planets {
		if p.OwnedBy(playerNum) {
			out = append(out, p)
		}
	}
	return out
}

// FleetsOwnedBy returns a player's live fleets, starbases included.
func (w *World) FleetsOwnedBy(playerNum int) []*Fleet {
	var out []*Fleet
	for _, f := range w.Fleets {
		if f.PlayerNum == playerNum && !f.Delete {
			out = append(out, f)
		}
	}
	return out
}

// FleetsAt returns live fleets at a position.
func (w *World) FleetsAt(pos shared.Vector) []*Fleet {
	var out []*Fleet
	for _, f := range w.Fleets {
		if !f.Delete && f.Position == pos {
			out = append(out, f)
		}
	}
	return out
}

// RemoveDeleted drops every entity marked for deletion, detaching dead
// starbases from their planets, and rebuilds the index.
func (w *World) RemoveDeleted() {
	fleets := w.Fleets[:0]
	for _, f := range w.Fleets {
		if f.Delete {
			if f.Starbase && f.Orbiting != nil && f.Orbiting.Starbase == f {
				f.Orbiting.Starbase = nil
			}
			continue
		}
		fleets = append(fleets, f)
	}
	w.Fleets = fleets

	packets := w.MineralPackets[:0]
	for _, p := range w.MineralPackets {
		if !p.Delete {
			packets = append(packets, p)
		}
	}
	w.MineralPackets = packets

	fields := w.MineFields[:0]
	for _, m := range w.MineFields {
		if !m.Delete {
			fields = append(fields, m)
		}
	}
	w.MineFields = fields

	salvages := w.Salvages[:0]
	for _, s := range w.Salvages {
		if !s.Delete {
			salvages = append(salvages, s)
		}
	}
	w.Salvages = salvages

	wormholes := w.Wormholes[:0]
	for _, wh := range w.Wormholes {
		if !wh.Delete {
			wormholes = append(wormholes, wh)
		}
	}
	w.Wormholes = wormholes

	traders := w.MysteryTraders[:0]
	for _, mt := range w.MysteryTraders {
		if !mt.Delete {
			traders = append(traders, mt)
		}
	}
	w.MysteryTraders = traders

	w.BuildIndex()
}

// SortFleets orders fleets by owner then number so iteration is stable
// regardless of creation order within a phase.
func (w *World) SortFleets() {
	sort.SliceStable(w.Fleets, func(i, j int) bool {
		if w.Fleets[i].PlayerNum != w.Fleets[j].PlayerNum {
			return w.Fleets[i].PlayerNum < w.Fleets[j].PlayerNum
		}
		return w.Fleets[i].Num < w.Fleets[j].Num
	})
}

// Validate checks the structural invariants a loaded world must satisfy.
func (w *World) Validate() error {
	if w.Rules == nil {
		return shared.NewInvalidWorldError("rules missing")
	}
	for i, p := range w.Players {
		if p.Num != i+1 {
			return shared.NewInvalidWorldError(fmt.Sprintf("player %d stored at slot %d", p.Num, i+1))
		}
	}
	seen := make(map[uuid.UUID]bool, len(w.Planets)+len(w.Fleets))
	for _, p := range w.Planets {
		if seen[p.ID] {
			return shared.NewInvalidWorldError("duplicate id " + p.ID.String())
		}
		seen[p.ID] = true
		if p.Owned() && w.Player(p.PlayerNum) == nil {
			return shared.NewInvalidWorldError(fmt.Sprintf("planet %s owned by unknown player %d", p.Name, p.PlayerNum))
		}
	}
	for _, f := range w.Fleets {
		if seen[f.ID] {
			return shared.NewInvalidWorldError("duplicate id " + f.ID.String())
		}
		seen[f.ID] = true
		if w.Player(f.PlayerNum) == nil {
			return shared.NewInvalidWorldError(fmt.Sprintf("fleet %s owned by unknown player %d", f.Name, f.PlayerNum))
		}
	}
	return nil
}
