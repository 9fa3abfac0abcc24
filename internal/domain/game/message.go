package game

import (
	"fmt"

	"github.com/google/uuid"
)

// MessageType classifies a player message. Each type maps to one bit of a
// MessageMask.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageOrderRejected
	MessageProductionItemSkipped
	MessageBuiltFleet
	MessageBuiltStarbase
	MessageBuiltBuildings
	MessagePacketLaunched
	MessageTechGained
	MessageTechLevelResearched
	MessageColonized
	MessageColonizeFailed
	MessageInvasion
	MessagePlanetCaptured
	MessagePlanetAbandoned
	MessageCargoTransferred
	MessageFuelLow
	MessageFleetArrived
	MessageFleetScrapped
	MessageFleetMerged
	MessageFleetTransferred
	MessageMineFieldHit
	MessageMineFieldSwept
	MessageMineFieldLaid
	MessageBattle
	MessageBombed
	MessagePacketCaught
	MessagePacketDamage
	MessageWormholeJump
	MessageStargate
	MessageRandomEvent
	MessagePermaform
	MessageTerraformed
	MessageMysteryTrader
	MessageIdleFleet
	MessagePatrol
	MessageVictory
	MessageRemoteMined
	MessageResearchStolen
	messageTypeCount
)

var messageTypeNames = [...]string{
	"Info", "OrderRejected", "ProductionItemSkipped", "BuiltFleet", "BuiltStarbase",
	"BuiltBuildings", "PacketLaunched", "TechGained", "TechLevelResearched", "Colonized",
	"ColonizeFailed", "Invasion", "PlanetCaptured", "PlanetAbandoned", "CargoTransferred",
	"FuelLow", "FleetArrived", "FleetScrapped", "FleetMerged", "FleetTransferred",
	"MineFieldHit", "MineFieldSwept", "MineFieldLaid", "Battle", "Bombed",
	"PacketCaught", "PacketDamage", "WormholeJump", "Stargate", "RandomEvent",
	"Permaform", "Terraformed", "MysteryTrader", "IdleFleet", "Patrol",
	"Victory", "RemoteMined", "ResearchStolen",
}

func (t MessageType) String() string {
	if t >= 0 && t < messageTypeCount {
		return messageTypeNames[t]
	}
	return fmt.Sprintf("MessageType(%d)", int(t))
}

// MessageMask is a bit set of message types.
type MessageMask uint64

// MessageMaskAll selects every message type.
const MessageMaskAll = MessageMask(1<<uint(messageTypeCount)) - 1

// MaskOf builds a mask from types.
func MaskOf(types ...MessageType) MessageMask {
	var m MessageMask
	for _, t := range types {
		m |= 1 << uint(t)
	}
	return m
}

// Has reports whether the mask selects t.
func (m MessageMask) Has(t MessageType) bool {
	return m&(1<<uint(t)) != 0
}

// ParseMessageType maps a name to its type.
func ParseMessageType(s string) (MessageType, error) {
	for i, name := range messageTypeNames {
		if name == s {
			return MessageType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown message type %q", s)
}

// Message is addressed to one player. Battle messages carry the id of the
// battle record they report.
type Message struct {
	Type       MessageType   `json:"type"`
	Text       string        `json:"text"`
	TargetType MapObjectType `json:"targetType,omitempty"`
	TargetID   uuid.UUID     `json:"targetId"`
	BattleID   uuid.UUID     `json:"battleId"`
}

// FilterMessages keeps messages whose type the mask selects.
func FilterMessages(messages []Message, mask MessageMask) []Message {
	var out []Message
	for _, m := range messages {
		if mask.Has(m.Type) {
			out = append(out, m)
		}
	}
	return out
}

func NewMessage(t MessageType, text string) Message {
	return Message{Type: t, Text: text}
}

func NewPlanetMessage(t MessageType, p *Planet, text string) Message {
	return Message{Type: t, Text: text, TargetType: MapObjectPlanet, TargetID: p.ID}
}

func NewFleetMessage(t MessageType, f *Fleet, text string) Message {
	return Message{Type: t, Text: text, TargetType: MapObjectFleet, TargetID: f.ID}
}

func NewBattleMessage(record *BattleRecord, text string) Message {
	return Message{Type: MessageBattle, Text: text, TargetType: MapObjectBattle, TargetID: record.ID, BattleID: record.ID}
}
