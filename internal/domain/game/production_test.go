package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/domain/game"
	"github.com/andrescamacho/stars-go/internal/domain/game/gametest"
	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

func newProducer(w *game.World, p *game.Player) *game.Producer {
	return &game.Producer{Rules: w.Rules, Techs: w.Techs, Player: p}
}

func TestProduce_PartialAllocationCarriesOver(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	player := b.AddPlayer("Alice")
	player.ResearchAmount = 0
	planet := b.AddColony(player, "Home", 100, 100, 5000)
	planet.Factories = 0
	planet.Cargo = shared.Cargo{Germanium: 10}
	planet.ProductionQueue = []*game.ProductionQueueItem{{Type: game.QueueItemFactory, Quantity: 1}}
	w := b.Build()
	producer := newProducer(w, player)

	// Act: year one only has 5 resources for a 10 resource factory
	first := producer.Produce(planet)

	// Assert
	assert.Zero(t, first.Built[game.QueueItemFactory])
	require.Len(t, planet.ProductionQueue, 1)
	assert.Equal(t, 5, planet.ProductionQueue[0].Allocated.Resources)
	assert.Equal(t, 4, planet.ProductionQueue[0].Allocated.Germanium)
	assert.Equal(t, 6, planet.Cargo.Germanium)

	// Act: year two finishes it
	second := producer.Produce(planet)

	// Assert
	assert.Equal(t, 1, second.Built[game.QueueItemFactory])
	assert.Equal(t, 1, planet.Factories)
	assert.Empty(t, planet.ProductionQueue)
	assert.Equal(t, 6, planet.Cargo.Germanium)
}

func TestProduce_BlockedItemStopsQueue(t *testing.T) {
	b := gametest.NewWorld()
	player := b.AddPlayer("Alice")
	player.ResearchAmount = 0
	planet := b.AddColony(player, "Home", 100, 100, 5000)
	planet.Factories = 0
	planet.ProductionQueue = []*game.ProductionQueueItem{
		{Type: game.QueueItemFactory, Quantity: 1},
		{Type: game.QueueItemMine, Quantity: 1},
	}
	w := b.Build()

	result := newProducer(w, player).Produce(planet)

	assert.Zero(t, result.Built[game.QueueItemMine])
	assert.Len(t, planet.ProductionQueue, 2)
}

func TestProduce_AutoItemsPassThrough(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	player := b.AddPlayer("Alice")
	player.ResearchAmount = 0
	planet := b.AddColony(player, "Home", 100, 100, 20_000)
	planet.Factories = 0
	planet.Mines = 0
	planet.ProductionQueue = []*game.ProductionQueueItem{
		{Type: game.QueueItemAutoFactories, Quantity: 5},
		{Type: game.QueueItemMine, Quantity: 2},
	}
	w := b.Build()

	// Act: 20 resources, no germanium for factories
	result := newProducer(w, player).Produce(planet)

	// Assert
	assert.Zero(t, result.Built[game.QueueItemFactory])
	assert.Equal(t, 2, result.Built[game.QueueItemMine])
	require.Len(t, planet.ProductionQueue, 1)
	assert.Equal(t, game.QueueItemAutoFactories, planet.ProductionQueue[0].Type)
	assert.True(t, planet.ProductionQueue[0].Allocated.IsZero(), "auto items never hold partial funding")
	assert.Equal(t, 10, result.LeftoverResources)
	assert.Equal(t, 10, result.ResearchResources)
}

func TestProduce_MissingDesignIsSkippedWithMessage(t *testing.T) {
	// Arrange
	b := gametest.NewWorld()
	player := b.AddPlayer("Alice")
	player.ResearchAmount = 0
	planet := b.AddColony(player, "Home", 100, 100, 20_000)
	planet.Factories = 0
	b.AddStarbase(player, planet)
	planet.ProductionQueue = []*game.ProductionQueueItem{
		{Type: game.QueueItemShipToken, Quantity: 1, DesignNum: 99},
		{Type: game.QueueItemMine, Quantity: 1},
	}
	w := b.Build()

	// Act
	result := newProducer(w, player).Produce(planet)

	// Assert
	require.Len(t, result.MissingReferences, 1)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, game.MessageProductionItemSkipped, result.Messages[0].Type)
	assert.Equal(t, 1, result.Built[game.QueueItemMine])
	assert.Empty(t, planet.ProductionQueue)
}

func TestProduce_ResearchShareComesFirst(t *testing.T) {
	b := gametest.NewWorld()
	player := b.AddPlayer("Alice")
	player.ResearchAmount = 50
	planet := b.AddColony(player, "Home", 100, 100, 20_000)
	planet.Factories = 0
	w := b.Build()

	result := newProducer(w, player).Produce(planet)

	assert.Equal(t, 20, result.ResearchResources, "half up front plus the unspent half")
	assert.Equal(t, 10, result.LeftoverResources)
}

func TestProduce_ShipsNeedAStarbase(t *testing.T) {
	b := gametest.NewWorld()
	player := b.AddPlayer("Alice")
	player.ResearchAmount = 0
	planet := b.AddColony(player, "Colony", 100, 100, 20_000)
	planet.Cargo = shared.Cargo{Ironium: 500, Boranium: 500, Germanium: 500}
	scout := player.DesignByName(game.DesignScout)
	planet.ProductionQueue = []*game.ProductionQueueItem{{Type: game.QueueItemShipToken, Quantity: 1, DesignNum: scout.Num}}
	w := b.Build()

	result := newProducer(w, player).Produce(planet)

	assert.Empty(t, result.Ships)
	assert.Empty(t, planet.ProductionQueue)
	require.Len(t, result.Messages, 1)
	assert.Contains(t, result.Messages[0].Text, "no starbase")
}

func TestProduce_BuildsShipsAtStarbase(t *testing.T) {
	b := gametest.NewWorld()
	player := b.AddPlayer("Alice")
	player.ResearchAmount = 0
	planet := b.AddColony(player, "Home", 100, 100, 100_000)
	planet.Cargo = shared.Cargo{Ironium: 500, Boranium: 500, Germanium: 500}
	b.AddStarbase(player, planet)
	scout := player.DesignByName(game.DesignScout)
	planet.ProductionQueue = []*game.ProductionQueueItem{{Type: game.QueueItemShipToken, Quantity: 2, DesignNum: scout.Num}}
	w := b.Build()

	result := newProducer(w, player).Produce(planet)

	require.Len(t, result.Ships, 1)
	assert.Equal(t, scout, result.Ships[0].Design)
	assert.Equal(t, 2, result.Ships[0].Quantity)
}
