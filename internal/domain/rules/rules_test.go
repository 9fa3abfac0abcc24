package rules_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/stars-go/internal/domain/rules"
)

func TestDefaultRules_AreValid(t *testing.T) {
	require.NoError(t, rules.Default().Validate())
}

func TestParseRules_OverridesOnlyGivenKeys(t *testing.T) {
	// Arrange
	data := []byte("seed: 99\nmineral_decay_factor: 1000\nrandom_events:\n  comet: 0.5\n")

	// Act
	r, err := rules.ParseRules(data)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(99), r.Seed)
	assert.Equal(t, 1000, r.MineralDecayFactor)
	assert.Equal(t, 0.5, r.RandomEvents.Comet)
	assert.Equal(t, 0.0, r.RandomEvents.MineralDeposit)
	assert.Equal(t, rules.Default().MaxPopulation, r.MaxPopulation)
}

func TestParseRules_RejectsInvalid(t *testing.T) {
	_, err := rules.ParseRules([]byte("mineral_decay_factor: 0\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mineral_decay_factor")
}

func TestResearchCostForLevel(t *testing.T) {
	r := rules.Default()

	assert.Equal(t, 50, r.ResearchCostForLevel(1, rules.ResearchCostNormal, 0))
	assert.Equal(t, 25+60, r.ResearchCostForLevel(1, rules.ResearchCostCheap, 6))
	assert.Equal(t, 228, r.ResearchCostForLevel(3, rules.ResearchCostExpensive, 0))
	assert.Equal(t, -1, r.ResearchCostForLevel(rules.MaxTechLevel+1, rules.ResearchCostNormal, 0))
}

func TestMiniaturization(t *testing.T) {
	r := rules.Default()
	laser, ok := rules.DefaultTechCatalog().Component(rules.BeamXRayLaser)
	require.True(t, ok)

	t.Run("at requirement there is no discount", func(t *testing.T) {
		level := rules.TechLevel{Weapons: 3}
		assert.Equal(t, 0.0, r.MiniaturizationFactor(laser.Requirements, level))
		assert.Equal(t, laser.Cost, r.MiniaturizedCost(laser, level))
	})

	t.Run("five levels above gives twenty percent", func(t *testing.T) {
		level := rules.TechLevel{Weapons: 8}
		assert.InDelta(t, 0.20, r.MiniaturizationFactor(laser.Requirements, level), 1e-9)
		assert.Equal(t, rules.Cost{Boranium: 5, Resources: 5}, r.MiniaturizedCost(laser, level))
	})

	t.Run("discount is capped", func(t *testing.T) {
		level := rules.TechLevel{Weapons: 26}
		assert.InDelta(t, 0.75, r.MiniaturizationFactor(laser.Requirements, level), 1e-9)

		free := &rules.Tech{Cost: rules.Cost{Resources: 100}}
		assert.InDelta(t, 0.75, r.MiniaturizationFactor(free.Requirements, rules.TechLevel{
			Energy: 26, Weapons: 26, Propulsion: 26, Construction: 26, Electronics: 26, Biotechnology: 26,
		}), 1e-9)
	})
}

func TestTechCatalog_Lookups(t *testing.T) {
	catalog := rules.DefaultTechCatalog()

	hull, ok := catalog.Hull(rules.HullScout)
	require.True(t, ok)
	assert.Equal(t, rules.TechKindHull, hull.Kind)

	_, ok = catalog.Hull(rules.BeamLaser)
	assert.False(t, ok, "a component is not a hull")

	assert.Equal(t, rules.PlanetaryViewer50, catalog.BestPlanetaryScanner(rules.TechLevel{}).Name)
	assert.Equal(t, "Scoper 150", catalog.BestPlanetaryScanner(rules.TechLevel{Electronics: 4}).Name)
	assert.Equal(t, rules.DefenseSDI, catalog.BestDefense(rules.TechLevel{}).Name)
	assert.Equal(t, 0, catalog.TerraformAbility(rules.TechLevel{}, rules.HabGravity))
	assert.Equal(t, 5, catalog.TerraformAbility(rules.TechLevel{Propulsion: 1, Biotechnology: 3}, rules.HabGravity))
}

func TestNewTechCatalog_RejectsMismatchedPayload(t *testing.T) {
	_, err := rules.NewTechCatalog([]*rules.Tech{{
		Name:    "Broken",
		Kind:    rules.TechKindDefense,
		Scanner: &rules.PlanetaryScannerSpec{ScanRange: 10},
	}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing its Defense payload")
}

func TestLoadTechCatalog_OverridesAndAdds(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "techs.yaml")
	content := `techs:
  - name: Laser
    kind: HullComponent
    cost: {boranium: 1, resources: 1}
    component: {slot: Weapon, mass: 1, weapon: 1, power: 99, range: 2}
  - name: Probe Hull
    kind: Hull
    hull:
      mass: 5
      armor: 5
      slots:
        - {type: "Engine", capacity: 1, required: true}
        - {type: "Scanner|Electrical", capacity: 1}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// Act
	catalog, err := rules.LoadTechCatalog(path)

	// Assert
	require.NoError(t, err)
	laser, ok := catalog.Component(rules.BeamLaser)
	require.True(t, ok)
	assert.Equal(t, 99, laser.Component.Power)

	probe, ok := catalog.Hull("Probe Hull")
	require.True(t, ok)
	assert.True(t, probe.Hull.Slots[1].Type.Accepts(rules.SlotElectrical))
	assert.False(t, probe.Hull.Slots[1].Type.Accepts(rules.SlotWeapon))

	_, ok = catalog.Hull(rules.HullScout)
	assert.True(t, ok, "defaults not named in the file are kept")
}

func TestTechLevel_LevelsAbove(t *testing.T) {
	level := rules.TechLevel{Energy: 5, Weapons: 2, Propulsion: 7}

	assert.Equal(t, 2, level.LevelsAbove(rules.TechLevel{Energy: 3, Propulsion: 4}))
	assert.Equal(t, 0, level.LevelsAbove(rules.TechLevel{Weapons: 4}))
	assert.Equal(t, 0, level.LevelsAbove(rules.TechLevel{}), "no requirements measures against the lowest field")
	assert.Equal(t, rules.Construction, level.Lowest())
}
