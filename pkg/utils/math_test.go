package utils_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/stars-go/pkg/utils"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, utils.Clamp(-5, 0, 10))
	assert.Equal(t, 10, utils.Clamp(50, 0, 10))
	assert.Equal(t, 7, utils.Clamp(7, 0, 10))
}

func TestRoundToNearest100(t *testing.T) {
	assert.Equal(t, 1200, utils.RoundToNearest100(1249))
	assert.Equal(t, 1300, utils.RoundToNearest100(1250))
	assert.Equal(t, 0, utils.RoundToNearest100(49))
	assert.Equal(t, -100, utils.RoundToNearest100Int(-120))
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 0, utils.CeilDiv(0, 20000))
	assert.Equal(t, 1, utils.CeilDiv(1, 20000))
	assert.Equal(t, 2, utils.CeilDiv(20001, 20000))
}

func TestGenerateGameID(t *testing.T) {
	id := utils.GenerateGameID("Sector 7 -- Cup!")
	assert.Regexp(t, regexp.MustCompile(`^sector-7-cup-[0-9a-f]{8}$`), id)

	assert.Regexp(t, regexp.MustCompile(`^game-[0-9a-f]{8}$`), utils.GenerateGameID("!!!"))
}
