package turn

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"lukechampine.com/blake3"

	"github.com/andrescamacho/stars-go/internal/domain/game"
)

// Digest fingerprints a world. Two worlds with the same state give the
// same digest.
func Digest(w *game.World) (string, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("encoding world %s: %w", w.GameID, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
