package universe

import (
	"encoding/binary"
	"strings"

	"lukechampine.com/blake3"

	"github.com/andrescamacho/stars-go/internal/domain/shared"
)

var starNames = []string{
	"Achernar", "Acrux", "Adhara", "Albireo", "Alcor", "Aldebaran", "Alderamin", "Algol",
	"Alhena", "Alioth", "Alkaid", "Almach", "Alnilam", "Alphard", "Altair", "Ankaa",
	"Antares", "Arcturus", "Ascella", "Atria", "Avior", "Bellatrix", "Betelgeuse", "Canopus",
	"Capella", "Caph", "Castor", "Deneb", "Diphda", "Dubhe", "Elnath", "Eltanin",
	"Enif", "Fomalhaut", "Gacrux", "Gienah", "Hadar", "Hamal", "Izar", "Kochab",
	"Markab", "Menkar", "Merak", "Miaplacidus", "Mimosa", "Mintaka", "Mirach", "Mirfak",
	"Mizar", "Naos", "Nunki", "Peacock", "Phecda", "Polaris", "Pollux", "Procyon",
	"Rasalhague", "Regulus", "Rigel", "Sabik", "Sadr", "Saiph", "Scheat", "Schedar",
	"Shaula", "Sirius", "Spica", "Suhail", "Tarazed", "Thuban", "Unukalhai", "Vega",
	"Wezen", "Zaurak", "Zosma", "Zubenelgenubi",
}

var syllables = []string{
	"ka", "lo", "ri", "ne", "tha", "vor", "sel", "mi", "dra", "qu", "an", "zen",
	"or", "bel", "cy", "ux", "pha", "ter", "ion", "sa", "gol", "ir", "nu", "vel",
}

// names returns n distinct planet names. The known star names come first in
// shuffled order; the rest are built from syllables hashed off the seed.
func names(random *shared.Random, seed int64, n int) []string {
	pool := append([]string(nil), starNames...)
	random.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n <= len(pool) {
		return pool[:n]
	}
	used := make(map[string]bool, n)
	for _, name := range pool {
		used[name] = true
	}
	for i := 0; len(pool) < n; i++ {
		name := generatedName(seed, i)
		if used[name] {
			continue
		}
		used[name] = true
		pool = append(pool, name)
	}
	return pool
}

// generatedName hashes seed and index into two to four syllables.
func generatedName(seed int64, index int) string {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(index))
	sum := blake3.Sum256(buf[:])

	count := 2 + int(sum[0]%3)
	var b strings.Builder
	for i := 0; i < count; i++ {
		b.WriteString(syllables[int(sum[i+1])%len(syllables)])
	}
	name := b.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
