package scoring

import "github.com/cespare/xxhash/v2"

// NameJitter maps a body's name to a fixed offset in [-amplitude, +amplitude].
// It breaks ties between otherwise identical bodies; the same name always
// yields the same offset.
func NameJitter(name string, amplitude float64) float64 {
	h := xxhash.Sum64String(name)
	u := float64(h>>11) / float64(uint64(1)<<53) // [0, 1)
	return (u*2 - 1) * amplitude
}
