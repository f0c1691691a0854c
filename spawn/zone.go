package spawn

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
)

// Zone is an axis-aligned box enemies appear in.
type Zone struct {
	Center  cp.Vector `yaml:"center"`
	Extents cp.Vector `yaml:"extents"`
}

// RandomPosition picks a uniform point inside the zone.
func (z Zone) RandomPosition(rng *rand.Rand) cp.Vector {
	return cp.Vector{
		X: z.Center.X + between(rng, -z.Extents.X, z.Extents.X),
		Y: z.Center.Y + between(rng, -z.Extents.Y, z.Extents.Y),
	}
}

// RandomHeading picks a uniform unit direction.
func (z Zone) RandomHeading(rng *rand.Rand) cp.Vector {
	return cp.ForAngle(rng.Float64() * 2 * math.Pi)
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
