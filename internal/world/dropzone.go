package world

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/sunhollow/farmstead/internal/domain"
	"github.com/sunhollow/farmstead/internal/logger"
)

// Position is a point in world space.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Drop is a physical item instance lying in the world, waiting to be
// picked back up.
type Drop struct {
	ID       string       `json:"id"`
	Item     *domain.Item `json:"item"`
	Position Position     `json:"position"`
}

// DropZone spawns and tracks ground drops. Purchases that overflow the
// inventory land here, scattered around the shop; nothing is ever lost,
// but nothing is refunded either.
type DropZone struct {
	mu            sync.Mutex
	scatterRadius float64
	drops         map[string]Drop
	rnd           func() float64
}

// NewDropZone creates a drop zone with the given scatter radius.
func NewDropZone(scatterRadius float64) *DropZone {
	if scatterRadius <= 0 {
		scatterRadius = domain.ShopDropScatterRadius
	}
	return &DropZone{
		scatterRadius: scatterRadius,
		drops:         make(map[string]Drop),
		rnd:           rand.Float64,
	}
}

// SpawnNear creates a drop of it at a uniformly random point in the disc
// of the scatter radius around origin, on the ground plane.
func (z *DropZone) SpawnNear(ctx context.Context, it *domain.Item, origin Position) Drop {
	z.mu.Lock()
	defer z.mu.Unlock()

	r := z.scatterRadius * math.Sqrt(z.rnd())
	theta := 2 * math.Pi * z.rnd()

	drop := Drop{
		ID:   uuid.NewString(),
		Item: it,
		Position: Position{
			X: origin.X + r*math.Cos(theta),
			Y: origin.Y,
			Z: origin.Z + r*math.Sin(theta),
		},
	}
	z.drops[drop.ID] = drop

	logger.FromContext(ctx).Debug("Item dropped in world", "item", it.InternalName, "drop_id", drop.ID)
	return drop
}

// Take removes a drop from the world, e.g. when the player picks it up.
func (z *DropZone) Take(id string) (Drop, bool) {
	z.mu.Lock()
	defer z.mu.Unlock()

	drop, ok := z.drops[id]
	if ok {
		delete(z.drops, id)
	}
	return drop, ok
}

// Drops returns every drop currently on the ground.
func (z *DropZone) Drops() []Drop {
	z.mu.Lock()
	defer z.mu.Unlock()

	out := make([]Drop, 0, len(z.drops))
	for _, d := range z.drops {
		out = append(out, d)
	}
	return out
}

// Len returns the number of drops on the ground.
func (z *DropZone) Len() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return len(z.drops)
}
