package runner

import (
	"github.com/vovakirdan/moonrunner/internal/config"
	"github.com/vovakirdan/moonrunner/internal/core"
)

// ObstacleKind tags an obstacle instance. Rendering is keyed by kind.
type ObstacleKind int

const (
	KindRockSmall ObstacleKind = iota
	KindRockBig
	KindMeteor
	KindCrater
	kindCount
)

// String returns the kind name.
func (k ObstacleKind) String() string {
	switch k {
	case KindRockSmall:
		return "ROCK_SMALL"
	case KindRockBig:
		return "ROCK_BIG"
	case KindMeteor:
		return "METEOR"
	case KindCrater:
		return "CRATER"
	default:
		return "UNKNOWN"
	}
}

// Obstacle is one pooled instance. Box is center-origin in world units.
// Craters sit below the ground line and never collide physically; they
// only trigger through the occupancy check.
type Obstacle struct {
	ID           EntityID
	Kind         ObstacleKind
	Lane         AirHazard // Meteors only
	Box          core.Box
	Active       bool
	RequiresJump bool
}

// Span returns the horizontal footprint [left, right].
func (o *Obstacle) Span() core.Span {
	return core.Span{Start: o.Box.Left(), End: o.Box.Right()}
}

// IsRigid reports whether the obstacle takes part in body collisions.
func (o *Obstacle) IsRigid() bool {
	return o.Kind != KindCrater
}

// ObstacleManager owns every obstacle instance of a run. Live obstacles are
// kept in three lists (ground, air, craters); despawned instances go back to
// a per-kind free list and are reused by the next spawn of that kind, so the
// number of allocations never exceeds the peak concurrent count.
type ObstacleManager struct {
	world     config.WorldConfig
	sizes     config.ObstacleConfig
	airFactor float64
	scene     Scene

	ground  []*Obstacle
	air     []*Obstacle
	craters []*Obstacle

	pools     [kindCount][]*Obstacle
	allocated [kindCount]int
	byID      map[EntityID]*Obstacle
	nextID    EntityID
}

// NewObstacleManager creates an empty manager. A nil scene is replaced by
// NopScene.
func NewObstacleManager(cfg *config.RunnerConfig, scene Scene) *ObstacleManager {
	if scene == nil {
		scene = NopScene{}
	}
	m := &ObstacleManager{
		scene: scene,
		byID:  make(map[EntityID]*Obstacle),
	}
	m.Configure(cfg)
	m.nextID = PlayerID + 1
	return m
}

// Configure replaces world geometry and sizes. Instances already alive keep
// their boxes; call Reset to start clean.
func (m *ObstacleManager) Configure(cfg *config.RunnerConfig) {
	m.world = cfg.World
	m.sizes = cfg.Obstacles
	m.airFactor = cfg.Spawn.AirSpeedFactor
}

// SetScene replaces the scene collaborator.
func (m *ObstacleManager) SetScene(scene Scene) {
	if scene == nil {
		scene = NopScene{}
	}
	m.scene = scene
}

// obtain pops a pooled instance of the kind or allocates a new one with a
// fresh entity id. Ids are kept across reuse.
func (m *ObstacleManager) obtain(kind ObstacleKind) *Obstacle {
	pool := m.pools[kind]
	if n := len(pool); n > 0 {
		o := pool[n-1]
		pool[n-1] = nil
		m.pools[kind] = pool[:n-1]
		return o
	}

	o := &Obstacle{ID: m.nextID, Kind: kind}
	m.nextID++
	m.allocated[kind]++
	m.byID[o.ID] = o
	return o
}

func (m *ObstacleManager) release(o *Obstacle) {
	o.Active = false
	m.pools[o.Kind] = append(m.pools[o.Kind], o)
	m.scene.ObstacleDespawned(*o)
}

// SpawnRock places a rock of the given ground hazard kind standing on the
// ground line at x. Non-rock hazards are ignored and return nil.
func (m *ObstacleManager) SpawnRock(hazard GroundHazard, x float64) *Obstacle {
	var (
		kind ObstacleKind
		size config.Size
	)
	switch hazard {
	case GroundRockSmall:
		kind, size = KindRockSmall, m.sizes.RockSmall
	case GroundRockBig:
		kind, size = KindRockBig, m.sizes.RockBig
	default:
		return nil
	}

	o := m.obtain(kind)
	o.Lane = AirNone
	o.Box = core.Box{X: x, Y: m.world.GroundY - size.Height/2, W: size.Width, H: size.Height}
	o.Active = true
	o.RequiresJump = true
	m.ground = append(m.ground, o)
	m.scene.ObstacleSpawned(*o)
	return o
}

// SpawnMeteor places a meteor in the given lane at x. Unknown lanes fall
// back to the mid lane.
func (m *ObstacleManager) SpawnMeteor(lane AirHazard, x float64) *Obstacle {
	y := m.sizes.Lanes.Mid
	switch lane {
	case AirHigh:
		y = m.sizes.Lanes.High
	case AirLow:
		y = m.sizes.Lanes.Low
	default:
		lane = AirMid
	}

	size := m.sizes.Meteor
	o := m.obtain(KindMeteor)
	o.Lane = lane
	o.Box = core.Box{X: x, Y: y, W: size.Width, H: size.Height}
	o.Active = true
	o.RequiresJump = lane == AirLow
	m.air = append(m.air, o)
	m.scene.ObstacleSpawned(*o)
	return o
}

// SpawnCrater opens a crater centered at x. The crater body extends below
// the ground line.
func (m *ObstacleManager) SpawnCrater(x float64) *Obstacle {
	size := m.sizes.Crater
	o := m.obtain(KindCrater)
	o.Lane = AirNone
	o.Box = core.Box{X: x, Y: m.world.GroundY + size.Height/2, W: size.Width, H: size.Height}
	o.Active = true
	o.RequiresJump = true
	m.craters = append(m.craters, o)
	m.scene.ObstacleSpawned(*o)
	return o
}

// Spawn realizes a pattern at x and returns the number of obstacles created.
func (m *ObstacleManager) Spawn(p EncounterPattern, x float64) int {
	n := 0
	switch p.Ground() {
	case GroundRockSmall, GroundRockBig:
		m.SpawnRock(p.Ground(), x)
		n++
	case GroundCrater:
		m.SpawnCrater(x)
		n++
	}
	if p.Air() != AirNone {
		m.SpawnMeteor(p.Air(), x)
		n++
	}
	return n
}

// Tick advances every live obstacle by speed*dt (airborne ones by the
// configured fraction of it) and returns instances that left the viewport
// to their pools.
func (m *ObstacleManager) Tick(speed, dt float64) {
	dx := speed * dt
	m.ground = m.advance(m.ground, dx)
	m.air = m.advance(m.air, dx*m.airFactor)
	m.craters = m.advance(m.craters, dx)
}

// advance filters the list in place.
func (m *ObstacleManager) advance(list []*Obstacle, dx float64) []*Obstacle {
	kept := list[:0]
	for _, o := range list {
		o.Box.X -= dx
		if o.Box.Right() < 0 {
			m.release(o)
			continue
		}
		kept = append(kept, o)
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	return kept
}

// CanPlaceAirHazard reports whether a new airborne obstacle may spawn at
// spawnX. Pure read.
//
// It is stricter than a check of the reaction window alone. It returns false
// when an active airborne obstacle lies within [playerX, playerX+window], and
// also when one lies within window of spawnX even though the reaction window
// is clear. Airborne obstacles share one speed, so spacing at the spawn point
// is the spacing they will have when they reach the player.
func (m *ObstacleManager) CanPlaceAirHazard(spawnX, playerX, window float64) bool {
	ahead := core.Span{Start: playerX, End: playerX + window}
	for _, o := range m.air {
		if !o.Active {
			continue
		}
		if ahead.Contains(o.Box.X) {
			return false
		}
		d := spawnX - o.Box.X
		if d < 0 {
			d = -d
		}
		if d <= window {
			return false
		}
	}
	return true
}

// GroundHazardAt returns the first active ground hazard or crater whose
// footprint contains x and that requires a jump, or nil. Pure read.
func (m *ObstacleManager) GroundHazardAt(x float64) *Obstacle {
	for _, o := range m.craters {
		if o.Active && o.RequiresJump && o.Span().Contains(x) {
			return o
		}
	}
	for _, o := range m.ground {
		if o.Active && o.RequiresJump && o.Span().Contains(x) {
			return o
		}
	}
	return nil
}

// IsGroundHazardUnderPlayer reports whether a grounded player at playerX
// stands over a jump-requiring ground hazard. An airborne player is never
// under a hazard.
func (m *ObstacleManager) IsGroundHazardUnderPlayer(playerX float64, grounded bool) bool {
	return grounded && m.GroundHazardAt(playerX) != nil
}

// Lookup resolves an entity id to its instance, live or pooled.
func (m *ObstacleManager) Lookup(id EntityID) (*Obstacle, bool) {
	o, ok := m.byID[id]
	return o, ok
}

// Ground returns the live rocks. The slice is owned by the manager.
func (m *ObstacleManager) Ground() []*Obstacle { return m.ground }

// Air returns the live meteors. The slice is owned by the manager.
func (m *ObstacleManager) Air() []*Obstacle { return m.air }

// Craters returns the live craters. The slice is owned by the manager.
func (m *ObstacleManager) Craters() []*Obstacle { return m.craters }

// Each calls fn for every live obstacle: rocks, then meteors, then craters.
func (m *ObstacleManager) Each(fn func(o *Obstacle)) {
	for _, list := range [][]*Obstacle{m.ground, m.air, m.craters} {
		for _, o := range list {
			fn(o)
		}
	}
}

// Allocated returns how many instances of the kind were ever created.
func (m *ObstacleManager) Allocated(kind ObstacleKind) int { return m.allocated[kind] }

// Pooled returns how many instances of the kind wait in the free list.
func (m *ObstacleManager) Pooled(kind ObstacleKind) int { return len(m.pools[kind]) }

// Active returns how many instances of the kind are live.
func (m *ObstacleManager) Active(kind ObstacleKind) int {
	n := 0
	m.Each(func(o *Obstacle) {
		if o.Kind == kind {
			n++
		}
	})
	return n
}

// Len returns the number of live obstacles.
func (m *ObstacleManager) Len() int {
	return len(m.ground) + len(m.air) + len(m.craters)
}

// Reset drops every instance, live and pooled. Entity ids restart so a reset
// run is indistinguishable from a fresh one.
func (m *ObstacleManager) Reset() {
	clear(m.ground)
	clear(m.air)
	clear(m.craters)
	m.ground = m.ground[:0]
	m.air = m.air[:0]
	m.craters = m.craters[:0]
	for k := range m.pools {
		m.pools[k] = nil
		m.allocated[k] = 0
	}
	clear(m.byID)
	m.nextID = PlayerID + 1
}
