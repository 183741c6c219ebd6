package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// ErrSpawnBlocked is returned when a player cannot stand at its spawn point.
var ErrSpawnBlocked = errors.New("world: spawn point is blocked")

// PlayerConfig holds movement and collision parameters.
type PlayerConfig struct {
	Radius      float64 // Half the side of the collision square
	Speed       float64 // Grid units per tick
	TurnDegrees float64 // Degrees per tick while a turn key is held
	StepHeight  float64 // Highest floor rise the player can step onto
	EyeHeight   float64 // Eye distance above the floor
}

// DefaultPlayerConfig returns the standard movement parameters.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		Radius:      0.3,
		Speed:       0.1,
		TurnDegrees: 4,
		StepHeight:  0.2,
		EyeHeight:   0.5,
	}
}

// Player moves a point of view through a grid, resolving collisions
// against cell floors and ceilings one axis at a time.
type Player struct {
	cfg      PlayerConfig
	grid     *GridMap
	pov      PointOfView
	floor    float64
	distance float64
}

// NewPlayer places a player at spawn facing bearing degrees.
func NewPlayer(grid *GridMap, spawn core.Vec2, bearing float64, cfg PlayerConfig) (*Player, error) {
	p := &Player{cfg: cfg, grid: grid}
	cell, ok := grid.CellAt(spawn)
	if !ok || !p.standable(cell) {
		return nil, fmt.Errorf("%w at (%.2f, %.2f)", ErrSpawnBlocked, spawn.X, spawn.Y)
	}

	p.floor = cell.Floor
	p.pov = *NewPointOfView(spawn, cell.Floor-cfg.EyeHeight, bearing)
	return p, nil
}

// View returns the player's current point of view.
func (p *Player) View() *PointOfView {
	return &p.pov
}

// Distance returns the total distance walked.
func (p *Player) Distance() float64 {
	return p.distance
}

// SetGrid moves the player into a different grid, keeping its position
// when it is still valid there.
func (p *Player) SetGrid(grid *GridMap, spawn core.Vec2, bearing float64) error {
	pos := p.pov.Position
	respawn := false
	if cell, ok := grid.CellAt(pos); !ok || p.blockedIn(grid, pos, cell.Floor) {
		pos = spawn
		respawn = true
	}
	cell, ok := grid.CellAt(pos)
	if !ok || !p.standable(cell) {
		return fmt.Errorf("%w at (%.2f, %.2f)", ErrSpawnBlocked, pos.X, pos.Y)
	}
	p.grid = grid
	p.pov.Position = pos
	if respawn {
		p.pov.SetBearing(bearing)
	}
	p.settle(cell)
	return nil
}

// Apply advances the player by one tick of intent plus an extra turn in
// degrees (pointer motion). It returns the distance actually moved.
func (p *Player) Apply(intent core.MoveIntent, turn float64) float64 {
	if t := intent.Turn*p.cfg.TurnDegrees + turn; t != 0 {
		p.pov.Turn(t)
	}

	step := p.pov.Forward.Scale(intent.Forward).Add(p.pov.Right.Scale(intent.Strafe))
	if l := step.Len(); l > 1 {
		step = step.Scale(1 / l)
	}
	step = step.Scale(p.cfg.Speed)
	if step == (core.Vec2{}) {
		return 0
	}

	start := p.pov.Position
	pos := start
	if next := pos.Add(core.V(step.X, 0)); !p.blocked(next) {
		pos = next
	}
	if next := pos.Add(core.V(0, step.Y)); !p.blocked(next) {
		pos = next
	}
	p.pov.Position = pos

	if cell, ok := p.grid.CellAt(pos); ok {
		p.settle(cell)
	}

	moved := pos.Sub(start).Len()
	p.distance += moved
	return moved
}

// standable reports whether the eye fits between the cell's floor and ceiling.
func (p *Player) standable(cell *Cell) bool {
	return !cell.Solid() && cell.Clearance() >= p.cfg.EyeHeight
}

func (p *Player) settle(cell *Cell) {
	p.floor = cell.Floor
	p.pov.Elevation = cell.Floor - p.cfg.EyeHeight
}

func (p *Player) blocked(pos core.Vec2) bool {
	return p.blockedIn(p.grid, pos, p.floor)
}

// blockedIn reports whether a player standing on floor cannot occupy pos:
// one of the corners of its collision square is in a cell whose floor rises
// more than a step, or whose clearance is too low for the eye.
func (p *Player) blockedIn(grid *GridMap, pos core.Vec2, floor float64) bool {
	r := p.cfg.Radius
	for _, corner := range [4]core.Vec2{{X: -r, Y: -r}, {X: r, Y: -r}, {X: -r, Y: r}, {X: r, Y: r}} {
		cell, ok := grid.CellAt(pos.Add(corner))
		if !ok {
			return true
		}
		if floor-cell.Floor > p.cfg.StepHeight+1e-9 {
			return true
		}
		if math.Min(floor, cell.Floor)-cell.Ceiling < p.cfg.EyeHeight {
			return true
		}
	}
	return false
}
