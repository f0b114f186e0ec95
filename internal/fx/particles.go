package fx

import (
	"math"
	"math/rand/v2"
	"strings"

	"github.com/ojrac/opensimplex-go"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

const noiseScale = 2.2

type particle struct {
	x, y  float64 // unit square, wraps
	depth float64 // 0 far .. 1 near
}

// ParticleOptions tunes the background field.
type ParticleOptions struct {
	Count int
	// Speed is the drift per second in unit-square widths.
	Speed float64
	// HoverFactor scales the pointer displacement, in dots, at full offset.
	HoverFactor float64
	Seed        int64
	Near        RGB
	Far         RGB
}

// Particles renders drifting dots on a braille canvas. Each cell is a 2x4
// dot grid. Drift direction comes from an opensimplex noise field that
// scrolls over time; the pointer offset pushes nearer particles further.
type Particles struct {
	opts   ParticleOptions
	noise  opensimplex.Noise
	parts  []particle
	t      float64
	px, py float64
	width  int
	height int
	output string
}

func NewParticles(opts ParticleOptions) *Particles {
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), 0x9e3779b97f4a7c15))
	p := &Particles{opts: opts, noise: opensimplex.New(opts.Seed)}
	p.parts = make([]particle, max(opts.Count, 0))
	for i := range p.parts {
		p.parts[i] = particle{x: rng.Float64(), y: rng.Float64(), depth: rng.Float64()}
	}
	return p
}

// Len returns the particle count.
func (p *Particles) Len() int { return len(p.parts) }

// SetPointer sets the normalized pointer offset in [-1,1]. Zero centers the
// field.
func (p *Particles) SetPointer(mx, my float64) {
	p.px = math.Max(-1, math.Min(1, mx))
	p.py = math.Max(-1, math.Min(1, my))
}

// Update advances the field by dt seconds and rasterizes it at width x
// height cells.
func (p *Particles) Update(dt float64, width, height int) {
	p.width, p.height = max(width, 0), max(height, 0)
	if dt > 0 {
		p.t += dt
		p.drift(dt)
	}
	p.output = p.render()
}

func (p *Particles) drift(dt float64) {
	step := p.opts.Speed * dt
	for i := range p.parts {
		q := &p.parts[i]
		angle := p.noise.Eval2(q.x*noiseScale, q.y*noiseScale+p.t*0.1) * 2 * math.Pi
		s := step * (0.5 + q.depth)
		q.x = wrap01(q.x + math.Cos(angle)*s)
		q.y = wrap01(q.y + math.Sin(angle)*s)
	}
}

func wrap01(v float64) float64 {
	v = math.Mod(v, 1)
	if v < 0 {
		v++
	}
	return v
}

// dotAt projects particle q to dot coordinates, applying pointer
// displacement.
func (p *Particles) dotAt(q particle, dotCols, dotRows int) (int, int) {
	shift := p.opts.HoverFactor * (0.3 + q.depth)
	x := q.x*float64(dotCols) + p.px*shift
	y := q.y*float64(dotRows) + p.py*shift
	return int(math.Floor(x)), int(math.Floor(y))
}

func (p *Particles) render() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}
	dotCols, dotRows := p.width*2, p.height*4
	cells := make([]uint8, p.width*p.height)
	depth := make([]float64, p.width*p.height)

	for _, q := range p.parts {
		x, y := p.dotAt(q, dotCols, dotRows)
		if x < 0 || y < 0 || x >= dotCols || y >= dotRows {
			continue
		}
		i := (y/4)*p.width + x/2
		cells[i] |= 1 << brailleBits[x%2][y%4]
		depth[i] = math.Max(depth[i], q.depth)
	}

	st := newANSIState(CurrentProfile())
	rows := make([]string, p.height)
	for row := range p.height {
		var line strings.Builder
		for col := range p.width {
			i := row*p.width + col
			if cells[i] == 0 {
				st.reset(&line)
				line.WriteByte(' ')
				continue
			}
			st.set(&line, Lerp(p.opts.Far, p.opts.Near, depth[i]))
			line.WriteRune(rune(0x2800 + int(cells[i])))
		}
		st.reset(&line)
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}

// View returns the last rendered frame.
func (p *Particles) View() string {
	return p.output
}
