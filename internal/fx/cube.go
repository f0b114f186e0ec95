package fx

import (
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// CubePhase is where the hero cube is in its intro.
type CubePhase int

const (
	CubeScrambled CubePhase = iota
	CubeSolving
	CubeSolved
)

func (p CubePhase) String() string {
	switch p {
	case CubeScrambled:
		return "scrambled"
	case CubeSolving:
		return "solving"
	case CubeSolved:
		return "solved"
	}
	return "unknown"
}

const (
	scrambleSeconds = 1.0
	cubieSpacing    = 1.05
	stickerOffset   = 0.46 // sticker plane from the cubie center
	stickerHalf     = 0.425
	blankSticker    = 0.3 // chance a scrambled sticker is unpainted
)

// cubeMove snaps the cube to an orientation and holds it for seconds.
type cubeMove struct {
	seconds float64
	x, y, z float64
}

var solveMoves = []cubeMove{
	{0.5, 0, math.Pi / 2, 0},
	{0.5, math.Pi / 2, 0, 0},
	{0.5, 0, 0, math.Pi / 2},
	{0.5, 0, -math.Pi / 2, 0},
	{0.5, -math.Pi / 2, 0, 0},
	{0.5, 0, 0, -math.Pi / 2},
	{0.4, 0, math.Pi / 4, 0},
	{0.4, math.Pi / 4, 0, 0},
	{0.4, 0, 0, math.Pi / 4},
	{0.4, 0, -math.Pi / 4, 0},
	{0.4, -math.Pi / 4, 0, 0},
	{0.4, 0, 0, -math.Pi / 4},
}

// cubeFace is one side of the puzzle: its outward normal, two in-plane
// axes and its solved color.
type cubeFace struct {
	n, u, v r3.Vec
	color   RGB
}

// Front, back, left, right, top, bottom.
var cubeFaces = [6]cubeFace{
	{n: r3.Vec{Z: 1}, u: r3.Vec{X: 1}, v: r3.Vec{Y: 1}, color: MustHex("#ff0000")},
	{n: r3.Vec{Z: -1}, u: r3.Vec{X: -1}, v: r3.Vec{Y: 1}, color: MustHex("#ff8800")},
	{n: r3.Vec{X: -1}, u: r3.Vec{Z: 1}, v: r3.Vec{Y: 1}, color: MustHex("#00ff00")},
	{n: r3.Vec{X: 1}, u: r3.Vec{Z: -1}, v: r3.Vec{Y: 1}, color: MustHex("#0000ff")},
	{n: r3.Vec{Y: 1}, u: r3.Vec{X: 1}, v: r3.Vec{Z: -1}, color: MustHex("#ffff00")},
	{n: r3.Vec{Y: -1}, u: r3.Vec{X: 1}, v: r3.Vec{Z: 1}, color: MustHex("#ffffff")},
}

var cubieBody = MustHex("#2a2a2a")

// Cube draws a 3x3 puzzle cube on a braille canvas. It tumbles scrambled
// for a second, snaps through a fixed run of solving moves, then turns
// slowly with its faces in their solved colors.
type Cube struct {
	phase    CubePhase
	elapsed  float64 // seconds in the current phase
	rx, ry   float64
	rz       float64
	stickers [6][9]RGB
	width    int
	height   int
	output   string
}

// NewCube creates a scrambled cube. The scramble is fixed by seed.
func NewCube(seed int64) *Cube {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	c := &Cube{}
	for f := range c.stickers {
		for i := range c.stickers[f] {
			if rng.Float64() < blankSticker {
				c.stickers[f][i] = cubieBody
				continue
			}
			c.stickers[f][i] = cubeFaces[rng.IntN(len(cubeFaces))].color
		}
	}
	return c
}

// Phase reports the intro phase.
func (c *Cube) Phase() CubePhase { return c.phase }

// Size returns the last rendered size in cells.
func (c *Cube) Size() (int, int) { return c.width, c.height }

// Solve skips the intro and leaves the cube solved and still, for reduced
// motion.
func (c *Cube) Solve() {
	c.finish()
	c.output = c.render()
}

// Update advances the cube by dt seconds and rasterizes it at width x
// height cells.
func (c *Cube) Update(dt float64, width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	if dt > 0 {
		c.advance(dt)
	}
	c.output = c.render()
}

func (c *Cube) advance(dt float64) {
	switch c.phase {
	case CubeScrambled:
		c.rx += 0.8 * dt
		c.ry += 0.6 * dt
		c.rz += 0.4 * dt
		c.elapsed += dt
		if c.elapsed >= scrambleSeconds {
			c.phase = CubeSolving
			c.elapsed = 0
			c.snap(0)
		}
	case CubeSolving:
		c.elapsed += dt
		if i := moveAt(c.elapsed); i < len(solveMoves) {
			c.snap(i)
		} else {
			c.finish()
		}
	case CubeSolved:
		c.ry += 0.3 * dt
		c.rx += 0.1 * dt
	}
}

// moveAt returns the index of the solving move running after t seconds,
// or len(solveMoves) once they are all done.
func moveAt(t float64) int {
	for i, mv := range solveMoves {
		if t < mv.seconds {
			return i
		}
		t -= mv.seconds
	}
	return len(solveMoves)
}

func (c *Cube) snap(i int) {
	mv := solveMoves[i]
	c.rx, c.ry, c.rz = mv.x, mv.y, mv.z
}

func (c *Cube) finish() {
	c.phase = CubeSolved
	c.elapsed = 0
	c.snap(len(solveMoves) - 1)
}

// rotation composes the x, y and z turns, applying z first.
func (c *Cube) rotation() r3.Rotation {
	var qx, qy, qz quat.Number
	qx.Imag, qx.Real = math.Sincos(c.rx / 2)
	qy.Jmag, qy.Real = math.Sincos(c.ry / 2)
	qz.Kmag, qz.Real = math.Sincos(c.rz / 2)
	return r3.Rotation(quat.Mul(qx, quat.Mul(qy, qz)))
}

func (c *Cube) stickerColor(f, i int) RGB {
	if c.phase == CubeSolved {
		return cubeFaces[f].color
	}
	return c.stickers[f][i]
}

func (c *Cube) render() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}
	dotCols, dotRows := c.width*2, c.height*4
	cells := make([]uint8, c.width*c.height)
	colors := make([]RGB, c.width*c.height)
	depth := make([]float64, c.width*c.height)
	for i := range depth {
		depth[i] = math.Inf(-1)
	}

	// Orthographic view down -Z. A braille dot is roughly square, so one
	// scale serves both axes.
	radius := (cubieSpacing + stickerOffset) * math.Sqrt(3)
	scale := float64(min(dotCols, dotRows)) / (2 * radius)
	cx, cy := float64(dotCols)/2, float64(dotRows)/2
	step := 0.5 / scale
	rot := c.rotation()

	for f, face := range cubeFaces {
		n := rot.Rotate(face.n)
		if n.Z <= 0 {
			continue
		}
		shade := 0.45 + 0.55*n.Z
		for i := range 9 {
			col := Scale(c.stickerColor(f, i), shade)
			center := r3.Add(
				r3.Scale(cubieSpacing+stickerOffset, face.n),
				r3.Add(r3.Scale(cubieSpacing*float64(i%3-1), face.u), r3.Scale(cubieSpacing*float64(i/3-1), face.v)),
			)
			for a := -stickerHalf; a <= stickerHalf; a += step {
				for b := -stickerHalf; b <= stickerHalf; b += step {
					p := r3.Add(center, r3.Add(r3.Scale(a, face.u), r3.Scale(b, face.v)))
					q := rot.Rotate(p)
					x := int(math.Floor(cx + q.X*scale))
					y := int(math.Floor(cy - q.Y*scale))
					if x < 0 || y < 0 || x >= dotCols || y >= dotRows {
						continue
					}
					k := (y/4)*c.width + x/2
					cells[k] |= 1 << brailleBits[x%2][y%4]
					if q.Z > depth[k] {
						depth[k] = q.Z
						colors[k] = col
					}
				}
			}
		}
	}

	st := newANSIState(CurrentProfile())
	rows := make([]string, c.height)
	for row := range c.height {
		var line strings.Builder
		for col := range c.width {
			k := row*c.width + col
			if cells[k] == 0 {
				st.reset(&line)
				line.WriteByte(' ')
				continue
			}
			st.set(&line, colors[k])
			line.WriteRune(rune(0x2800 + int(cells[k])))
		}
		st.reset(&line)
		rows[row] = line.String()
	}
	return strings.Join(rows, "\n")
}

// View returns the last rendered frame.
func (c *Cube) View() string {
	return c.output
}
