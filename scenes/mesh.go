package scenes

import (
	"math"

	"golang.org/x/image/math/f64"

	"github.com/milk9111/seamless/scene"
)

// Mesh is a wireframe: vertices joined by edges, placed by a rotation,
// uniform scale and offset.
type Mesh struct {
	Vertices []f64.Vec3
	Edges    [][2]int
	Rotation f64.Vec3
	Scale    float64
	Offset   f64.Vec3

	world []f64.Vec3
}

// World returns the transformed vertices. The slice is reused between calls.
func (m *Mesh) World() []f64.Vec3 {
	if cap(m.world) < len(m.Vertices) {
		m.world = make([]f64.Vec3, len(m.Vertices))
	}
	m.world = m.world[:len(m.Vertices)]
	s := m.Scale
	if s == 0 {
		s = 1
	}
	for i, v := range m.Vertices {
		v = scene.Scale(v, s)
		v = scene.RotateX(v, m.Rotation[0])
		v = scene.RotateY(v, m.Rotation[1])
		v = scene.RotateZ(v, m.Rotation[2])
		m.world[i] = scene.Add(v, m.Offset)
	}
	return m.world
}

func (m *Mesh) Rotate(d f64.Vec3) {
	m.Rotation = scene.Add(m.Rotation, d)
}

// edgesByLength joins every vertex pair whose distance is length.
func edgesByLength(verts []f64.Vec3, length float64) [][2]int {
	var edges [][2]int
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if math.Abs(scene.Length(scene.Sub(verts[i], verts[j]))-length) < 1e-6 {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// Icosahedron returns a unit icosahedron.
func Icosahedron() *Mesh {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []f64.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	edges := edgesByLength(raw, 2)
	verts := make([]f64.Vec3, len(raw))
	for i, v := range raw {
		verts[i] = scene.Normalize(v)
	}
	return &Mesh{Vertices: verts, Edges: edges, Scale: 1}
}

// Cube returns a cube with edge length 1 centered on the origin.
func Cube() *Mesh {
	var verts []f64.Vec3
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				verts = append(verts, f64.Vec3{x, y, z})
			}
		}
	}
	return &Mesh{Vertices: verts, Edges: edgesByLength(verts, 1), Scale: 1}
}

// Globe returns a latitude/longitude wireframe sphere of radius 1.
func Globe(rings, meridians, segments int) *Mesh {
	m := &Mesh{Scale: 1}
	add := func(v f64.Vec3) int {
		m.Vertices = append(m.Vertices, v)
		return len(m.Vertices) - 1
	}

	for r := 1; r < rings; r++ {
		lat := math.Pi*float64(r)/float64(rings) - math.Pi/2
		y, rad := math.Sin(lat), math.Cos(lat)
		first := len(m.Vertices)
		for s := 0; s < segments; s++ {
			a := 2 * math.Pi * float64(s) / float64(segments)
			i := add(f64.Vec3{rad * math.Cos(a), y, rad * math.Sin(a)})
			next := first + (s+1)%segments
			m.Edges = append(m.Edges, [2]int{i, next})
		}
	}

	for k := 0; k < meridians; k++ {
		a := 2 * math.Pi * float64(k) / float64(meridians)
		prev := -1
		for s := 0; s <= segments/2; s++ {
			lat := math.Pi*float64(s)/float64(segments/2) - math.Pi/2
			i := add(f64.Vec3{math.Cos(lat) * math.Cos(a), math.Sin(lat), math.Cos(lat) * math.Sin(a)})
			if prev >= 0 {
				m.Edges = append(m.Edges, [2]int{prev, i})
			}
			prev = i
		}
	}
	return m
}
