// Package report renders scene summaries as text tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/olekukonko/tablewriter"

	"github.com/Faultbox/levelkit/internal/engine/lighting"
	"github.com/Faultbox/levelkit/internal/pointcloud"
	"github.com/Faultbox/levelkit/internal/rtscene"
	"github.com/Faultbox/levelkit/internal/scene"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader(header)
	return table
}

// Level writes the number of entries in each registry collection.
func Level(w io.Writer, r *scene.Registry) {
	table := newTable(w, "Collection", "Count")
	rows := []struct {
		name  string
		count int
	}{
		{"Walls", len(r.Walls())},
		{"Floors", len(r.Floors())},
		{"Ceilings", len(r.Ceilings())},
		{"Doors", len(r.Doors())},
		{"Game objects", len(r.GameObjects())},
		{"Animated objects", len(r.AnimatedGameObjects())},
		{"Models", len(r.Models())},
		{"Lights", len(r.Lights())},
		{"Cloud points", len(r.CloudPoints())},
	}
	for _, row := range rows {
		table.Append([]string{row.name, strconv.Itoa(row.count)})
	}
	table.Render()
}

// Pack writes one row per packed mesh with its instance count.
func Pack(w io.Writer, s *rtscene.Scene) {
	table := newTable(w, "Mesh", "Key", "Base", "Vertices", "Instances")
	for i, m := range s.Meshes {
		table.Append([]string{
			strconv.Itoa(i),
			s.MeshKeys[i],
			strconv.FormatUint(uint64(m.BaseVertex), 10),
			strconv.FormatUint(uint64(m.VertexCount), 10),
			strconv.Itoa(s.InstancesOf(uint32(i))),
		})
	}
	stats := s.Stats()
	table.SetFooter([]string{"Total", "", "", strconv.Itoa(stats.Vertices), strconv.Itoa(stats.Instances)})
	table.Render()
}

// Cloud writes point counts grouped by the dominant axis of the normal.
func Cloud(w io.Writer, points []pointcloud.CloudPoint) {
	axes := []string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}
	counts := make([]int, len(axes))
	for _, p := range points {
		counts[dominantAxis(p.Normal.Vec3())]++
	}

	table := newTable(w, "Facing", "Points")
	for i, name := range axes {
		table.Append([]string{name, strconv.Itoa(counts[i])})
	}
	table.SetFooter([]string{"Total", strconv.Itoa(len(points))})
	table.Render()
}

// dominantAxis returns 0..5 for +X, -X, +Y, -Y, +Z, -Z.
func dominantAxis(n mgl32.Vec3) int {
	best := 0
	for axis := 1; axis < 3; axis++ {
		if mgl32.Abs(n[axis]) > mgl32.Abs(n[best]) {
			best = axis
		}
	}
	if n[best] < 0 {
		return best*2 + 1
	}
	return best * 2
}

// Lights writes one row per light setup.
func Lights(w io.Writer, setups lighting.Presets) {
	table := newTable(w, "Index", "Name", "Lights", "Sun", "Ambient")
	for i, s := range setups {
		sun := "off"
		if s.SunLatitude != 0 {
			sun = fmt.Sprintf("%.0f/%.0f", s.SunLongitude, s.SunLatitude)
		}
		table.Append([]string{
			strconv.Itoa(i),
			s.Name,
			strconv.Itoa(len(s.Lights)),
			sun,
			strconv.FormatFloat(float64(s.Ambient), 'f', 2, 32),
		})
	}
	table.Render()
}
