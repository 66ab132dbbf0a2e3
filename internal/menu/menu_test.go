package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cityblocks/internal/config"
)

func TestHitTest_DefaultCatalog(t *testing.T) {
	m := New(config.DefaultCatalog())

	tests := []struct {
		name string
		x, y float32
		want string
	}{
		{"building B", 1080, 280, "buildingB"},
		{"building D", 1080, 200, "buildingD"},
		{"straight road", 1100, 420, "roadStraight"},
		{"police car", 1050, 370, "policeCar"},
		{"corner", 1050, 500, "roadCorner"},
		{"crosswalk", 1050, 560, "crosswalk"},
		{"hatchback", 1050, 340, "hatchback"},
		{"t split", 1050, 620, "roadSplit"},
		{"building F", 1200, 250, "buildingF"},
		{"building H", 1200, 150, "buildingH"},
		{"traffic light", 1200, 350, "trafficLight"},
		{"street light", 1200, 430, "streetLight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, ok := m.HitTest(tt.x, tt.y)
			require.True(t, ok)
			assert.Equal(t, tt.want, it.Name)
		})
	}
}

func TestHitTest_Misses(t *testing.T) {
	m := New(config.DefaultCatalog())

	misses := []struct{ x, y float32 }{
		{100, 100},  // scene area
		{1036, 280}, // left edge is exclusive
		{1080, 298}, // bottom edge is exclusive
		{1130, 280}, // gap between the columns
		{1080, 350}, // between hatchback and police car
		{1200, 700}, // below the last row
	}
	for _, p := range misses {
		_, ok := m.HitTest(p.x, p.y)
		assert.False(t, ok, "(%v, %v)", p.x, p.y)
	}
}

func TestNew_IndexFollowsCatalog(t *testing.T) {
	catalog := config.DefaultCatalog()
	m := New(catalog)
	require.Len(t, m.Items(), len(catalog))
	for i, it := range m.Items() {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, catalog[i].Name, it.Name)
	}
}

func TestItem_WorldMatrix(t *testing.T) {
	it := Item{Placement: config.MenuPlacement{Position: [3]float32{15, 3.5, 0}, Scale: 1}}
	got := it.WorldMatrix([3]float32{-1, 0, 0}).TransformPoint([3]float32{0, 0, 0})
	assert.Equal(t, [3]float32{14, 3.5, 0}, got)

	scaled := Item{Placement: config.MenuPlacement{Scale: 1.5}}
	got = scaled.WorldMatrix([3]float32{}).TransformPoint([3]float32{2, 0, 0})
	assert.Equal(t, [3]float32{3, 0, 0}, got)

	// A quarter turn about Z moves the translated thumbnail around the origin.
	road := Item{Placement: config.MenuPlacement{Position: [3]float32{1, 0, 0}, Rotation: [3]float32{0, 0, 0.5}}}
	got = road.WorldMatrix([3]float32{}).TransformPoint([3]float32{0, 0, 0})
	assert.InDelta(t, 0, got[0], 1e-6)
	assert.InDelta(t, 1, got[1], 1e-6)
	assert.InDelta(t, 0, got[2], 1e-6)
}
