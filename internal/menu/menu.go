// Package menu maps clicks on the asset menu to catalog entries and places
// the menu thumbnails.
package menu

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cityblocks/internal/config"
	"github.com/Faultbox/cityblocks/pkg/math"
)

// Item is one clickable menu entry.
type Item struct {
	Name      string
	Index     int // catalog position
	Region    config.Region
	Placement config.MenuPlacement
}

// Contains reports whether the window point (x, y) lies strictly inside
// the item's region.
func (it Item) Contains(x, y float32) bool {
	r := it.Region
	return x > r.MinX && x < r.MaxX && y > r.MinY && y < r.MaxY
}

// WorldMatrix places the thumbnail of an asset whose centering offset is
// offset. The placement rotation turns the already translated thumbnail
// about the origin.
func (it Item) WorldMatrix(offset [3]float32) math.Mat4 {
	p := it.Placement
	m := math.Identity().
		RotatedXYZ(math.V3(p.Rotation).Scale(math32.Pi)).
		Translated(math.V3(offset)).
		Translated(math.V3(p.Position))
	if p.Scale != 0 && p.Scale != 1 {
		m = m.Scaled(p.Scale)
	}
	return m
}

// Menu holds the items in catalog order.
type Menu struct {
	items []Item
}

// New builds the menu from the catalog.
func New(catalog []config.CatalogEntry) *Menu {
	items := make([]Item, len(catalog))
	for i, e := range catalog {
		items[i] = Item{
			Name:      e.Name,
			Index:     i,
			Region:    e.Region,
			Placement: e.Menu,
		}
	}
	return &Menu{items: items}
}

// Items returns the menu items in catalog order.
func (m *Menu) Items() []Item {
	return m.items
}

// HitTest returns the first item whose region contains (x, y).
func (m *Menu) HitTest(x, y float32) (Item, bool) {
	for _, it := range m.items {
		if it.Contains(x, y) {
			return it, true
		}
	}
	return Item{}, false
}
