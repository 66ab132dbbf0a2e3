package app

import (
	"strconv"

	"github.com/Faultbox/cityblocks/internal/controls"
	"github.com/Faultbox/cityblocks/internal/engine/ui2d"
)

// The objects panel sits top left, clear of the asset menu.
const (
	panelID     = "objects"
	panelX      = 10
	panelY      = 10
	panelWidth  = 260
	panelHeight = 470
	listHeight  = 120
	sliderRowH  = 20
	buttonRowH  = 28
)

// panelUI lays out the objects panel and applies what the user does in
// it: the instance list selects, the checkbox toggles visibility, the
// sliders edit the selection and the buttons remove, save and load. The
// keyboard shortcuts drive the same commands.
func (s *session) panelUI(ui *ui2d.Context) {
	if !ui.BeginWindow(panelID, panelX, panelY, panelWidth, panelHeight, "Objects") {
		return
	}
	defer ui.EndWindow()

	selected, selIdx := s.registry.Selected()

	ui.BeginListBox("instances", 0, listHeight)
	for i, in := range s.registry.Instances() {
		label := in.Label
		if !in.Visible {
			label += " (hidden)"
		}
		if ui.Selectable("instance"+strconv.Itoa(i), label, i == selIdx) {
			s.selectIndex(i)
		}
	}
	ui.EndListBox()

	ui.Row(18)
	visible := selected != nil && selected.Visible
	if ui.Checkbox("visible", "Visible", visible) != visible && selected != nil {
		s.command(controls.CmdToggleVisible)
	}

	ui.Separator()
	for a := controls.AxisX; a < controls.NumAxes; a++ {
		ui.Row(sliderRowH)
		sl := s.panel.Slider(a)
		v, changed := ui.Slider(a.String(), a.String(), sl.Value, sl.Min, sl.Max, a == s.panel.Active())
		if !changed {
			continue
		}
		s.panel.Focus(a)
		if s.panel.Set(a, v) {
			s.command(controls.CmdSliderChanged)
		}
	}

	ui.Separator()
	ui.Row(buttonRowH)
	bw := float32(panelWidth-16-2*4) / 3
	if ui.Button("remove", bw, "Remove") {
		s.command(controls.CmdRemove)
	}
	if ui.Button("save", bw, "Save") {
		s.command(controls.CmdSave)
	}
	if ui.Button("load", bw, "Load") {
		s.command(controls.CmdLoad)
	}

	ui.Row(16)
	ui.LabelColored(strconv.Itoa(s.registry.Len())+" objects", ui2d.ColorTextDim)
}
