package ui2d

import "fmt"

const (
	titleBarH   = 25
	padding     = 8
	spacing     = 4
	textScale   = 1
	listRowH    = 24
	scrollStep  = listRowH
	checkboxBox = 18
	sliderGrabW = 8
)

// Context lays out widgets and tracks which one the mouse is working.
type Context struct {
	renderer *Renderer
	input    *InputState

	// Active/hot widget tracking for interaction
	hotWidget    string
	activeWidget string

	windows   map[string]*WindowState
	listBoxes map[string]*ListBoxState

	// last layout rectangle of every interactive widget, by full id
	rects map[string]Rect

	currentWindow  *WindowState
	currentListBox *ListBoxState

	// Layout state
	cursorX float32
	cursorY float32
	rowH    float32
}

// WindowState holds state for a UI window.
type WindowState struct {
	ID     string
	X, Y   float32
	W, H   float32
	Open   bool
	Moving bool
}

// Rect returns the window's screen rectangle.
func (ws *WindowState) Rect() Rect {
	return Rect{ws.X, ws.Y, ws.W, ws.H}
}

// ListBoxState holds the scroll position of a list box between frames.
type ListBoxState struct {
	ScrollY  float32
	X, Y     float32
	W, H     float32
	contentH float32 // height of the rows last frame
}

func (lb *ListBoxState) rect() Rect {
	return Rect{lb.X, lb.Y, lb.W, lb.H}
}

func (lb *ListBoxState) clampScroll() {
	maxScroll := max(0, lb.contentH-(lb.H-2*spacing))
	lb.ScrollY = min(max(lb.ScrollY, 0), maxScroll)
}

// NewContext creates a UI context drawing through r.
func NewContext(r *Renderer) *Context {
	return &Context{
		renderer:  r,
		input:     &InputState{},
		windows:   make(map[string]*WindowState),
		listBoxes: make(map[string]*ListBoxState),
		rects:     make(map[string]Rect),
	}
}

// Close releases resources.
func (c *Context) Close() {
	if c.renderer != nil {
		c.renderer.Close()
	}
}

// Renderer returns the underlying renderer.
func (c *Context) Renderer() *Renderer {
	return c.renderer
}

// Resize updates the screen size in window points.
func (c *Context) Resize(width, height int) {
	c.renderer.Resize(width, height)
}

// Input returns the input state for modification.
func (c *Context) Input() *InputState {
	return c.input
}

// Begin starts a new UI frame.
func (c *Context) Begin() {
	c.input.Update()
	c.renderer.Begin()
	c.hotWidget = ""
}

// End finishes the UI frame and draws it.
func (c *Context) End() {
	c.renderer.End()
	c.input.EndFrame()
}

// Captures reports whether a click at (x, y) belongs to the UI: it is over
// an open window, or a widget is being dragged.
func (c *Context) Captures(x, y float32) bool {
	if c.activeWidget != "" {
		return true
	}
	for _, ws := range c.windows {
		if ws.Open && ws.Rect().Contains(x, y) {
			return true
		}
	}
	return false
}

// WidgetRect returns where the widget id of window windowID was laid out
// in the last frame.
func (c *Context) WidgetRect(windowID, id string) (Rect, bool) {
	r, ok := c.rects[windowID+"_"+id]
	return r, ok
}

// BeginWindow starts a new window. x, y, w and h place it the first time
// it is shown; after that it keeps where the user dragged it.
// Returns false if the window is closed.
func (c *Context) BeginWindow(id string, x, y, w, h float32, title string) bool {
	ws, ok := c.windows[id]
	if !ok {
		ws = &WindowState{ID: id, X: x, Y: y, W: w, H: h, Open: true}
		c.windows[id] = ws
	}
	if !ws.Open {
		return false
	}

	c.currentWindow = ws

	// Title bar drags the window
	if ws.Moving && c.input.MouseLeftDown {
		ws.X += c.input.MouseDeltaX
		ws.Y += c.input.MouseDeltaY
	}
	titleBar := Rect{ws.X, ws.Y, ws.W, titleBarH}
	if c.input.MouseLeftPressed && c.activeWidget == "" && titleBar.Contains(c.input.MouseX, c.input.MouseY) {
		ws.Moving = true
		c.activeWidget = id + "_titlebar"
	}
	if c.input.MouseLeftReleased && ws.Moving {
		ws.Moving = false
		c.activeWidget = ""
	}

	c.renderer.DrawPanel(ws.X, ws.Y, ws.W, ws.H, ColorPanelBg, ColorPanelBorder)
	c.renderer.DrawRect(ws.X+1, ws.Y+1, ws.W-2, titleBarH-1, ColorButtonNormal)

	_, textH := c.renderer.MeasureText(title, textScale)
	c.renderer.DrawText(ws.X+padding, ws.Y+(titleBarH-textH)/2, title, textScale, ColorText)

	// Content starts below the title bar
	c.cursorX = ws.X + padding
	c.cursorY = ws.Y + titleBarH + padding
	c.rowH = 0

	return true
}

// EndWindow ends the current window.
func (c *Context) EndWindow() {
	c.currentWindow = nil
}

// Row starts a new row with the given height.
func (c *Context) Row(height float32) {
	if c.currentWindow == nil {
		return
	}
	c.cursorX = c.currentWindow.X + padding
	c.cursorY += c.rowH + spacing
	c.rowH = height
}

// contentWidth is the usable width of the current window.
func (c *Context) contentWidth() float32 {
	return c.currentWindow.W - 2*padding
}

// press handles the press/release cycle shared by buttons and list rows.
// It reports whether the widget was clicked this frame.
func (c *Context) press(fullID string, rect Rect) (hovered, clicked bool) {
	c.rects[fullID] = rect
	hovered = rect.Contains(c.input.MouseX, c.input.MouseY)
	if c.currentListBox != nil && !c.currentListBox.rect().Contains(c.input.MouseX, c.input.MouseY) {
		hovered = false
	}

	if hovered {
		c.hotWidget = fullID
		// Click on press for better responsiveness
		if c.input.MouseLeftPressed && c.activeWidget == "" {
			c.activeWidget = fullID
			clicked = true
		}
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		c.activeWidget = ""
	}
	return hovered, clicked
}

// Button draws a button and returns true if clicked. A zero width fills
// the row.
func (c *Context) Button(id string, width float32, label string) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowH
	if h == 0 {
		h = 28
	}
	if width == 0 {
		width = c.contentWidth()
	}

	fullID := c.currentWindow.ID + "_" + id
	hovered, clicked := c.press(fullID, Rect{x, y, width, h})

	color := ColorButtonNormal
	if c.activeWidget == fullID {
		color = ColorButtonActive
	} else if hovered {
		color = ColorButtonHover
	}
	c.renderer.DrawRect(x, y, width, h, color)
	c.renderer.DrawRectOutline(x, y, width, h, 1, ColorPanelBorder)

	// Label centered
	textW, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+(width-textW)/2, y+(h-textH)/2, label, textScale, ColorText)

	c.cursorX += width + spacing
	return clicked
}

// Label draws a text label.
func (c *Context) Label(text string) {
	c.LabelColored(text, ColorText)
}

// LabelColored draws a text label with a specific color.
func (c *Context) LabelColored(text string, color Color) {
	if c.currentWindow == nil {
		return
	}
	c.renderer.DrawText(c.cursorX, c.cursorY, text, textScale, color)

	w, _ := c.renderer.MeasureText(text, textScale)
	c.cursorX += w + spacing
}

// Separator draws a horizontal separator line.
func (c *Context) Separator() {
	if c.currentWindow == nil {
		return
	}
	c.cursorY += c.rowH + spacing
	c.rowH = 0
	x := c.currentWindow.X + padding
	c.renderer.DrawRect(x, c.cursorY, c.contentWidth(), 1, ColorPanelBorder)
	c.cursorY += padding
	c.cursorX = x
}

// Selectable draws a full-width list row and returns true if clicked.
func (c *Context) Selectable(id string, label string, selected bool) bool {
	if c.currentWindow == nil {
		return false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowH
	if h == 0 {
		h = listRowH
	}
	width := c.contentWidth()
	if c.currentListBox != nil {
		width = c.currentListBox.W - 2*spacing
	}

	fullID := c.currentWindow.ID + "_" + id
	hovered, clicked := c.press(fullID, Rect{x, y, width, h})

	var bg Color
	switch {
	case selected:
		bg = ColorHighlight.WithAlpha(0.5)
	case c.activeWidget == fullID:
		bg = ColorButtonActive
	case hovered:
		bg = ColorButtonHover
	}
	if bg.A > 0 {
		c.renderer.DrawRect(x, y, width, h, bg)
	}

	_, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+spacing, y+(h-textH)/2, label, textScale, ColorText)

	// Next row
	c.cursorY += h
	return clicked
}

// BeginListBox starts a scrolling list box. Rows added until EndListBox
// are clipped to it; the mouse wheel scrolls it while hovered.
func (c *Context) BeginListBox(id string, width, height float32) {
	if c.currentWindow == nil {
		return
	}

	x := c.currentWindow.X + padding
	y := c.cursorY
	if width == 0 {
		width = c.contentWidth()
	}
	if height == 0 {
		height = 200
	}

	fullID := c.currentWindow.ID + "_" + id
	lb, ok := c.listBoxes[fullID]
	if !ok {
		lb = &ListBoxState{}
		c.listBoxes[fullID] = lb
	}
	lb.X, lb.Y, lb.W, lb.H = x, y, width, height
	c.rects[fullID] = lb.rect()

	if c.input.ScrollY != 0 && lb.rect().Contains(c.input.MouseX, c.input.MouseY) {
		lb.ScrollY -= c.input.ScrollY * scrollStep
	}
	lb.clampScroll()

	c.renderer.DrawRect(x, y, width, height, ColorInputBg)
	c.renderer.DrawRectOutline(x, y, width, height, 1, ColorPanelBorder)
	c.renderer.SetClip(Rect{x + 1, y + 1, width - 2, height - 2})

	c.currentListBox = lb
	c.cursorX = x + spacing
	c.cursorY = y + spacing - lb.ScrollY
	c.rowH = listRowH
}

// EndListBox ends a list box region.
func (c *Context) EndListBox() {
	if c.currentWindow == nil || c.currentListBox == nil {
		return
	}
	lb := c.currentListBox
	lb.contentH = c.cursorY + lb.ScrollY - (lb.Y + spacing)
	lb.clampScroll()

	c.renderer.ClearClip()
	c.currentListBox = nil
	c.cursorX = c.currentWindow.X + padding
	c.cursorY = lb.Y + lb.H + spacing
	c.rowH = 0
}

// Checkbox draws a checkbox and returns its new state. It toggles when
// the button is released over the box.
func (c *Context) Checkbox(id string, label string, checked bool) bool {
	if c.currentWindow == nil {
		return checked
	}

	x, y := c.cursorX, c.cursorY
	fullID := c.currentWindow.ID + "_" + id
	rect := Rect{x, y, checkboxBox, checkboxBox}
	c.rects[fullID] = rect

	hovered := rect.Contains(c.input.MouseX, c.input.MouseY)
	if hovered && c.input.MouseLeftPressed && c.activeWidget == "" {
		c.activeWidget = fullID
	}
	if c.activeWidget == fullID && c.input.MouseLeftReleased {
		if hovered {
			checked = !checked
		}
		c.activeWidget = ""
	}

	bg := ColorInputBg
	if hovered {
		bg = ColorButtonHover
	}
	c.renderer.DrawRect(x, y, checkboxBox, checkboxBox, bg)
	c.renderer.DrawRectOutline(x, y, checkboxBox, checkboxBox, 1, ColorPanelBorder)
	if checked {
		inner := float32(4)
		c.renderer.DrawRect(x+inner, y+inner, checkboxBox-inner*2, checkboxBox-inner*2, ColorHighlight)
	}

	labelW, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x+checkboxBox+padding, y+(checkboxBox-textH)/2, label, textScale, ColorText)

	c.cursorX += checkboxBox + padding + labelW + padding
	return checked
}

// Slider draws a labelled horizontal slider over [lo, hi] and returns the
// new value and whether it changed. Pressing on the track jumps to the
// mouse and dragging follows it. focused highlights the label.
func (c *Context) Slider(id, label string, value, lo, hi float32, focused bool) (float32, bool) {
	if c.currentWindow == nil || hi <= lo {
		return value, false
	}

	x, y, h := c.cursorX, c.cursorY, c.rowH
	if h == 0 {
		h = 20
	}
	labelW := c.contentWidth() / 4
	track := Rect{x + labelW, y, c.contentWidth() - labelW, h}

	fullID := c.currentWindow.ID + "_" + id
	c.rects[fullID] = track

	hovered := track.Contains(c.input.MouseX, c.input.MouseY)
	if hovered && c.input.MouseLeftPressed && c.activeWidget == "" {
		c.activeWidget = fullID
	}

	newValue := value
	if c.activeWidget == fullID {
		if c.input.MouseLeftDown || c.input.MouseLeftPressed {
			t := (c.input.MouseX - track.X) / track.W
			t = min(max(t, 0), 1)
			newValue = lo + t*(hi-lo)
		}
		if c.input.MouseLeftReleased {
			c.activeWidget = ""
		}
	}

	labelColor := ColorTextDim
	if focused {
		labelColor = ColorHighlight
	}
	_, textH := c.renderer.MeasureText(label, textScale)
	c.renderer.DrawText(x, y+(h-textH)/2, label, textScale, labelColor)

	// Track, fill up to the grab, grab
	c.renderer.DrawRect(track.X, track.Y, track.W, track.H, ColorInputBg)
	c.renderer.DrawRectOutline(track.X, track.Y, track.W, track.H, 1, ColorPanelBorder)
	t := min(max((newValue-lo)/(hi-lo), 0), 1)
	grabX := track.X + t*(track.W-sliderGrabW)
	c.renderer.DrawRect(track.X+1, track.Y+1, grabX-track.X, track.H-2, ColorHighlight.WithAlpha(0.35))
	grab := ColorButtonHover
	if c.activeWidget == fullID {
		grab = ColorButtonActive
	} else if hovered {
		grab = ColorButtonHover.Lighten(0.2)
	}
	c.renderer.DrawRect(grabX, track.Y, sliderGrabW, track.H, grab)

	text := fmt.Sprintf("%.2f", newValue)
	textW, _ := c.renderer.MeasureText(text, textScale)
	c.renderer.DrawText(track.X+(track.W-textW)/2, y+(h-textH)/2, text, textScale, ColorText)

	c.cursorX = track.X + track.W + spacing
	return newValue, newValue != value
}

// Rect is a simple rectangle struct.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
