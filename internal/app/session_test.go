package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/cityblocks/internal/assets"
	"github.com/Faultbox/cityblocks/internal/config"
	"github.com/Faultbox/cityblocks/internal/controls"
	"github.com/Faultbox/cityblocks/internal/engine/input"
	"github.com/Faultbox/cityblocks/internal/menu"
	"github.com/Faultbox/cityblocks/internal/scene"
)

type mapCatalog map[string]*assets.Asset

func (c mapCatalog) Get(name string) (*assets.Asset, bool) {
	a, ok := c[name]
	return a, ok
}

// fakeDialogs answers prompts from fields and records what was shown.
type fakeDialogs struct {
	block    chan struct{} // Confirm waits on it when set
	mu       sync.Mutex
	confirm  bool
	path     string
	pathErr  error
	confirms []string
	errors   []string
}

func (d *fakeDialogs) Confirm(_, message string) bool {
	if d.block != nil {
		<-d.block
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.confirms = append(d.confirms, message)
	return d.confirm
}

func (d *fakeDialogs) SavePath(string) (string, error) { return d.path, d.pathErr }
func (d *fakeDialogs) LoadPath(string) (string, error) { return d.path, d.pathErr }

func (d *fakeDialogs) Error(_, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors = append(d.errors, message)
}

func (d *fakeDialogs) shownErrors() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.errors...)
}

func newTestSession(t *testing.T, d *fakeDialogs) *session {
	t.Helper()
	catalog := mapCatalog{
		"buildingB":    {Name: "buildingB", Index: 0, Offset: [3]float32{0, -2, 0}},
		"roadStraight": {Name: "roadStraight", Index: 1},
	}
	entries := []config.CatalogEntry{
		{Name: "buildingB", Region: config.Region{MinX: 0, MaxX: 100, MinY: 0, MaxY: 100}},
		{Name: "roadStraight", Region: config.Region{MinX: 100, MaxX: 200, MinY: 0, MaxY: 100}},
	}
	return newSession(
		scene.NewRegistry(catalog),
		controls.New(config.Default().Controls),
		menu.New(entries),
		d,
		filepath.Join(t.TempDir(), "scene_state.json"),
		zap.NewNop(),
	)
}

// settle waits for dialog goroutines and applies their results. Results
// may raise follow-up alerts, hence the second round.
func settle(s *session) {
	for i := 0; i < 2; i++ {
		s.wg.Wait()
		s.drain()
	}
}

func click(s *session, x, y int) {
	s.handle(input.Event{Type: input.EventMouseDown, Button: input.ButtonLeft, MouseX: x, MouseY: y})
}

func key(s *session, k sdl.Scancode, mod input.Modifier) {
	s.handle(input.Event{Type: input.EventKeyDown, Key: k, Mod: mod})
}

func TestSession_ClickSpawns(t *testing.T) {
	s := newTestSession(t, &fakeDialogs{})

	click(s, 50, 50)
	click(s, 150, 50)
	click(s, 500, 500)
	s.handle(input.Event{Type: input.EventMouseDown, Button: 3, MouseX: 50, MouseY: 50})

	require.Equal(t, 2, s.registry.Len())
	in, idx := s.registry.Selected()
	require.NotNil(t, in)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "roadStraight_0", in.Label)
	assert.Equal(t, scene.IdentityTransform(), s.panel.Transform())
}

func TestSession_SliderWritesThrough(t *testing.T) {
	s := newTestSession(t, &fakeDialogs{})

	// Without a selection the panel moves but nothing is written.
	key(s, sdl.SCANCODE_RIGHT, 0)
	assert.Equal(t, float32(1), s.panel.Slider(controls.AxisX).Value)

	click(s, 50, 50)
	key(s, sdl.SCANCODE_RIGHT, input.ModShift)
	key(s, sdl.SCANCODE_7, 0)
	key(s, sdl.SCANCODE_RIGHT, 0)

	in, _ := s.registry.Selected()
	require.NotNil(t, in)
	assert.Equal(t, float32(10), in.Position[0])
	assert.InDelta(t, 1.1, in.Scale, 1e-5)
}

func TestSession_SelectNextLoadsPanel(t *testing.T) {
	s := newTestSession(t, &fakeDialogs{})
	click(s, 50, 50)
	key(s, sdl.SCANCODE_RIGHT, 0)
	click(s, 150, 50)

	key(s, sdl.SCANCODE_TAB, 0)
	in, idx := s.registry.Selected()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "buildingB_0", in.Label)
	assert.Equal(t, float32(1), s.panel.Slider(controls.AxisX).Value)

	key(s, sdl.SCANCODE_TAB, input.ModShift)
	_, idx = s.registry.Selected()
	assert.Equal(t, 1, idx)
	assert.Equal(t, float32(0), s.panel.Slider(controls.AxisX).Value)
}

func TestSession_ToggleVisible(t *testing.T) {
	s := newTestSession(t, &fakeDialogs{})
	click(s, 50, 50)

	key(s, sdl.SCANCODE_V, 0)
	in, _ := s.registry.Selected()
	assert.False(t, in.Visible)
	assert.Contains(t, s.status(), "buildingB_0 (hidden)")
}

func TestSession_Remove(t *testing.T) {
	t.Run("nothing selected", func(t *testing.T) {
		d := &fakeDialogs{confirm: true}
		s := newTestSession(t, d)

		key(s, sdl.SCANCODE_DELETE, 0)
		settle(s)

		assert.Equal(t, []string{removeNoneAlert}, d.shownErrors())
		assert.Empty(t, d.confirms)
	})

	t.Run("declined", func(t *testing.T) {
		d := &fakeDialogs{confirm: false}
		s := newTestSession(t, d)
		click(s, 50, 50)

		key(s, sdl.SCANCODE_DELETE, 0)
		settle(s)

		assert.Equal(t, []string{removeConfirm}, d.confirms)
		assert.Equal(t, 1, s.registry.Len())
	})

	t.Run("confirmed", func(t *testing.T) {
		d := &fakeDialogs{confirm: true}
		s := newTestSession(t, d)
		click(s, 50, 50)
		click(s, 150, 50)
		key(s, sdl.SCANCODE_RIGHT, 0)

		key(s, sdl.SCANCODE_DELETE, 0)
		settle(s)

		require.Equal(t, 1, s.registry.Len())
		in, idx := s.registry.Selected()
		assert.Equal(t, 0, idx)
		assert.Equal(t, "buildingB_0", in.Label)
		assert.Equal(t, scene.IdentityTransform(), s.panel.Transform())
	})

	t.Run("last instance resets panel", func(t *testing.T) {
		d := &fakeDialogs{confirm: true}
		s := newTestSession(t, d)
		click(s, 50, 50)
		key(s, sdl.SCANCODE_RIGHT, 0)

		key(s, sdl.SCANCODE_DELETE, 0)
		settle(s)

		assert.Zero(t, s.registry.Len())
		assert.Equal(t, scene.IdentityTransform(), s.panel.Transform())
	})
}

func TestSession_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "city.json")
	d := &fakeDialogs{path: path}
	s := newTestSession(t, d)

	click(s, 50, 50)
	key(s, sdl.SCANCODE_RIGHT, 0)
	click(s, 150, 50)

	key(s, sdl.SCANCODE_S, input.ModCtrl)
	settle(s)
	require.FileExists(t, path)
	assert.Equal(t, path, s.snapshotPath)

	s.registry.Clear()
	s.panel.Reset()

	key(s, sdl.SCANCODE_O, input.ModCtrl)
	settle(s)

	assert.Empty(t, d.shownErrors())
	require.Equal(t, 2, s.registry.Len())
	first, err := s.registry.At(0)
	require.NoError(t, err)
	assert.Equal(t, "buildingB_0", first.Label)
	assert.Equal(t, float32(1), first.Position[0])

	// The restored selection is shown on the sliders.
	in, _ := s.registry.Selected()
	require.NotNil(t, in)
	assert.Equal(t, in.Transform(), s.panel.Transform())
}

func TestSession_LoadFailureAlerts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	d := &fakeDialogs{path: path}
	s := newTestSession(t, d)
	click(s, 50, 50)
	before := s.snapshotPath

	key(s, sdl.SCANCODE_O, input.ModCtrl)
	settle(s)

	errs := d.shownErrors()
	require.Len(t, errs, 1)
	assert.True(t, strings.HasPrefix(errs[0], "Error loading state:"), errs[0])
	assert.Equal(t, 1, s.registry.Len())
	assert.Equal(t, before, s.snapshotPath)
}

func TestSession_DialogCancelled(t *testing.T) {
	d := &fakeDialogs{pathErr: ErrCancelled}
	s := newTestSession(t, d)
	click(s, 50, 50)

	key(s, sdl.SCANCODE_S, input.ModCtrl)
	key(s, sdl.SCANCODE_O, input.ModCtrl)
	settle(s)

	assert.Empty(t, d.shownErrors())
	assert.NoFileExists(t, s.snapshotPath)
	assert.Equal(t, 1, s.registry.Len())
}

func TestSession_DialogFailureIsLogged(t *testing.T) {
	d := &fakeDialogs{pathErr: errors.New("no display")}
	s := newTestSession(t, d)

	key(s, sdl.SCANCODE_S, input.ModCtrl)
	settle(s)

	assert.Empty(t, d.shownErrors())
	assert.Zero(t, s.registry.Len())
}

func TestSession_Quit(t *testing.T) {
	s := newTestSession(t, &fakeDialogs{})
	key(s, sdl.SCANCODE_ESCAPE, 0)
	assert.True(t, s.quit)

	s = newTestSession(t, &fakeDialogs{})
	s.handle(input.Event{Type: input.EventQuit})
	assert.True(t, s.quit)
}

func TestSession_Status(t *testing.T) {
	s := newTestSession(t, &fakeDialogs{})
	assert.True(t, strings.HasPrefix(s.status(), "no selection | 0 objects | "))

	click(s, 50, 50)
	assert.True(t, strings.HasPrefix(s.status(), "buildingB_0 | 1 objects | "))
}

func TestSession_Shutdown(t *testing.T) {
	t.Run("no dialogs", func(t *testing.T) {
		s := newTestSession(t, &fakeDialogs{})
		assert.True(t, s.shutdown(time.Second))
	})

	t.Run("dialog answered after the loop stopped", func(t *testing.T) {
		d := &fakeDialogs{confirm: true, block: make(chan struct{})}
		s := newTestSession(t, d)
		click(s, 50, 50)
		key(s, sdl.SCANCODE_DELETE, 0)

		assert.False(t, s.shutdown(10*time.Millisecond))

		// The late answer must not block once the loop is gone.
		close(d.block)
		waited := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(waited)
		}()
		select {
		case <-waited:
		case <-time.After(time.Second):
			t.Fatal("dialog goroutine blocked after shutdown")
		}
		assert.Equal(t, 1, s.registry.Len())
	})
}
