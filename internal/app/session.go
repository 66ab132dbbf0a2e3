package app

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cityblocks/internal/controls"
	"github.com/Faultbox/cityblocks/internal/engine/input"
	"github.com/Faultbox/cityblocks/internal/menu"
	"github.com/Faultbox/cityblocks/internal/scene"
)

const (
	removeConfirm   = "Are you sure you want to remove this object?"
	removeNoneAlert = "Please select an object to remove"
)

// session is the interactive state of the application: the scene, the
// sliders and the menu, driven by input events. It does no rendering.
type session struct {
	registry *scene.Registry
	panel    *controls.Panel
	menu     *menu.Menu
	dialogs  Dialogs

	snapshotPath string

	// pending holds work produced by dialog goroutines, applied by drain
	// on the loop goroutine. Once done is closed results are dropped.
	pending chan func()
	done    chan struct{}
	wg      sync.WaitGroup

	quit bool
	log  *zap.Logger
}

func newSession(registry *scene.Registry, panel *controls.Panel, m *menu.Menu, dialogs Dialogs, snapshotPath string, log *zap.Logger) *session {
	return &session{
		registry:     registry,
		panel:        panel,
		menu:         m,
		dialogs:      dialogs,
		snapshotPath: snapshotPath,
		pending:      make(chan func(), 8),
		done:         make(chan struct{}),
		log:          log,
	}
}

// handle applies one input event.
func (s *session) handle(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		s.quit = true
	case input.EventMouseDown:
		if ev.Button == input.ButtonLeft {
			s.click(float32(ev.MouseX), float32(ev.MouseY))
		}
	case input.EventKeyDown:
		s.command(s.panel.HandleKey(ev.Key, ev.Mod))
	}
}

// click spawns the menu item under (x, y), if any.
func (s *session) click(x, y float32) {
	item, ok := s.menu.HitTest(x, y)
	if !ok {
		return
	}
	in, err := s.registry.Add(item.Name)
	if err != nil {
		s.log.Warn("cannot spawn instance", zap.String("name", item.Name), zap.Error(err))
		return
	}
	s.panel.Load(in.Transform())
	s.log.Info("instance spawned", zap.String("label", in.Label))
}

func (s *session) command(cmd controls.Command) {
	switch cmd {
	case controls.CmdQuit:
		s.quit = true
	case controls.CmdSliderChanged:
		if err := s.registry.SetTransform(s.panel.Transform()); err != nil {
			s.log.Debug("slider change ignored", zap.Error(err))
		}
	case controls.CmdSelectNext:
		s.selectNext(1)
	case controls.CmdSelectPrev:
		s.selectNext(-1)
	case controls.CmdToggleVisible:
		if visible, err := s.registry.ToggleVisible(); err == nil {
			s.log.Debug("visibility toggled", zap.Bool("visible", visible))
		}
	case controls.CmdRemove:
		s.remove()
	case controls.CmdSave:
		s.save()
	case controls.CmdLoad:
		s.load()
	}
}

func (s *session) selectNext(delta int) {
	in, err := s.registry.SelectNext(delta)
	if err != nil {
		return
	}
	s.panel.Load(in.Transform())
}

func (s *session) selectIndex(i int) {
	in, err := s.registry.Select(i)
	if err != nil {
		return
	}
	s.panel.Load(in.Transform())
}

// syncPanel shows the selection on the sliders, or the identity transform
// when nothing is selected.
func (s *session) syncPanel() {
	if in, _ := s.registry.Selected(); in != nil {
		s.panel.Load(in.Transform())
		return
	}
	s.panel.Reset()
}

// async runs a blocking dialog off the loop goroutine. The function it
// returns, if any, is queued for drain.
func (s *session) async(dialogFn func() func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if apply := dialogFn(); apply != nil {
			select {
			case s.pending <- apply:
			case <-s.done:
			}
		}
	}()
}

// shutdown stops accepting dialog results and waits up to timeout for open
// dialogs to return. It reports whether they all did.
func (s *session) shutdown(timeout time.Duration) bool {
	close(s.done)

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(timeout):
		return false
	}
}

// drain applies queued dialog results without blocking.
func (s *session) drain() {
	for {
		select {
		case apply := <-s.pending:
			apply()
		default:
			return
		}
	}
}

func (s *session) alert(title, message string) {
	s.async(func() func() {
		s.dialogs.Error(title, message)
		return nil
	})
}

func (s *session) remove() {
	target, _ := s.registry.Selected()
	if target == nil {
		s.alert("Remove", removeNoneAlert)
		return
	}
	s.async(func() func() {
		if !s.dialogs.Confirm("Remove", removeConfirm) {
			return nil
		}
		return func() {
			for i, in := range s.registry.Instances() {
				if in == target {
					if _, err := s.registry.Remove(i); err == nil {
						s.log.Info("instance removed", zap.String("label", in.Label))
					}
					break
				}
			}
			s.syncPanel()
		}
	})
}

func (s *session) save() {
	s.async(func() func() {
		path, err := s.dialogs.SavePath(s.snapshotPath)
		if err != nil {
			if !errors.Is(err, ErrCancelled) {
				s.log.Error("save dialog failed", zap.Error(err))
			}
			return nil
		}
		return func() {
			if err := s.registry.SaveFile(path); err != nil {
				s.log.Error("failed to save scene", zap.String("path", path), zap.Error(err))
				s.alert("Save Scene", err.Error())
				return
			}
			s.snapshotPath = path
		}
	})
}

func (s *session) load() {
	s.async(func() func() {
		path, err := s.dialogs.LoadPath(s.snapshotPath)
		if err != nil {
			if !errors.Is(err, ErrCancelled) {
				s.log.Error("load dialog failed", zap.Error(err))
			}
			return nil
		}
		return func() {
			if err := s.registry.LoadFile(path); err != nil {
				s.log.Error("failed to load scene", zap.String("path", path), zap.Error(err))
				s.alert("Load Scene", fmt.Sprintf("Error loading state: %v", err))
				return
			}
			s.snapshotPath = path
			s.syncPanel()
		}
	})
}

// status summarizes the session for the window title.
func (s *session) status() string {
	sel := "no selection"
	if in, _ := s.registry.Selected(); in != nil {
		sel = in.Label
		if !in.Visible {
			sel += " (hidden)"
		}
	}
	return sel + " | " + strconv.Itoa(s.registry.Len()) + " objects | " + s.panel.String()
}
