package view

import (
	"html/template"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"kbase/app/models"
	"kbase/app/session"
	"kbase/global"

	"github.com/fsnotify/fsnotify"
)

// PageData is what every template receives.
type PageData struct {
	User        *models.User
	Flashes     []session.Flash
	CurrentYear int
	Entry       *models.Entry
	Entries     []models.Entry
}

// Renderer parses the template directory once and serves pages from
// the cached set. With watch enabled it re-parses on file changes so
// template edits show up without a restart.
type Renderer struct {
	dir     string
	mu      sync.RWMutex
	tpl     *template.Template
	watcher *fsnotify.Watcher
}

func NewRenderer(dir string, watch bool) (*Renderer, error) {
	r := &Renderer{dir: dir}
	if err := r.reload(); err != nil {
		return nil, err
	}
	if watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, err
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, err
		}
		r.watcher = watcher
		go r.watchLoop()
	}
	return r, nil
}

func (r *Renderer) reload() error {
	tpl, err := template.ParseGlob(filepath.Join(r.dir, "*.html"))
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.tpl = tpl
	r.mu.Unlock()
	return nil
}

func (r *Renderer) watchLoop() {
	for {
		select {
		case evt, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if err := r.reload(); err != nil {
					global.Logger.Error().Err(err).Str("event", evt.Name).Msg("template reload failed")
				} else {
					global.Logger.Info().Str("event", evt.Name).Msg("templates reloaded")
				}
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			global.Logger.Error().Err(err).Msg("template watcher error")
		}
	}
}

func (r *Renderer) Close() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}

// Render writes the named page wrapped in the shared layout. Render
// errors are logged, not surfaced: by that point part of the response
// may already be written.
func (r *Renderer) Render(w http.ResponseWriter, name string, data PageData) {
	data.CurrentYear = time.Now().Year()
	r.mu.RLock()
	tpl := r.tpl
	r.mu.RUnlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.ExecuteTemplate(w, name, data); err != nil {
		global.Logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}
