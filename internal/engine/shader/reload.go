package shader

import (
	"github.com/Faultbox/skylanterns/internal/assets"
	"github.com/Faultbox/skylanterns/internal/engine/hotreload"
	"github.com/Faultbox/skylanterns/internal/engine/scene"
)

// Reloader recompiles a graph's programs when the shader files change.
type Reloader struct {
	watcher      *hotreload.Watcher
	graph        *scene.Graph
	files        *assets.Manager
	vertexPath   string
	fragmentPath string
}

// NewReloader watches the two shader assets for graph. The paths are the
// names given to files; the watcher follows the files they resolve to.
func NewReloader(graph *scene.Graph, files *assets.Manager, vertexPath, fragmentPath string) (*Reloader, error) {
	w, err := hotreload.New(files.ResolveOr(vertexPath), files.ResolveOr(fragmentPath))
	if err != nil {
		return nil, err
	}
	return &Reloader{
		watcher:      w,
		graph:        graph,
		files:        files,
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
	}, nil
}

// Pending reports whether the shader files changed since the last call.
func (r *Reloader) Pending() bool {
	return r.watcher.Changed()
}

// Reload rereads the sources and swaps every node program. On error the
// current programs stay in use.
func (r *Reloader) Reload() error {
	r.files.Forget(r.vertexPath, r.fragmentPath)
	factory, err := NewFactory(r.files.Load, r.vertexPath, r.fragmentPath)
	if err != nil {
		return err
	}
	return r.graph.ReplacePrograms(factory)
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.watcher.Close()
}
