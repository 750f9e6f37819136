package endpoints

import (
	"net/http"
	"os"

	"github.com/velumpress/cms/pkg/server"
)

// RegisterStaticFiles serves uploaded media from the configured media directory
// under both /imagenes/ and /uploads/.
func RegisterStaticFiles(srv *server.Server) {
	if srv.Config == nil || srv.Config.MediaDir == "" {
		return
	}
	media := http.FileServer(noListingFS{http.Dir(srv.Config.MediaDir)})

	srv.Router.PathPrefix("/imagenes/").Handler(http.StripPrefix("/imagenes/", media))
	srv.Router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", media))

	srv.Router.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
}

// noListingFS hides directories so the file server never renders an index
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
