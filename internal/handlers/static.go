package handlers

import (
	"io/fs"
	"net/http"
	"time"
)

// Static serves files from fsys under the /static/ prefix. Directories are
// reported as missing, so no listings are produced.
func Static(fsys fs.FS, maxAge time.Duration) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(filesOnly{fsys})))
	control := cacheControl(maxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", control)
		files.ServeHTTP(w, r)
	})
}

// filesOnly hides the directories of an fs.FS.
type filesOnly struct {
	fs.FS
}

func (f filesOnly) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return file, nil
}
