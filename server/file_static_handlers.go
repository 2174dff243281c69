package server

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFiles embed.FS

// StreamFile writes an embedded static asset, e.g. "css/app.css"
func StreamFile(w http.ResponseWriter, _ *http.Request, fileName string) error {
	data, err := fs.ReadFile(staticFiles, path.Join("static", path.Clean("/" + fileName)))
	if err != nil {
		return fmt.Errorf("static asset %s: %w", fileName, err)
	}

	w.Header().Set("Content-Type", assetContentType(fileName, data))
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", fileName, err)
	}
	return nil
}

func assetContentType(fileName string, data []byte) string {
	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(fileName)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(ctype, "charset=") {
		ctype += "; charset=utf-8"
	}
	return ctype
}
