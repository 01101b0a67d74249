package reportserver

import (
	"net/http"

	"canonpipe/internal/safeio"
)

// Paths names the on-disk artifacts this server exposes, all resolved
// through a SafeFS so a misconfigured path can't escape the output root.
type Paths struct {
	ReportPath string
	ErrorPath  string
}

// NewMux builds the gateway's route table: a liveness probe plus the two
// read-only report streams a completed run produces (§6).
func NewMux(fs *safeio.SafeFS, paths Paths) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/report", serveArtifact(fs, paths.ReportPath, "text/plain; charset=utf-8"))
	mux.HandleFunc("/errors", serveArtifact(fs, paths.ErrorPath, "application/x-ndjson"))
	return mux
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// serveArtifact returns a handler that streams a single file relative to
// fs's root, or 404s if path is unconfigured or missing.
func serveArtifact(fs *safeio.SafeFS, path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if path == "" {
			http.Error(w, "not configured", http.StatusNotFound)
			return
		}
		b, err := fs.SafeReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}
