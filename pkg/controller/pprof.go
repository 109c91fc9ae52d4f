package controller

import (
	"net/http"
	"net/http/pprof"
)

// PprofMux exposes the runtime profiling endpoints on their own mux so the
// server can mount them under /debug/pprof/ without pulling the pprof
// side-effect registration into the default serve mux.
func PprofMux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)

	return mux
}
