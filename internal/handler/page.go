package handler

import (
	_ "embed"
	"net/http"
)

//go:embed ad_creator.html
var adCreatorPage []byte

// AdCreatorPage serves the single-page ad creator front end
// GET /
func AdCreatorPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(adCreatorPage)
}
