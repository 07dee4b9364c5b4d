// Package views HTML şablonlarını ikiliye gömer.
package views

import (
	"embed"
	"net/http"
)

//go:embed layouts auth dashboard panel public errors partials
var files embed.FS

// FileSystem şablonları gofiber html motorunun okuyabileceği biçimde döndürür.
func FileSystem() http.FileSystem {
	return http.FS(files)
}
