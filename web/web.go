// Package web เก็บ template ของ UI แบบ embed ไว้ใน binary
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
	"github.com/gosimple/slug"

	"tasktracker/pkg/notes"
)

//go:embed views
var views embed.FS

// NewViewEngine สร้าง html engine พร้อม template funcs
// ต้องเรียกก่อนส่งให้ fiber.Config เพราะ engine load template ตอน app เริ่ม
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("renderNotes", notes.RenderHTML)
	engine.AddFunc("categorySlug", CategorySlug)
	return engine
}

// CategorySlug ชื่อ category -> ส่วนท้ายของ CSS class "category-<slug>"
func CategorySlug(category string) string {
	s := slug.Make(category)
	if s == "" {
		return "general"
	}
	return s
}
