// Package notes แปลง link แบบ markdown ใน notes เป็น HTML ที่ sanitize แล้ว
package notes

import (
	"html"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// linkPattern จับ [label](http(s)://url)
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)

// linkToken ถ้า input มี token นี้ output ต้องมี anchor อย่างน้อยหนึ่งตัว
const linkToken = "](http"

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	return p
}

// Render แปลง notes ดิบเป็น HTML fragment ที่ห่อด้วย <p>
// ต้องเรียกกับค่าที่เก็บใน database เท่านั้น ไม่ใช่ผลลัพธ์ที่ render แล้ว
func Render(notes string) string {
	if notes == "" {
		return ""
	}
	notes = strings.ToValidUTF8(notes, "\uFFFD")

	out, ok := render(notes)
	if !ok {
		return fallback(notes)
	}
	return out
}

// RenderHTML สำหรับใช้ใน html/template
func RenderHTML(notes string) template.HTML {
	return template.HTML(Render(notes))
}

func render(notes string) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			out, ok = "", false
		}
	}()

	linked := linkPattern.ReplaceAllStringFunc(notes, func(m string) string {
		parts := linkPattern.FindStringSubmatch(m)
		// URL ที่ sanitizer จะตัด href ทิ้ง ให้คงเป็น text เดิม ไม่งั้นเหลือ <a> ที่ไม่มี href
		if !linkable(parts[2]) {
			return m
		}
		return `<a href="` + html.EscapeString(parts[2]) + `" target="_blank">` + parts[1] + `</a>`
	})

	sanitized := policy.Sanitize(linked)

	if strings.Contains(notes, linkToken) && !strings.Contains(sanitized, "<a ") {
		return "", false
	}

	if !strings.HasPrefix(sanitized, "<p>") {
		sanitized = "<p>" + sanitized + "</p>"
	}
	return sanitized, true
}

func linkable(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Host != ""
}

// fallback คืน text เดิมแบบ escape แล้ว เพื่อไม่ให้เนื้อหาหายไป
func fallback(notes string) string {
	return "<p>" + html.EscapeString(notes) + "</p>"
}
