package renderer

import (
	"html/template"
	"net/http"

	"formkit.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
)

var descriptionPolicy = bluemonday.UGCPolicy()

// SetFlashMessages okunan flash mesajlarını görünüm verisine ekler.
func SetFlashMessages(data fiber.Map, m flashmessages.Messages) {
	if m.Success != "" {
		data[FlashSuccessKeyView] = m.Success
	}
	if m.Error != "" {
		data[FlashErrorKeyView] = m.Error
	}
}

// Render şablonu düzenle birlikte işler. Oturumdaki kullanıcı adı CurrentUser, CSRF token'ı CsrfToken olarak eklenir.
func Render(c *fiber.Ctx, name, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["CsrfToken"]; !ok {
		data["CsrfToken"] = c.Locals("csrf")
	}
	if _, ok := data["CurrentUser"]; !ok {
		if userName, ok := c.Locals("userName").(string); ok {
			data["CurrentUser"] = userName
		}
	}
	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	return c.Status(code).Render(name, data, layout)
}

// SanitizeDescription form açıklamasındaki HTML'i güvenli alt kümeye indirger.
func SanitizeDescription(s string) template.HTML {
	return template.HTML(descriptionPolicy.Sanitize(s))
}
