// Package flashmessages bir sonraki isteğe taşınan tek seferlik mesajları ve form verisini fiber session'ında tutar.
package flashmessages

import (
	"encoding/json"

	"formkit.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

const (
	FlashSuccessKey = "flash_success"
	FlashErrorKey   = "flash_error"
	flashFormKey    = "flash_form_data"
)

// StoreLocalsKey session store'unun c.Locals içindeki anahtarı.
const StoreLocalsKey = "session_store"

// Messages okunan flash mesajları.
type Messages struct {
	Success string
	Error   string
}

func sessionFor(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(StoreLocalsKey).(*session.Store)
	if !ok || store == nil {
		return nil, fiber.ErrInternalServerError
	}
	return store.Get(c)
}

// SetFlashMessage mesajı bir sonraki istek için saklar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := sessionFor(c)
	if err != nil {
		configslog.Log.Warn("Flash mesajı için session alınamadı", zap.Error(err))
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages mesajları okur ve session'dan siler.
func GetFlashMessages(c *fiber.Ctx) Messages {
	sess, err := sessionFor(c)
	if err != nil {
		return Messages{}
	}
	var m Messages
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		m.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		m.Error = v
		sess.Delete(FlashErrorKey)
	}
	if m.Success != "" || m.Error != "" {
		if err := sess.Save(); err != nil {
			configslog.Log.Warn("Flash mesajları silinemedi", zap.Error(err))
		}
	}
	return m
}

// SetFlashFormData gönderilen form değerlerini, hata sonrası form tekrar gösterilirken doldurmak için saklar.
func SetFlashFormData(c *fiber.Ctx, data map[string]string) error {
	sess, err := sessionFor(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess.Set(flashFormKey, string(raw))
	return sess.Save()
}

// GetFlashFormData saklanan form değerlerini okur ve siler.
func GetFlashFormData(c *fiber.Ctx) map[string]string {
	data := map[string]string{}
	sess, err := sessionFor(c)
	if err != nil {
		return data
	}
	raw, ok := sess.Get(flashFormKey).(string)
	if !ok {
		return data
	}
	sess.Delete(flashFormKey)
	if err := sess.Save(); err != nil {
		configslog.Log.Warn("Flash form verisi silinemedi", zap.Error(err))
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		configslog.Log.Warn("Flash form verisi çözümlenemedi", zap.Error(err))
	}
	return data
}
