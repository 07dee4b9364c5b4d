package handlers

import (
	"errors"
	"net/http"
	"strings"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/middlewares"
	"formkit.link/models"
	"formkit.link/pkg/flashmessages"
	"formkit.link/pkg/formdraft"
	"formkit.link/pkg/renderer"
	"formkit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelFormHandler form oluşturma akışı: taslak açma, alan düzenleme ve yayınlama.
type PanelFormHandler struct {
	drafts    services.IDraftService
	forms     services.IFormService
	maxUpload int
}

// NewPanelFormHandler yeni bir PanelFormHandler örneği oluşturur.
func NewPanelFormHandler(drafts services.IDraftService) *PanelFormHandler {
	return NewPanelFormHandlerWith(drafts, services.NewFormService(), configs.GetConfig().UploadMaxBytes)
}

// NewPanelFormHandlerWith servisleri dışarıdan alır.
func NewPanelFormHandlerWith(drafts services.IDraftService, forms services.IFormService, maxUpload int) *PanelFormHandler {
	return &PanelFormHandler{drafts: drafts, forms: forms, maxUpload: maxUpload}
}

func draftPath(id string) string {
	return "/panel/drafts/" + id
}

// ShowNewForm başlık, açıklama ve logo girilen ilk adımı gösterir.
func (h *PanelFormHandler) ShowNewForm(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":    "Yeni Form",
		"FormData": flashmessages.GetFlashFormData(c),
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "panel/new", "layouts/app_layout", data, http.StatusOK)
}

// CreateDraft form bilgileriyle yeni bir taslak açar ve düzenleyiciye yönlendirir.
func (h *PanelFormHandler) CreateDraft(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)
	meta := formdraft.Meta{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: c.FormValue("description"),
	}
	formData := map[string]string{"title": meta.Title, "description": meta.Description}

	if fh, err := c.FormFile("logo"); err == nil && fh.Size > 0 {
		logo, err := formdraft.UploadFromFileHeader(fh, h.maxUpload)
		if err != nil {
			msg := "Logo okunamadı."
			if errors.Is(err, formdraft.ErrUploadTooLarge) {
				msg = "Logo dosyası çok büyük."
			}
			configslog.Log.Warn("Panel - logo okunamadı", zap.String("userID", userID), zap.Error(err))
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
			_ = flashmessages.SetFlashFormData(c, formData)
			return c.Redirect("/panel/forms/new", fiber.StatusSeeOther)
		}
		meta.Logo = logo
	}

	id, err := h.drafts.Start(userID, meta)
	if err != nil {
		configslog.Log.Error("Panel - CreateDraft Error", zap.String("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Taslak oluşturulamadı.")
		_ = flashmessages.SetFlashFormData(c, formData)
		return c.Redirect("/panel/forms/new", fiber.StatusSeeOther)
	}
	return c.Redirect(draftPath(id), fiber.StatusSeeOther)
}

// ShowDraft düzenleyiciyi ve yanıtlayıcı önizlemesini gösterir.
func (h *PanelFormHandler) ShowDraft(c *fiber.Ctx) error {
	draft, err := h.drafts.Get(middlewares.UserID(c), c.Params("id"))
	if err != nil {
		return h.draftMissing(c)
	}
	fields := draft.Fields()
	data := fiber.Map{
		"Title":       "Formu Düzenle",
		"DraftID":     c.Params("id"),
		"Meta":        draft.Meta,
		"HasLogo":     draft.Meta.Logo != nil,
		"Description": renderer.SanitizeDescription(draft.Meta.Description),
		"Catalog":     models.FieldCatalog(),
		"Editor":      renderer.EditorFields(fields, draft.PendingAll()),
		"Preview":     renderer.RespondentFields(fields, nil),
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "panel/draft", "layouts/app_layout", data, http.StatusOK)
}

// AddField paletten seçilen türde bir alan ekler.
func (h *PanelFormHandler) AddField(c *fiber.Ctx) error {
	id := c.Params("id")
	kind := models.FieldKind(c.FormValue("kind"))
	err := h.drafts.Mutate(middlewares.UserID(c), id, func(d *formdraft.Draft) error {
		_, err := d.AddField(kind)
		return err
	})
	return h.afterMutation(c, id, err)
}

// UpdateField alanın etiketini ve seçenek kutusunda yazılı kalan değeri kaydeder.
func (h *PanelFormHandler) UpdateField(c *fiber.Ctx) error {
	id, fid := c.Params("id"), c.Params("fid")
	label := c.FormValue("label")
	pending, hasPending := c.FormValue("pending_option"), c.Request().PostArgs().Has("pending_option")
	err := h.drafts.Mutate(middlewares.UserID(c), id, func(d *formdraft.Draft) error {
		d.SetLabel(fid, label)
		if hasPending {
			d.SetPendingOption(fid, pending)
		}
		return nil
	})
	return h.afterMutation(c, id, err)
}

// AddOption seçenek kutusundaki değeri alana ekler. Aynı formdaki etiket de kaydedilir.
func (h *PanelFormHandler) AddOption(c *fiber.Ctx) error {
	id, fid := c.Params("id"), c.Params("fid")
	label, hasLabel := c.FormValue("label"), c.Request().PostArgs().Has("label")
	value := strings.TrimSpace(c.FormValue("pending_option"))
	err := h.drafts.Mutate(middlewares.UserID(c), id, func(d *formdraft.Draft) error {
		if hasLabel {
			d.SetLabel(fid, label)
		}
		d.AddOption(fid, value)
		return nil
	})
	return h.afterMutation(c, id, err)
}

// RemoveField alanı taslaktan çıkarır.
func (h *PanelFormHandler) RemoveField(c *fiber.Ctx) error {
	id, fid := c.Params("id"), c.Params("fid")
	err := h.drafts.Mutate(middlewares.UserID(c), id, func(d *formdraft.Draft) error {
		d.RemoveField(fid)
		return nil
	})
	return h.afterMutation(c, id, err)
}

// Publish taslağı yayınlar ve başarılıysa siler. Yayın taslağın kilidi altında yapılır;
// aynı taslak için art arda gelen istekler ikinci bir form oluşturmaz.
func (h *PanelFormHandler) Publish(c *fiber.Ctx) error {
	userID := middlewares.UserID(c)
	id := c.Params("id")

	var form *models.Form
	err := h.drafts.Consume(userID, id, func(d *formdraft.Draft) error {
		published, err := h.forms.Publish(c.UserContext(), userID, d)
		if err != nil {
			return err
		}
		form = published
		return nil
	})
	if errors.Is(err, services.ErrDraftNotFound) {
		return h.draftMissing(c)
	}
	if err != nil {
		configslog.Log.Error("Panel - Publish Error", zap.String("draftID", id), zap.String("userID", userID), zap.Error(err))
		msg := "Form kaydedilemedi, lütfen tekrar deneyin."
		if errors.Is(err, services.ErrUpload) {
			msg = "Logo yüklenemedi, lütfen tekrar deneyin."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		return c.Redirect(draftPath(id), fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Form yayınlandı.")
	return c.Redirect("/dashboard/forms/"+form.ID, fiber.StatusSeeOther)
}

// Discard taslağı yayınlamadan siler.
func (h *PanelFormHandler) Discard(c *fiber.Ctx) error {
	h.drafts.Discard(middlewares.UserID(c), c.Params("id"))
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Taslak silindi.")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *PanelFormHandler) afterMutation(c *fiber.Ctx, id string, err error) error {
	switch {
	case err == nil:
		return c.Redirect(draftPath(id), fiber.StatusSeeOther)
	case errors.Is(err, services.ErrDraftNotFound):
		return h.draftMissing(c)
	case errors.Is(err, formdraft.ErrUnknownKind):
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Bilinmeyen alan türü.")
	default:
		configslog.Log.Error("Panel - draft mutation error", zap.String("draftID", id), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Taslak güncellenemedi.")
	}
	return c.Redirect(draftPath(id), fiber.StatusSeeOther)
}

func (h *PanelFormHandler) draftMissing(c *fiber.Ctx) error {
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Taslak bulunamadı veya süresi doldu.")
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
