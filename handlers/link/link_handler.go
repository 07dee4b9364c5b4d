package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/configs/configsstorage"
	"formkit.link/models"
	"formkit.link/pkg/blobstore"
	"formkit.link/pkg/flashmessages"
	"formkit.link/pkg/formdraft"
	"formkit.link/pkg/renderer"
	"formkit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LinkHandler public form sayfası, yanıt gönderimi ve dosya sunumu.
type LinkHandler struct {
	forms       services.IFormService
	submissions services.ISubmissionService
	blobs       blobstore.Store
	maxUpload   int
}

// NewLinkHandler yeni bir LinkHandler örneği oluşturur.
func NewLinkHandler() *LinkHandler {
	return NewLinkHandlerWith(
		services.NewFormService(),
		services.NewSubmissionService(),
		configsstorage.GetBlobStore(),
		configs.GetConfig().UploadMaxBytes,
	)
}

// NewLinkHandlerWith bağımlılıkları dışarıdan alır.
func NewLinkHandlerWith(forms services.IFormService, submissions services.ISubmissionService, blobs blobstore.Store, maxUpload int) *LinkHandler {
	return &LinkHandler{forms: forms, submissions: submissions, blobs: blobs, maxUpload: maxUpload}
}

// ShowForm yanıtlayıcıya formu gösterir.
func (h *LinkHandler) ShowForm(c *fiber.Ctx) error {
	form, err := h.forms.LoadForm(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.formError(c, err)
	}
	return h.renderForm(c, form, flashmessages.GetFlashFormData(c), http.StatusOK)
}

func (h *LinkHandler) renderForm(c *fiber.Ctx, form *models.Form, formData map[string]string, status int) error {
	values := make(map[string]any, len(formData))
	for _, f := range form.Fields {
		v, ok := formData[renderer.InputName(f.InstanceID)]
		if !ok {
			continue
		}
		if choice, isChoice := f.Variant().(models.ChoiceVariant); isChoice && choice.Multiple {
			// Checkbox seçimleri flash verisinde JSON dizi olarak tutulur.
			var selected []string
			if err := json.Unmarshal([]byte(v), &selected); err == nil {
				values[f.InstanceID] = selected
			}
			continue
		}
		values[f.InstanceID] = v
	}
	data := fiber.Map{
		"Title":       form.Title,
		"Form":        form,
		"Description": renderer.SanitizeDescription(form.Description),
		"Fields":      renderer.RespondentFields(form.FieldList(), values),
		"FormData":    formData,
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "public/form_fill", "layouts/public_layout", data, status)
}

// Submit yanıtları toplar, dosyaları eşzamanlı yükler ve yanıtı kaydeder.
func (h *LinkHandler) Submit(c *fiber.Ctx) error {
	ctx := c.UserContext()
	form, err := h.forms.LoadForm(ctx, c.Params("id"))
	if err != nil {
		return h.formError(c, err)
	}

	// Dosya alanı olmayan formlar urlencoded da gönderilebilir.
	mf, err := c.MultipartForm()
	if err != nil {
		mf = nil
	}
	value := func(name string) []string {
		if mf != nil {
			return mf.Value[name]
		}
		var out []string
		for _, b := range c.Request().PostArgs().PeekMulti(name) {
			out = append(out, string(b))
		}
		return out
	}
	first := func(name string) string {
		if vs := value(name); len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	sheet := h.submissions.NewSheet(form)
	formData := map[string]string{}
	uploads := map[string]*multipart.FileHeader{}
	for _, f := range form.Fields {
		name := renderer.InputName(f.InstanceID)
		switch v := f.Variant().(type) {
		case models.TextVariant:
			val := first(name)
			sheet.SetResponse(f.InstanceID, val)
			formData[name] = val
		case models.ChoiceVariant:
			if v.Multiple {
				selected := value(name)
				for _, opt := range selected {
					sheet.ToggleOption(f.InstanceID, opt, true)
				}
				if len(selected) > 0 {
					if raw, err := json.Marshal(selected); err == nil {
						formData[name] = string(raw)
					}
				}
				continue
			}
			val := first(name)
			sheet.SetResponse(f.InstanceID, val)
			formData[name] = val
		case models.UploadVariant:
			if mf != nil && len(mf.File[name]) > 0 && mf.File[name][0].Size > 0 {
				uploads[f.InstanceID] = mf.File[name][0]
			}
		}
	}

	respondent := models.RespondentInfo{
		Name:  strings.TrimSpace(first("respondent_name")),
		Email: strings.TrimSpace(first("respondent_email")),
	}
	formData["respondent_name"] = respondent.Name
	formData["respondent_email"] = respondent.Email

	g, gctx := errgroup.WithContext(ctx)
	for fieldID, fh := range uploads {
		fieldID, fh := fieldID, fh
		g.Go(func() error {
			upload, err := formdraft.UploadFromFileHeader(fh, h.maxUpload)
			if err != nil {
				return err
			}
			_, err = sheet.AttachFile(gctx, fieldID, *upload)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		configslog.Log.Error("Public - upload error", zap.String("formID", form.ID), zap.Error(err))
		msg := "Dosya yüklenemedi, lütfen tekrar deneyin."
		if errors.Is(err, formdraft.ErrUploadTooLarge) {
			msg = "Yüklenen dosya çok büyük."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
		_ = flashmessages.SetFlashFormData(c, formData)
		return c.Redirect("/f/"+form.ID, fiber.StatusSeeOther)
	}

	if _, err := h.submissions.Submit(ctx, form, sheet, respondent); err != nil {
		configslog.Log.Error("Public - Submit error", zap.String("formID", form.ID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yanıtınız kaydedilemedi, lütfen tekrar deneyin.")
		_ = flashmessages.SetFlashFormData(c, formData)
		return c.Redirect("/f/"+form.ID, fiber.StatusSeeOther)
	}

	return renderer.Render(c, "public/thanks", "layouts/public_layout", fiber.Map{
		"Title": form.Title,
		"Form":  form,
	}, http.StatusOK)
}

// ServeFile disk deposundaki nesneleri /files/* altından sunar.
func (h *LinkHandler) ServeFile(c *fiber.Ctx) error {
	objectPath := c.Params("*")
	rc, err := h.blobs.Open(c.UserContext(), objectPath)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, blobstore.ErrInvalidPath) {
			return fiber.ErrNotFound
		}
		configslog.Log.Error("Public - ServeFile error", zap.String("path", objectPath), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	contentType := mime.TypeByExtension(path.Ext(objectPath))
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set("X-Content-Type-Options", "nosniff")
	return c.SendStream(rc)
}

func (h *LinkHandler) formError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
			"Title":   "Bulunamadı",
			"Message": "Form bulunamadı.",
		}, "layouts/error_layout")
	}
	configslog.Log.Error("Public - LoadForm error", zap.String("id", c.Params("id")), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": "Form yüklenirken bir sorun oluştu.",
	}, "layouts/error_layout")
}
