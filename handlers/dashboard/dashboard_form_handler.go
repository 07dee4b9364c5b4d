package handlers

import (
	"errors"
	"net/http"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/models"
	"formkit.link/pkg/flashmessages"
	"formkit.link/pkg/renderer"
	"formkit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DashboardFormHandler yayınlanmış formları ve yanıtlarını listeler.
type DashboardFormHandler struct {
	forms       services.IFormService
	submissions services.ISubmissionService
	baseURL     string
}

// NewDashboardFormHandler yeni bir DashboardFormHandler örneği oluşturur.
func NewDashboardFormHandler() *DashboardFormHandler {
	return NewDashboardFormHandlerWith(services.NewFormService(), services.NewSubmissionService(), configs.GetConfig().BaseURL)
}

// NewDashboardFormHandlerWith servisleri dışarıdan alır.
func NewDashboardFormHandlerWith(forms services.IFormService, submissions services.ISubmissionService, baseURL string) *DashboardFormHandler {
	return &DashboardFormHandler{forms: forms, submissions: submissions, baseURL: baseURL}
}

// responseListItem yanıt listesindeki bir satır.
type responseListItem struct {
	ID          string
	Respondent  models.RespondentInfo
	SubmittedAt string
	Rows        []renderer.ResponseRow
}

// Home tüm formları yanıt sayılarıyla listeler.
func (h *DashboardFormHandler) Home(c *fiber.Ctx) error {
	data := fiber.Map{
		"Title":   "Formlar",
		"Catalog": models.FieldCatalog(),
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))

	items, err := h.forms.ListFormsWithCounts(c.UserContext())
	if err != nil {
		configslog.Log.Error("Dashboard - ListForms Error", zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Formlar listelenirken hata oluştu."
		items = []services.FormListItem{}
	}
	data["Forms"] = items
	return renderer.Render(c, "dashboard/home", "layouts/app_layout", data, http.StatusOK)
}

// ShowForm bir formu ve yanıtlarını gösterir.
func (h *DashboardFormHandler) ShowForm(c *fiber.Ctx) error {
	form, err := h.forms.LoadForm(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.formError(c, err)
	}

	data := fiber.Map{
		"Title":       form.Title,
		"Form":        form,
		"Description": renderer.SanitizeDescription(form.Description),
		"PublicURL":   h.baseURL + "/f/" + form.ID,
		"Fields":      renderer.RespondentFields(form.FieldList(), nil),
	}
	renderer.SetFlashMessages(data, flashmessages.GetFlashMessages(c))

	submissions, err := h.submissions.ListResponses(c.UserContext(), form.ID)
	if err != nil {
		configslog.Log.Error("Dashboard - ListResponses Error", zap.String("formID", form.ID), zap.Error(err))
		data[renderer.FlashErrorKeyView] = "Yanıtlar alınırken hata oluştu."
		submissions = []models.Submission{}
	}
	items := make([]responseListItem, len(submissions))
	for i := range submissions {
		items[i] = responseListItem{
			ID:          submissions[i].ID,
			Respondent:  submissions[i].Respondent,
			SubmittedAt: submissions[i].SubmittedAt.Local().Format("02.01.2006 15:04"),
			Rows:        renderer.ResponseRows(form, &submissions[i]),
		}
	}
	data["Responses"] = items
	return renderer.Render(c, "dashboard/form", "layouts/app_layout", data, http.StatusOK)
}

// ShowResponse tek bir yanıtın detayını gösterir.
func (h *DashboardFormHandler) ShowResponse(c *fiber.Ctx) error {
	ctx := c.UserContext()
	form, err := h.forms.LoadForm(ctx, c.Params("id"))
	if err != nil {
		return h.formError(c, err)
	}
	submission, err := h.submissions.GetResponse(ctx, c.Params("rid"))
	if err != nil || submission.FormID != form.ID {
		if err != nil && !errors.Is(err, services.ErrNotFound) {
			configslog.Log.Error("Dashboard - GetResponse Error", zap.String("id", c.Params("rid")), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Yanıt bulunamadı.")
		return c.Redirect("/dashboard/forms/"+form.ID, fiber.StatusSeeOther)
	}
	return renderer.Render(c, "dashboard/response", "layouts/app_layout", fiber.Map{
		"Title":       form.Title,
		"Form":        form,
		"Response":    submission,
		"SubmittedAt": submission.SubmittedAt.Local().Format("02.01.2006 15:04"),
		"Rows":        renderer.ResponseRows(form, submission),
	}, http.StatusOK)
}

func (h *DashboardFormHandler) formError(c *fiber.Ctx, err error) error {
	msg := "Form bulunamadı."
	if !errors.Is(err, services.ErrNotFound) {
		configslog.Log.Error("Dashboard - LoadForm Error", zap.String("id", c.Params("id")), zap.Error(err))
		msg = "Form yüklenirken bir hata oluştu."
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
