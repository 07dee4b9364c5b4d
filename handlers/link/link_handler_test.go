package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"formkit.link/configs"
	"formkit.link/database/databasetest"
	"formkit.link/models"
	"formkit.link/pkg/blobstore"
	"formkit.link/pkg/flashmessages"
	"formkit.link/pkg/formdraft"
	"formkit.link/repositories"
	"formkit.link/services"
	"formkit.link/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rejectingSubmissions gerçek servisi sarar, yalnızca Submit kalıcı yazım hatası döndürür.
type rejectingSubmissions struct {
	services.ISubmissionService
}

func (rejectingSubmissions) Submit(context.Context, *models.Form, *services.ResponseSheet, models.RespondentInfo) (*models.Submission, error) {
	return nil, services.ErrPersistence
}

type linkFixture struct {
	app    *fiber.App
	form   *models.Form
	nameID string
	dietID string
}

func newLinkFixture(t *testing.T, failSubmit bool) *linkFixture {
	t.Helper()
	configs.SetConfig(&configs.AppConfig{Env: "test", JWTSecret: "test-secret", SessionTTL: time.Hour})

	db := databasetest.Open(t)
	blobs, err := blobstore.NewDiskStore(t.TempDir(), "http://formkit.test/files")
	require.NoError(t, err)
	subRepo := repositories.NewSubmissionRepositoryWithDB(db)
	forms := services.NewFormServiceWith(repositories.NewFormRepositoryWithDB(db), subRepo, blobs)
	var submissions services.ISubmissionService = services.NewSubmissionServiceWith(subRepo, blobs)
	if failSubmit {
		submissions = rejectingSubmissions{submissions}
	}

	draft := formdraft.New(formdraft.Meta{Title: "Dinner"})
	nameID, err := draft.AddField(models.FieldKindText)
	require.NoError(t, err)
	draft.SetLabel(nameID, "Name")
	dietID, err := draft.AddField(models.FieldKindCheckbox)
	require.NoError(t, err)
	draft.SetLabel(dietID, "Dietary")
	draft.AddOption(dietID, "Vegan")
	draft.AddOption(dietID, "Halal")
	form, err := forms.Publish(context.Background(), "owner-1", draft)
	require.NoError(t, err)

	engine := html.NewFileSystem(views.FileSystem(), ".html")
	engine.AddFunc("join", strings.Join)
	app := fiber.New(fiber.Config{Views: engine})
	store := configs.SetupSession()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(flashmessages.StoreLocalsKey, store)
		return c.Next()
	})
	h := NewLinkHandlerWith(forms, submissions, blobs, 1<<20)
	app.Get("/f/:id", h.ShowForm)
	app.Post("/f/:id", h.Submit)

	return &linkFixture{app: app, form: form, nameID: nameID, dietID: dietID}
}

func (f *linkFixture) submit(t *testing.T, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/f/"+f.form.ID, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSubmit_FailureKeepsCheckedOptions(t *testing.T) {
	f := newLinkFixture(t, true)

	resp := f.submit(t, url.Values{
		"respondent_name":   {"Ada"},
		"field_" + f.nameID: {"Ada Lovelace"},
		"field_" + f.dietID: {"Halal"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/f/"+f.form.ID, resp.Header.Get(fiber.HeaderLocation))

	req := httptest.NewRequest(http.MethodGet, "/f/"+f.form.ID, nil)
	for _, ck := range resp.Cookies() {
		req.AddCookie(ck)
	}
	page, err := f.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, page.StatusCode)
	raw, err := io.ReadAll(page.Body)
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, "Yanıtınız kaydedilemedi")
	assert.Contains(t, body, `value="Ada Lovelace"`)
	assert.Contains(t, body, `value="Halal" checked`)
	assert.Contains(t, body, `value="Vegan">`)
	assert.Contains(t, body, `name="respondent_name" value="Ada"`)
}

func TestSubmit_StoresCheckboxSelections(t *testing.T) {
	f := newLinkFixture(t, false)

	resp := f.submit(t, url.Values{"field_" + f.dietID: {"Vegan", "Halal"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Teşekkürler!")
}

func TestShowForm_UnknownFormIs404(t *testing.T) {
	f := newLinkFixture(t, false)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/f/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
