package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"formkit.link/database/databasetest"
	"formkit.link/models"
	"formkit.link/pkg/blobstore"
	"formkit.link/pkg/formdraft"
	"formkit.link/repositories"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// failingStore her yüklemede hata döndürür.
type failingStore struct{}

func (failingStore) Upload(context.Context, string, io.Reader, string) error {
	return errors.New("bucket unavailable")
}
func (failingStore) URL(context.Context, string) (string, error) { return "", blobstore.ErrNotFound }
func (failingStore) Open(context.Context, string) (io.ReadCloser, error) {
	return nil, blobstore.ErrNotFound
}

// slowStore yüklemeleri sayar ve release kapanana kadar bekletir.
type slowStore struct {
	*blobstore.DiskStore
	uploads atomic.Int32
	started chan struct{}
	release chan struct{}
}

func (s *slowStore) Upload(ctx context.Context, p string, r io.Reader, ct string) error {
	if s.uploads.Add(1) == 1 {
		close(s.started)
	}
	<-s.release
	return s.DiskStore.Upload(ctx, p, r, ct)
}

// failingFormRepo gerçek repository'yi sarar, yalnızca Create hata verir.
type failingFormRepo struct {
	repositories.IFormRepository
}

func (failingFormRepo) Create(context.Context, *models.Form) error {
	return errors.New("connection reset")
}

// failingSubmissionRepo gerçek repository'yi sarar, yalnızca Create hata verir.
type failingSubmissionRepo struct {
	repositories.ISubmissionRepository
}

func (failingSubmissionRepo) Create(context.Context, *models.Submission) error {
	return errors.New("disk full")
}

type fixture struct {
	db          *gorm.DB
	blobs       blobstore.Store
	forms       *FormService
	submissions *SubmissionService
}

func newFixture(t *testing.T, blobs blobstore.Store) *fixture {
	t.Helper()
	db := databasetest.Open(t)
	if blobs == nil {
		disk, err := blobstore.NewDiskStore(t.TempDir(), "http://localhost:3000/files")
		require.NoError(t, err)
		blobs = disk
	}
	formRepo := repositories.NewFormRepositoryWithDB(db)
	subRepo := repositories.NewSubmissionRepositoryWithDB(db)
	return &fixture{
		db:          db,
		blobs:       blobs,
		forms:       NewFormServiceWith(formRepo, subRepo, blobs),
		submissions: NewSubmissionServiceWith(subRepo, blobs),
	}
}

func eventRSVPDraft(t *testing.T) (*formdraft.Draft, string, string) {
	t.Helper()
	d := formdraft.New(formdraft.Meta{Title: "Event RSVP", Description: "Tell us you're coming"})
	nameID, err := d.AddField(models.FieldKindText)
	require.NoError(t, err)
	d.SetLabel(nameID, "Name")
	dietID, err := d.AddField(models.FieldKindCheckbox)
	require.NoError(t, err)
	d.SetLabel(dietID, "Dietary")
	d.AddOption(dietID, "Vegan")
	d.AddOption(dietID, "Halal")
	return d, nameID, dietID
}

func TestPublish_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	draft, _, _ := eventRSVPDraft(t)
	before := draft.Fields()

	form, err := f.forms.Publish(ctx, "owner-1", draft)
	require.NoError(t, err)
	require.NotEmpty(t, form.ID)
	assert.Empty(t, form.LogoURL)

	loaded, err := f.forms.LoadForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Event RSVP", loaded.Title)
	assert.Equal(t, "Tell us you're coming", loaded.Description)
	assert.Equal(t, "owner-1", loaded.CreatorUserID)
	if diff := cmp.Diff(before, loaded.FieldList()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, loaded.Fields, 2)
	assert.Equal(t, "Name", loaded.Fields[0].CustomLabel)
	assert.Equal(t, []string{"Vegan", "Halal"}, loaded.Fields[1].Options)

	// Yayın taslağı değiştirmez.
	assert.Equal(t, before, draft.Fields())
}

func TestPublish_WithLogo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.forms.now = func() time.Time { return time.Unix(0, 42) }

	draft := formdraft.New(formdraft.Meta{
		Title: "Logo",
		Logo:  &formdraft.Upload{FileName: "my logo.png", ContentType: "image/png", Data: []byte("png")},
	})
	form, err := f.forms.Publish(ctx, "owner-1", draft)
	require.NoError(t, err)
	assert.Equal(t, "logos/42_my_logo.png", form.LogoPath)
	assert.Equal(t, "http://localhost:3000/files/logos/42_my_logo.png", form.LogoURL)

	rc, err := f.blobs.Open(ctx, form.LogoPath)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestPublish_UploadFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, failingStore{})
	draft := formdraft.New(formdraft.Meta{Title: "X", Logo: &formdraft.Upload{FileName: "l.png", Data: []byte{1}}})

	_, err := f.forms.Publish(ctx, "owner-1", draft)
	assert.ErrorIs(t, err, ErrUpload)

	forms, err := f.forms.ListForms(ctx)
	require.NoError(t, err)
	assert.Empty(t, forms)
}

func TestPublish_WriteFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	formRepo := repositories.NewFormRepositoryWithDB(f.db)
	subRepo := repositories.NewSubmissionRepositoryWithDB(f.db)
	svc := NewFormServiceWith(failingFormRepo{formRepo}, subRepo, f.blobs)

	draft, _, _ := eventRSVPDraft(t)
	before := draft.Fields()
	meta := draft.Meta

	form, err := svc.Publish(ctx, "owner-1", draft)
	require.Error(t, err)
	assert.Nil(t, form)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.NotErrorIs(t, err, ErrUpload)

	assert.Equal(t, before, draft.Fields())
	assert.Equal(t, meta, draft.Meta)

	forms, err := f.forms.ListForms(ctx)
	require.NoError(t, err)
	assert.Empty(t, forms)
}

func TestPublish_EmptyTitleAndOptionlessChoiceAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	draft := formdraft.New(formdraft.Meta{})
	_, err := draft.AddField(models.FieldKindRadio)
	require.NoError(t, err)

	form, err := f.forms.Publish(ctx, "owner-1", draft)
	require.NoError(t, err)
	loaded, err := f.forms.LoadForm(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Title)
	require.Len(t, loaded.Fields, 1)
	assert.Empty(t, loaded.Fields[0].Options)
}

func TestPublish_RequiresOwner(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.forms.Publish(context.Background(), "", formdraft.New(formdraft.Meta{}))
	assert.ErrorIs(t, err, ErrAuth)
}

func TestLoadForm_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.forms.LoadForm(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmit_EventRSVP_VeganOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	draft, nameID, dietID := eventRSVPDraft(t)
	form, err := f.forms.Publish(ctx, "owner-1", draft)
	require.NoError(t, err)

	sheet := f.submissions.NewSheet(form)
	sheet.SetResponse(nameID, "Ada")
	sheet.ToggleOption(dietID, "Vegan", true)

	sub, err := f.submissions.Submit(ctx, form, sheet, models.RespondentInfo{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	stored, err := f.submissions.GetResponse(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Vegan"}, models.ResponseStrings(stored.Responses["Dietary"]))
	assert.Equal(t, "Ada", stored.Responses["Name"])
	assert.Equal(t, "ada@example.com", stored.Respondent.Email)
	assert.Equal(t, form.ID, stored.FormID)
	assert.False(t, stored.SubmittedAt.IsZero())

	n, err := f.forms.CountResponses(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	items, err := f.forms.ListFormsWithCounts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].ResponseCount)
	assert.Equal(t, "Event RSVP", items[0].Title)
}

func TestSubmit_DuplicateLabelsLaterWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	d := formdraft.New(formdraft.Meta{Title: "Contacts"})
	first, _ := d.AddField(models.FieldKindEmail)
	second, _ := d.AddField(models.FieldKindEmail)
	d.SetLabel(first, "Email")
	d.SetLabel(second, "Email")
	form, err := f.forms.Publish(ctx, "owner-1", d)
	require.NoError(t, err)

	sheet := f.submissions.NewSheet(form)
	sheet.SetResponse(first, "a@x.io")
	sheet.SetResponse(second, "b@x.io")
	sub, err := f.submissions.Submit(ctx, form, sheet, models.RespondentInfo{})
	require.NoError(t, err)

	assert.Len(t, sub.Responses, 1)
	assert.Equal(t, "b@x.io", sub.Responses["Email"])
	assert.Equal(t, "a@x.io", sub.FieldResponses[first])
	assert.Equal(t, "b@x.io", sub.FieldResponses[second])
}

func TestSubmit_OmitsEmptyValues(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	draft, nameID, dietID := eventRSVPDraft(t)
	form, err := f.forms.Publish(ctx, "owner-1", draft)
	require.NoError(t, err)

	sheet := f.submissions.NewSheet(form)
	sheet.SetResponse(nameID, "")
	sheet.ToggleOption(dietID, "Vegan", true)
	sheet.ToggleOption(dietID, "Vegan", false)
	sheet.SetResponse("not-a-field", "ignored")

	sub, err := f.submissions.Submit(ctx, form, sheet, models.RespondentInfo{})
	require.NoError(t, err)
	assert.Empty(t, sub.Responses)
	assert.Empty(t, sub.FieldResponses)
}

func TestSubmit_WriteFailureIsPersistenceError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	draft, nameID, _ := eventRSVPDraft(t)
	form, err := f.forms.Publish(ctx, "owner-1", draft)
	require.NoError(t, err)

	svc := NewSubmissionServiceWith(failingSubmissionRepo{repositories.NewSubmissionRepositoryWithDB(f.db)}, f.blobs)
	sheet := svc.NewSheet(form)
	sheet.SetResponse(nameID, "Ada")

	sub, err := svc.Submit(ctx, form, sheet, models.RespondentInfo{Name: "Ada"})
	require.Error(t, err)
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrPersistence)

	list, err := f.submissions.ListResponses(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
	// Başarısız gönderim yanıt sayfasını boşaltmaz; tekrar denenebilir.
	assert.Equal(t, "Ada", sheet.Values()[nameID])
}

func TestListResponses_Empty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	list, err := f.submissions.ListResponses(ctx, "no-submissions")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetResponse_NotFound(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.submissions.GetResponse(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleOption_IsItsOwnInverse(t *testing.T) {
	sheet := NewResponseSheet("form-1", nil)
	sheet.ToggleOption("diet", "Halal", true)
	before := sheet.Values()

	sheet.ToggleOption("diet", "Vegan", true)
	assert.Equal(t, []string{"Halal", "Vegan"}, sheet.Values()["diet"])
	sheet.ToggleOption("diet", "Vegan", false)
	assert.Equal(t, before, sheet.Values())

	empty := NewResponseSheet("form-1", nil)
	empty.ToggleOption("diet", "Vegan", true)
	empty.ToggleOption("diet", "Vegan", false)
	assert.Empty(t, empty.Values())
}

func TestToggleOption_CheckIsSetLike(t *testing.T) {
	sheet := NewResponseSheet("form-1", nil)
	sheet.ToggleOption("diet", "Vegan", true)
	sheet.ToggleOption("diet", "Vegan", true)
	sheet.ToggleOption("diet", "Halal", false)
	assert.Equal(t, []string{"Vegan"}, sheet.Values()["diet"])
}

func TestValues_IsSnapshot(t *testing.T) {
	sheet := NewResponseSheet("form-1", nil)
	sheet.SetSelections("diet", []string{"Vegan"})
	snap := sheet.Values()
	snap["diet"].([]string)[0] = "changed"
	assert.Equal(t, []string{"Vegan"}, sheet.Values()["diet"])
}

func TestAttachFile_StoresURLAndPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	sheet := NewResponseSheet("form-1", f.blobs)

	url, err := sheet.AttachFile(ctx, "cv", formdraft.Upload{FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")})
	require.NoError(t, err)
	objectPath := UserFilePath("form-1", sheet.key, "cv", "cv.pdf")
	assert.Equal(t, "user-files/form-1/"+sheet.key+"/cv_cv.pdf", objectPath)
	assert.Equal(t, "http://localhost:3000/files/"+objectPath, url)
	assert.Equal(t, url, sheet.Values()["cv"])
	assert.Equal(t, map[string]string{"cv": objectPath}, sheet.Files())
}

func TestAttachFile_SameNameFromTwoRespondentsKeepsBoth(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	alice := NewResponseSheet("form-1", f.blobs)
	bob := NewResponseSheet("form-1", f.blobs)

	_, err := alice.AttachFile(ctx, "cv", formdraft.Upload{FileName: "cv.pdf", Data: []byte("alice-cv")})
	require.NoError(t, err)
	_, err = bob.AttachFile(ctx, "cv", formdraft.Upload{FileName: "cv.pdf", Data: []byte("bob-cv")})
	require.NoError(t, err)

	require.NotEqual(t, alice.Files()["cv"], bob.Files()["cv"])
	for sheet, want := range map[*ResponseSheet]string{alice: "alice-cv", bob: "bob-cv"} {
		rc, err := f.blobs.Open(ctx, sheet.Files()["cv"])
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	}
}

func TestAttachFile_FailureKeepsPriorValue(t *testing.T) {
	sheet := NewResponseSheet("form-1", failingStore{})
	sheet.SetResponse("cv", "http://old")

	_, err := sheet.AttachFile(context.Background(), "cv", formdraft.Upload{FileName: "cv.pdf", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUpload)
	assert.Equal(t, "http://old", sheet.Values()["cv"])
	assert.Empty(t, sheet.Files())
}

func TestAttachFile_CollapsesConcurrentUploadsPerField(t *testing.T) {
	disk, err := blobstore.NewDiskStore(t.TempDir(), "http://h/files")
	require.NoError(t, err)
	store := &slowStore{DiskStore: disk, started: make(chan struct{}), release: make(chan struct{})}
	sheet := NewResponseSheet("form-1", store)

	var wg sync.WaitGroup
	urls := make([]string, 2)
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		urls[0], errs[0] = sheet.AttachFile(context.Background(), "photo", formdraft.Upload{FileName: "a.png", Data: []byte("a")})
	}()
	<-store.started
	wg.Add(1)
	go func() {
		defer wg.Done()
		urls[1], errs[1] = sheet.AttachFile(context.Background(), "photo", formdraft.Upload{FileName: "a.png", Data: []byte("a")})
	}()
	// İkinci çağrının singleflight'a katılması için kısa bir süre tanı.
	time.Sleep(50 * time.Millisecond)
	close(store.release)
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, urls[0], urls[1])
	assert.Equal(t, int32(1), store.uploads.Load())
}

func TestSubmit_WithFileRecordsPath(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	d := formdraft.New(formdraft.Meta{Title: "Apply"})
	cvID, _ := d.AddField(models.FieldKindFile)
	d.SetLabel(cvID, "CV")
	form, err := f.forms.Publish(ctx, "owner-1", d)
	require.NoError(t, err)

	sheet := f.submissions.NewSheet(form)
	url, err := sheet.AttachFile(ctx, cvID, formdraft.Upload{FileName: "cv.pdf", Data: []byte("x")})
	require.NoError(t, err)

	sub, err := f.submissions.Submit(ctx, form, sheet, models.RespondentInfo{})
	require.NoError(t, err)

	got, err := f.submissions.GetResponse(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, url, got.Responses["CV"])
	assert.Equal(t, url, got.FieldValue(form.Fields[0]))
	assert.True(t, strings.HasSuffix(got.FilePaths[cvID].(string), "_cv.pdf"))
}

func TestDraftService_OwnershipAndMutate(t *testing.T) {
	s, err := NewDraftServiceWithSize(4)
	require.NoError(t, err)

	id, err := s.Start("alice", formdraft.Meta{Title: "Mine"})
	require.NoError(t, err)

	_, err = s.Get("bob", id)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	assert.ErrorIs(t, s.Mutate("bob", id, func(*formdraft.Draft) error { return nil }), ErrDraftNotFound)

	var fieldID string
	require.NoError(t, s.Mutate("alice", id, func(d *formdraft.Draft) error {
		var err error
		fieldID, err = d.AddField(models.FieldKindText)
		return err
	}))

	// Hata döndüren değişiklik uygulanmaz.
	err = s.Mutate("alice", id, func(d *formdraft.Draft) error {
		d.RemoveField(fieldID)
		_, err := d.AddField("bogus")
		return err
	})
	assert.ErrorIs(t, err, formdraft.ErrUnknownKind)

	d, err := s.Get("alice", id)
	require.NoError(t, err)
	assert.Equal(t, "Mine", d.Meta.Title)
	require.Equal(t, 1, d.Len())
	assert.True(t, d.Has(fieldID))

	s.Discard("bob", id)
	_, err = s.Get("alice", id)
	require.NoError(t, err)

	s.Discard("alice", id)
	_, err = s.Get("alice", id)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftService_ConsumeFailureKeepsDraft(t *testing.T) {
	s, err := NewDraftServiceWithSize(4)
	require.NoError(t, err)
	id, err := s.Start("alice", formdraft.Meta{Title: "Keep"})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Consume("bob", id, func(*formdraft.Draft) error { return nil }), ErrDraftNotFound)

	err = s.Consume("alice", id, func(d *formdraft.Draft) error {
		d.Meta.Title = "changed"
		return ErrPersistence
	})
	assert.ErrorIs(t, err, ErrPersistence)

	d, err := s.Get("alice", id)
	require.NoError(t, err)
	assert.Equal(t, "Keep", d.Meta.Title)

	require.NoError(t, s.Consume("alice", id, func(*formdraft.Draft) error { return nil }))
	_, err = s.Get("alice", id)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestDraftService_ConcurrentPublishCreatesOneForm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	s, err := NewDraftServiceWithSize(4)
	require.NoError(t, err)
	id, err := s.Start("owner-1", formdraft.Meta{Title: "Once"})
	require.NoError(t, err)

	const clicks = 5
	var wg sync.WaitGroup
	var published atomic.Int32
	errs := make([]error, clicks)
	for i := 0; i < clicks; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = s.Consume("owner-1", id, func(d *formdraft.Draft) error {
				if _, err := f.forms.Publish(ctx, "owner-1", d); err != nil {
					return err
				}
				published.Add(1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), published.Load())
	failed := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, ErrDraftNotFound)
			failed++
		}
	}
	assert.Equal(t, clicks-1, failed)

	forms, err := f.forms.ListForms(ctx)
	require.NoError(t, err)
	assert.Len(t, forms, 1)
}

func TestDraftService_EvictsLeastRecentlyUsed(t *testing.T) {
	s, err := NewDraftServiceWithSize(2)
	require.NoError(t, err)

	first, _ := s.Start("u", formdraft.Meta{})
	second, _ := s.Start("u", formdraft.Meta{})
	_, err = s.Get("u", first)
	require.NoError(t, err)
	_, _ = s.Start("u", formdraft.Meta{})

	assert.Equal(t, 2, s.Len())
	_, err = s.Get("u", second)
	assert.ErrorIs(t, err, ErrDraftNotFound)
	_, err = s.Get("u", first)
	assert.NoError(t, err)
}

func TestDraftService_ConcurrentMutations(t *testing.T) {
	s, err := NewDraftServiceWithSize(8)
	require.NoError(t, err)
	id, _ := s.Start("u", formdraft.Meta{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Mutate("u", id, func(d *formdraft.Draft) error {
				_, err := d.AddField(models.FieldKindText)
				return err
			})
		}()
	}
	wg.Wait()

	d, err := s.Get("u", id)
	require.NoError(t, err)
	assert.Equal(t, 20, d.Len())
}

func TestAuthService_RegisterLogin(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t)
	auth := NewAuthServiceWith(repositories.NewUserRepositoryWithDB(db), "secret", time.Hour)

	sess, err := auth.Register(ctx, "Ada", "Ada@Example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", sess.Email)
	assert.NotEmpty(t, sess.Token)

	claims, err := auth.ValidateSession(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, claims.UserID)

	_, err = auth.Register(ctx, "Ada 2", "ada@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := auth.Login(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, login.UserID)

	_, err = auth.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrAuth)
	_, err = auth.Login(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrAuth)
	_, err = auth.ValidateSession("garbage")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestAuthService_DisabledAccount(t *testing.T) {
	ctx := context.Background()
	db := databasetest.Open(t)
	auth := NewAuthServiceWith(repositories.NewUserRepositoryWithDB(db), "secret", time.Hour)

	_, err := auth.Register(ctx, "Ada", "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "ada@example.com").Update("status", false).Error)

	_, err = auth.Login(ctx, "ada@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	auth := NewAuthServiceWith(repositories.NewUserRepositoryWithDB(databasetest.Open(t)), "secret", time.Hour)
	_, err := auth.Register(context.Background(), "", "ada@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = auth.Register(context.Background(), "Ada", "not-an-email", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = auth.Register(context.Background(), "Ada", "ada@example.com", "123")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
