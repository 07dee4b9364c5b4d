package services

import (
	"sync"

	"formkit.link/configs"
	"formkit.link/configs/configslog"
	"formkit.link/pkg/formdraft"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
)

// draftEntry bir taslağı ve sahibini tutar; mu taslağa erişimi sıralar.
// consumed, Consume başarıyla bittikten sonra kilidi bekleyen çağrıların taslağı görmemesini sağlar.
type draftEntry struct {
	mu       sync.Mutex
	ownerID  string
	draft    *formdraft.Draft
	consumed bool
}

// IDraftService yayınlanmamış taslakların sunucu tarafındaki çalışma alanı.
type IDraftService interface {
	Start(ownerID string, meta formdraft.Meta) (string, error)
	Get(ownerID, draftID string) (*formdraft.Draft, error)
	Mutate(ownerID, draftID string, fn func(d *formdraft.Draft) error) error
	Consume(ownerID, draftID string, fn func(d *formdraft.Draft) error) error
	Discard(ownerID, draftID string)
}

// DraftService taslakları LRU önbellekte tutar; en uzun süre kullanılmayan taslak düşer.
type DraftService struct {
	cache *lru.Cache
}

// NewDraftService ayarlardaki DRAFT_CACHE_SIZE ile bir çalışma alanı oluşturur.
func NewDraftService() IDraftService {
	s, err := NewDraftServiceWithSize(configs.GetConfig().DraftCacheSize)
	if err != nil {
		configslog.Log.Fatal("Taslak önbelleği oluşturulamadı", zap.Int("size", configs.GetConfig().DraftCacheSize), zap.Error(err))
	}
	return s
}

// NewDraftServiceWithSize verilen kapasitede bir çalışma alanı oluşturur.
func NewDraftServiceWithSize(size int) (*DraftService, error) {
	cache, err := lru.NewWithEvict(size, func(key, _ interface{}) {
		configslog.SLog.Debugf("Taslak önbellekten düştü: %v", key)
	})
	if err != nil {
		return nil, err
	}
	return &DraftService{cache: cache}, nil
}

func (s *DraftService) entry(ownerID, draftID string) (*draftEntry, error) {
	v, ok := s.cache.Get(draftID)
	if !ok {
		return nil, ErrDraftNotFound
	}
	e := v.(*draftEntry)
	if ownerID == "" || e.ownerID != ownerID {
		return nil, ErrDraftNotFound
	}
	return e, nil
}

// Start yeni bir taslak açar ve ID'sini döndürür.
func (s *DraftService) Start(ownerID string, meta formdraft.Meta) (string, error) {
	if ownerID == "" {
		return "", ErrAuth
	}
	id := uuid.NewString()
	s.cache.Add(id, &draftEntry{ownerID: ownerID, draft: formdraft.New(meta)})
	return id, nil
}

// Get taslağın bağımsız bir kopyasını döndürür.
func (s *DraftService) Get(ownerID, draftID string) (*formdraft.Draft, error) {
	e, err := s.entry(ownerID, draftID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.consumed {
		return nil, ErrDraftNotFound
	}
	return e.draft.Clone(), nil
}

// Mutate fn'i taslağın kilidi altında çalıştırır. fn hata döndürürse taslak değişmeden kalır.
func (s *DraftService) Mutate(ownerID, draftID string, fn func(d *formdraft.Draft) error) error {
	e, err := s.entry(ownerID, draftID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.consumed {
		return ErrDraftNotFound
	}
	working := e.draft.Clone()
	if err := fn(working); err != nil {
		return err
	}
	e.draft = working
	return nil
}

// Consume fn'i taslağın kilidi altında çalıştırır ve fn başarılı olursa taslağı çalışma alanından çıkarır.
// Aynı taslak için eşzamanlı çağrılardan yalnızca biri başarılı olur; diğerleri ErrDraftNotFound alır.
// fn hata döndürürse taslak olduğu gibi kalır.
func (s *DraftService) Consume(ownerID, draftID string, fn func(d *formdraft.Draft) error) error {
	e, err := s.entry(ownerID, draftID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.consumed {
		return ErrDraftNotFound
	}
	if err := fn(e.draft.Clone()); err != nil {
		return err
	}
	e.consumed = true
	s.cache.Remove(draftID)
	return nil
}

// Discard taslağı siler. Başka kullanıcının taslağına dokunmaz.
func (s *DraftService) Discard(ownerID, draftID string) {
	if _, err := s.entry(ownerID, draftID); err != nil {
		return
	}
	s.cache.Remove(draftID)
}

// Len çalışma alanındaki taslak sayısı.
func (s *DraftService) Len() int {
	return s.cache.Len()
}

var _ IDraftService = (*DraftService)(nil)
