package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
	"github.com/mikiasgoitom/likeledger/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

// MockLikeUsecase is a mock implementation of the ILikeUseCase interface.
// Likes are kept per (user, target, site) so toggles behave like the real
// ledger; KnownTypes restricts which type tags resolve.
type MockLikeUsecase struct {
	// Control mock behavior
	ShouldFailLike   bool
	ShouldFailUnlike bool
	KnownTypes       map[string]bool

	// Recorded input
	LastUserURL string

	mu    sync.Mutex
	likes map[entity.LikeKey]*entity.Like
	seq   int
}

var _ usecasecontract.ILikeUseCase = (*MockLikeUsecase)(nil)

func NewMockLikeUsecase(knownTypes ...string) *MockLikeUsecase {
	m := &MockLikeUsecase{
		KnownTypes: make(map[string]bool),
		likes:      make(map[entity.LikeKey]*entity.Like),
	}
	for _, t := range knownTypes {
		m.KnownTypes[t] = true
	}
	return m
}

func (m *MockLikeUsecase) ref(target any) (entity.TargetRef, error) {
	ref, ok := target.(entity.TargetRef)
	if !ok || !m.KnownTypes[ref.TypeTag] || ref.PrimaryKey == "" {
		return entity.TargetRef{}, fmt.Errorf("%w: %v", usecase.ErrResolution, target)
	}
	return ref, nil
}

func (m *MockLikeUsecase) Like(ctx context.Context, userID string, target any, siteID, userURL string) (*entity.Like, error) {
	if userID == "" {
		return nil, usecase.ErrAuthRequired
	}
	ref, err := m.ref(target)
	if err != nil {
		return nil, err
	}
	if m.ShouldFailLike {
		return nil, errors.New("like failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUserURL = userURL
	key := entity.LikeKey{UserID: userID, Target: ref, SiteID: siteID}
	if like, ok := m.likes[key]; ok {
		return like, nil
	}
	m.seq++
	like := &entity.Like{
		ID:          fmt.Sprintf("mock-like-%d", m.seq),
		TargetType:  ref.TypeTag,
		TargetKey:   ref.PrimaryKey,
		SiteID:      siteID,
		UserID:      userID,
		UserURL:     userURL,
		SubmittedAt: time.Date(2024, 1, 1, 0, 0, m.seq, 0, time.UTC),
	}
	m.likes[key] = like
	return like, nil
}

func (m *MockLikeUsecase) Unlike(ctx context.Context, userID string, target any, siteID string) (bool, error) {
	if userID == "" {
		return false, usecase.ErrAuthRequired
	}
	ref, err := m.ref(target)
	if err != nil {
		return false, err
	}
	if m.ShouldFailUnlike {
		return false, errors.New("unlike failed")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entity.LikeKey{UserID: userID, Target: ref, SiteID: siteID}
	if _, ok := m.likes[key]; !ok {
		return false, nil
	}
	delete(m.likes, key)
	return true, nil
}

func (m *MockLikeUsecase) Count(ctx context.Context, target any, siteID string) int64 {
	return int64(len(m.List(ctx, target, siteID)))
}

func (m *MockLikeUsecase) List(ctx context.Context, target any, siteID string) []*entity.Like {
	likes := []*entity.Like{}
	ref, err := m.ref(target)
	if err != nil {
		return likes
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, like := range m.likes {
		if key.Target == ref && key.SiteID == siteID {
			likes = append(likes, like)
		}
	}
	return likes
}

func (m *MockLikeUsecase) HasLiked(ctx context.Context, userID string, target any, siteID string) bool {
	ref, err := m.ref(target)
	if err != nil || userID == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.likes[entity.LikeKey{UserID: userID, Target: ref, SiteID: siteID}]
	return ok
}
