package mocks

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
	"github.com/mikiasgoitom/likeledger/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

// MockDisplayUsecase is a mock implementation of the IDisplayUseCase interface.
type MockDisplayUsecase struct {
	Likes *MockLikeUsecase
	// URLs maps "typeID/pk" to a content object URL.
	URLs map[string]string
	// Projected records every projection kind requested.
	Projected []usecasecontract.ProjectionKind
	// ProjectErr, when set, fails every projection.
	ProjectErr error
}

var _ usecasecontract.IDisplayUseCase = (*MockDisplayUsecase)(nil)

func NewMockDisplayUsecase(likes *MockLikeUsecase) *MockDisplayUsecase {
	return &MockDisplayUsecase{Likes: likes, URLs: make(map[string]string)}
}

func (m *MockDisplayUsecase) Project(ctx context.Context, kind usecasecontract.ProjectionKind, userID string, target any, siteID string) (usecasecontract.Projection, error) {
	m.Projected = append(m.Projected, kind)
	p := usecasecontract.Projection{Kind: kind}
	if m.ProjectErr != nil {
		return p, m.ProjectErr
	}
	switch kind {
	case usecasecontract.ProjectionCount:
		p.Count = m.Likes.Count(ctx, target, siteID)
	case usecasecontract.ProjectionList:
		p.Likes = m.Likes.List(ctx, target, siteID)
	case usecasecontract.ProjectionLiked:
		p.Liked = m.Likes.HasLiked(ctx, userID, target, siteID)
	default:
		link, err := m.Link(kind, target)
		if err != nil {
			return p, err
		}
		p.Link = link
	}
	return p, nil
}

func (m *MockDisplayUsecase) Link(kind usecasecontract.ProjectionKind, target any) (string, error) {
	if !kind.IsLink() {
		return "", usecase.ErrUnknownProjection
	}
	ref, err := m.Likes.ref(target)
	if err != nil {
		return "", err
	}
	action := "like"
	if kind == usecasecontract.ProjectionUnlikeLink {
		action = "unlike"
	}
	return fmt.Sprintf("/api/v1/likes/%s/%s/%s", ref.TypeTag, ref.PrimaryKey, action), nil
}

func (m *MockDisplayUsecase) RedirectPath(like *entity.Like) string {
	return fmt.Sprintf("/api/v1/likes/redirect/1/%s", like.TargetKey)
}

func (m *MockDisplayUsecase) ContentObjectURL(typeID int, pk string) string {
	if u, ok := m.URLs[fmt.Sprintf("%d/%s", typeID, pk)]; ok {
		return u
	}
	return "/"
}
