package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

// ErrUnknownProjection is returned for a projection kind the display layer
// does not know.
var ErrUnknownProjection = errors.New("unknown projection kind")

// DisplayUsecase computes the values that templates and client components
// show next to a likeable object.
type DisplayUsecase struct {
	likes    usecasecontract.ILikeUseCase
	resolver *TargetResolver
	registry contract.ITypeRegistry
	basePath string
}

var _ usecasecontract.IDisplayUseCase = (*DisplayUsecase)(nil)

// NewDisplayUsecase creates a DisplayUsecase. basePath is the API prefix the
// like routes are mounted under, e.g. "/api/v1".
func NewDisplayUsecase(likes usecasecontract.ILikeUseCase, resolver *TargetResolver, registry contract.ITypeRegistry, basePath string) *DisplayUsecase {
	return &DisplayUsecase{
		likes:    likes,
		resolver: resolver,
		registry: registry,
		basePath: strings.TrimRight(basePath, "/"),
	}
}

// Project computes one projection of target. Read projections never fail;
// link projections fail when the target cannot be resolved.
func (d *DisplayUsecase) Project(ctx context.Context, kind usecasecontract.ProjectionKind, userID string, target any, siteID string) (usecasecontract.Projection, error) {
	p := usecasecontract.Projection{Kind: kind}
	switch kind {
	case usecasecontract.ProjectionCount:
		p.Count = d.likes.Count(ctx, target, siteID)
	case usecasecontract.ProjectionList:
		p.Likes = d.likes.List(ctx, target, siteID)
	case usecasecontract.ProjectionLiked:
		p.Liked = d.likes.HasLiked(ctx, userID, target, siteID)
	case usecasecontract.ProjectionLikeLink, usecasecontract.ProjectionUnlikeLink:
		link, err := d.Link(kind, target)
		if err != nil {
			return p, err
		}
		p.Link = link
	default:
		return p, fmt.Errorf("%w: %q", ErrUnknownProjection, kind)
	}
	return p, nil
}

// Link returns the URL that likes or unlikes target.
func (d *DisplayUsecase) Link(kind usecasecontract.ProjectionKind, target any) (string, error) {
	var action string
	switch kind {
	case usecasecontract.ProjectionLikeLink:
		action = "like"
	case usecasecontract.ProjectionUnlikeLink:
		action = "unlike"
	default:
		return "", fmt.Errorf("%w: %q is not a link", ErrUnknownProjection, kind)
	}
	ref, _, err := d.resolver.Resolve(target)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/likes/%s/%s/%s", d.basePath, ref.TypeTag, url.PathEscape(ref.PrimaryKey), action), nil
}

// RedirectPath returns the path that redirects to the object liked by like,
// or "/" when its type is no longer registered.
func (d *DisplayUsecase) RedirectPath(like *entity.Like) string {
	desc, err := d.registry.ResolveType(like.TargetType)
	if err != nil {
		return "/"
	}
	return fmt.Sprintf("%s/likes/redirect/%d/%s", d.basePath, desc.ID, url.PathEscape(like.TargetKey))
}

// ContentObjectURL returns the URL of the object with primaryKey in the type
// registered under typeID, or "/" when there is no such type or URL template.
func (d *DisplayUsecase) ContentObjectURL(typeID int, primaryKey string) string {
	desc, err := d.registry.ResolveTypeByID(typeID)
	if err != nil || desc.URLTemplate == "" || primaryKey == "" {
		return "/"
	}
	return strings.ReplaceAll(desc.URLTemplate, "{pk}", url.PathEscape(primaryKey))
}

// ParseTypeID parses the numeric type id used in redirect paths.
func ParseTypeID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid type id %q", ErrResolution, raw)
	}
	return id, nil
}
