package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// ErrResolution is returned when a target cannot be resolved to a registered
// type and a primary key.
var ErrResolution = errors.New("target could not be resolved")

// TargetResolver turns caller supplied targets into canonical references.
// A target is either an entity.TargetRef or an object handle known to the
// type registry.
type TargetResolver struct {
	registry contract.ITypeRegistry
}

// NewTargetResolver creates a TargetResolver backed by registry.
func NewTargetResolver(registry contract.ITypeRegistry) *TargetResolver {
	return &TargetResolver{registry: registry}
}

// Resolve returns the canonical reference and the descriptor of its type.
func (r *TargetResolver) Resolve(target any) (entity.TargetRef, entity.TypeDescriptor, error) {
	switch t := target.(type) {
	case nil:
		return entity.TargetRef{}, entity.TypeDescriptor{}, fmt.Errorf("%w: no target given", ErrResolution)
	case *entity.TargetRef:
		if t == nil {
			return entity.TargetRef{}, entity.TypeDescriptor{}, fmt.Errorf("%w: no target given", ErrResolution)
		}
		return r.resolveRef(*t)
	case entity.TargetRef:
		return r.resolveRef(t)
	default:
		desc, pk, err := r.registry.ResolveHandle(target)
		if err != nil {
			return entity.TargetRef{}, entity.TypeDescriptor{}, fmt.Errorf("%w: %w", ErrResolution, err)
		}
		if strings.TrimSpace(pk) == "" {
			return entity.TargetRef{}, entity.TypeDescriptor{}, fmt.Errorf("%w: handle of type %s has no primary key", ErrResolution, desc.Tag())
		}
		return entity.TargetRef{TypeTag: desc.Tag(), PrimaryKey: pk}, desc, nil
	}
}

func (r *TargetResolver) resolveRef(ref entity.TargetRef) (entity.TargetRef, entity.TypeDescriptor, error) {
	if strings.TrimSpace(ref.PrimaryKey) == "" {
		return entity.TargetRef{}, entity.TypeDescriptor{}, fmt.Errorf("%w: empty primary key", ErrResolution)
	}
	desc, err := r.registry.ResolveType(ref.TypeTag)
	if err != nil {
		return entity.TargetRef{}, entity.TypeDescriptor{}, fmt.Errorf("%w: %w", ErrResolution, err)
	}
	// Store under the canonical tag so "book" and "library.book" share likes.
	return entity.TargetRef{TypeTag: desc.Tag(), PrimaryKey: ref.PrimaryKey}, desc, nil
}
