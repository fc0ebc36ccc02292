package contract

import (
	"errors"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

var (
	// ErrTypeNotRegistered is returned when a type tag or handle type is unknown.
	ErrTypeNotRegistered = errors.New("type not registered")
	// ErrAmbiguousType is returned when a bare model name matches several apps.
	ErrAmbiguousType = errors.New("ambiguous type tag")
)

// ITypeRegistry resolves type tags and object handles to descriptors.
type ITypeRegistry interface {
	ResolveType(tag string) (entity.TypeDescriptor, error)
	ResolveTypeByID(id int) (entity.TypeDescriptor, error)
	ResolveHandle(obj any) (entity.TypeDescriptor, string, error)
}
