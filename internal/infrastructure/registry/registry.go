package registry

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// TypeRegistry is an in-memory registry of likeable content types.
type TypeRegistry struct {
	mu      sync.RWMutex
	byTag   map[string]entity.TypeDescriptor
	byModel map[string][]entity.TypeDescriptor
	byID    map[int]entity.TypeDescriptor
	byGo    map[reflect.Type]entity.TypeDescriptor
	nextID  int
}

var _ contract.ITypeRegistry = (*TypeRegistry)(nil)

// NewTypeRegistry creates an empty TypeRegistry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byTag:   make(map[string]entity.TypeDescriptor),
		byModel: make(map[string][]entity.TypeDescriptor),
		byID:    make(map[int]entity.TypeDescriptor),
		byGo:    make(map[reflect.Type]entity.TypeDescriptor),
		nextID:  1,
	}
}

// Register adds the "app.model" type. Registering a tag twice returns the
// existing descriptor, updating its URL template when one is given.
func (r *TypeRegistry) Register(tag, urlTemplate string) (entity.TypeDescriptor, error) {
	app, model, err := splitTag(tag)
	if err != nil {
		return entity.TypeDescriptor{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(app, model, urlTemplate), nil
}

// RegisterModel registers the dynamic type of sample under tag so that
// values of that type can be passed as handles.
func (r *TypeRegistry) RegisterModel(tag, urlTemplate string, sample entity.Likeable) (entity.TypeDescriptor, error) {
	if sample == nil {
		return entity.TypeDescriptor{}, fmt.Errorf("nil sample for %q", tag)
	}
	app, model, err := splitTag(tag)
	if err != nil {
		return entity.TypeDescriptor{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	desc := r.register(app, model, urlTemplate)
	t := reflect.TypeOf(sample)
	r.byGo[t] = desc
	// Accept both T and *T as handles.
	if t.Kind() == reflect.Ptr {
		r.byGo[t.Elem()] = desc
	} else {
		r.byGo[reflect.PointerTo(t)] = desc
	}
	return desc, nil
}

// LoadTypes registers types from "app.model[=url-template]" entries.
func (r *TypeRegistry) LoadTypes(entries []string) error {
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		tag, tmpl, _ := strings.Cut(entry, "=")
		if _, err := r.Register(strings.TrimSpace(tag), strings.TrimSpace(tmpl)); err != nil {
			return err
		}
	}
	return nil
}

func (r *TypeRegistry) register(app, model, urlTemplate string) entity.TypeDescriptor {
	tag := app + "." + model
	if desc, ok := r.byTag[tag]; ok {
		if urlTemplate != "" && desc.URLTemplate != urlTemplate {
			desc.URLTemplate = urlTemplate
			r.store(desc)
		}
		return desc
	}
	desc := entity.TypeDescriptor{ID: r.nextID, App: app, Model: model, URLTemplate: urlTemplate}
	r.nextID++
	r.byModel[model] = append(r.byModel[model], desc)
	r.store(desc)
	return desc
}

func (r *TypeRegistry) store(desc entity.TypeDescriptor) {
	r.byTag[desc.Tag()] = desc
	r.byID[desc.ID] = desc
	models := r.byModel[desc.Model]
	for i := range models {
		if models[i].ID == desc.ID {
			models[i] = desc
		}
	}
	for t, d := range r.byGo {
		if d.ID == desc.ID {
			r.byGo[t] = desc
		}
	}
}

// ResolveType resolves "app.model", or a bare "model" when only one app
// registers it. Matching is case-insensitive.
func (r *TypeRegistry) ResolveType(tag string) (entity.TypeDescriptor, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if strings.Contains(tag, ".") {
		if desc, ok := r.byTag[tag]; ok {
			return desc, nil
		}
		return entity.TypeDescriptor{}, fmt.Errorf("%w: %q", contract.ErrTypeNotRegistered, tag)
	}
	switch models := r.byModel[tag]; len(models) {
	case 0:
		return entity.TypeDescriptor{}, fmt.Errorf("%w: %q", contract.ErrTypeNotRegistered, tag)
	case 1:
		return models[0], nil
	default:
		return entity.TypeDescriptor{}, fmt.Errorf("%w: %q is registered by %d apps", contract.ErrAmbiguousType, tag, len(models))
	}
}

// ResolveTypeByID returns the descriptor registered under id.
func (r *TypeRegistry) ResolveTypeByID(id int) (entity.TypeDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if desc, ok := r.byID[id]; ok {
		return desc, nil
	}
	return entity.TypeDescriptor{}, fmt.Errorf("%w: id %d", contract.ErrTypeNotRegistered, id)
}

// ResolveHandle returns the descriptor of obj's registered Go type and its
// primary key.
func (r *TypeRegistry) ResolveHandle(obj any) (entity.TypeDescriptor, string, error) {
	likeable, ok := obj.(entity.Likeable)
	if !ok {
		return entity.TypeDescriptor{}, "", fmt.Errorf("%w: %T is not likeable", contract.ErrTypeNotRegistered, obj)
	}
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Ptr && v.IsNil() {
		return entity.TypeDescriptor{}, "", fmt.Errorf("%w: nil %T handle", contract.ErrTypeNotRegistered, obj)
	}
	r.mu.RLock()
	desc, ok := r.byGo[reflect.TypeOf(obj)]
	r.mu.RUnlock()
	if !ok {
		return entity.TypeDescriptor{}, "", fmt.Errorf("%w: %T", contract.ErrTypeNotRegistered, obj)
	}
	return desc, likeable.LikeKey(), nil
}

// Types returns all registered descriptors ordered by id.
func (r *TypeRegistry) Types() []entity.TypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.TypeDescriptor, 0, len(r.byID))
	for id := 1; id < r.nextID; id++ {
		if desc, ok := r.byID[id]; ok {
			out = append(out, desc)
		}
	}
	return out
}

func splitTag(tag string) (string, string, error) {
	app, model, ok := strings.Cut(strings.ToLower(strings.TrimSpace(tag)), ".")
	if !ok || app == "" || model == "" || strings.Contains(model, ".") {
		return "", "", fmt.Errorf("type tag %q must be in the format 'app.model'", tag)
	}
	return app, model, nil
}
