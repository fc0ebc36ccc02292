package entity

import "fmt"

// TargetRef is the generic reference to a liked object: a registered type tag
// plus the object's primary key within that type.
type TargetRef struct {
	TypeTag    string `json:"type"`
	PrimaryKey string `json:"pk"`
}

func (t TargetRef) String() string {
	return fmt.Sprintf("%s:%s", t.TypeTag, t.PrimaryKey)
}

// TypeDescriptor describes a content type that can be liked.
type TypeDescriptor struct {
	ID          int    `json:"id"`
	App         string `json:"app"`
	Model       string `json:"model"`
	URLTemplate string `json:"url_template,omitempty"`
}

// Tag returns the canonical "app.model" tag.
func (d TypeDescriptor) Tag() string {
	return d.App + "." + d.Model
}

// Likeable is implemented by domain objects that can be passed as handles to
// the like service instead of an explicit (type tag, key) pair.
type Likeable interface {
	LikeKey() string
}
