package contract

import "github.com/mikiasgoitom/likeledger/internal/domain/entity"

// ISiteResolver maps a request host to its site partition.
type ISiteResolver interface {
	ResolveSite(host string) entity.Site
}
