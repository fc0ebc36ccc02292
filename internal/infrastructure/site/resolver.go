package site

import (
	"net"
	"strings"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
)

// HostResolver maps request hosts to configured sites and falls back to the
// default site for unknown hosts.
type HostResolver struct {
	byDomain    map[string]entity.Site
	defaultSite entity.Site
}

var _ contract.ISiteResolver = (*HostResolver)(nil)

// NewHostResolver creates a resolver from id→domain pairs.
func NewHostResolver(defaultSiteID string, sites map[string]string) *HostResolver {
	r := &HostResolver{
		byDomain:    make(map[string]entity.Site, len(sites)),
		defaultSite: entity.Site{ID: defaultSiteID},
	}
	for id, domain := range sites {
		domain = normalizeHost(domain)
		r.byDomain[domain] = entity.Site{ID: id, Domain: domain}
		if id == defaultSiteID {
			r.defaultSite.Domain = domain
		}
	}
	return r
}

// ResolveSite returns the site serving host.
func (r *HostResolver) ResolveSite(host string) entity.Site {
	if s, ok := r.byDomain[normalizeHost(host)]; ok {
		return s
	}
	return r.defaultSite
}

func normalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
