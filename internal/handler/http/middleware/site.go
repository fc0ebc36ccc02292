package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/mikiasgoitom/likeledger/internal/domain/contract"
)

// ContextSiteID is the gin context key holding the request's site partition.
const ContextSiteID = "siteID"

// SiteMiddleWare resolves the site partition from the request host.
func SiteMiddleWare(resolver contract.ISiteResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextSiteID, resolver.ResolveSite(c.Request.Host).ID)
		c.Next()
	}
}

// SiteID returns the site partition set by SiteMiddleWare.
func SiteID(c *gin.Context) string {
	return c.GetString(ContextSiteID)
}
