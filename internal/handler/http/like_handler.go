package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mikiasgoitom/likeledger/internal/domain/entity"
	"github.com/mikiasgoitom/likeledger/internal/handler/http/dto"
	"github.com/mikiasgoitom/likeledger/internal/handler/http/middleware"
	"github.com/mikiasgoitom/likeledger/internal/usecase"
	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

// LikeHandlerInterface lists the like routes.
type LikeHandlerInterface interface {
	LikeTargetHandler(c *gin.Context)
	UnlikeTargetHandler(c *gin.Context)
	CountHandler(c *gin.Context)
	ListHandler(c *gin.Context)
	LikedHandler(c *gin.Context)
	LinksHandler(c *gin.Context)
	RedirectHandler(c *gin.Context)
}

type LikeHandler struct {
	likes   usecasecontract.ILikeUseCase
	display usecasecontract.IDisplayUseCase
}

var _ LikeHandlerInterface = (*LikeHandler)(nil)

func NewLikeHandler(likes usecasecontract.ILikeUseCase, display usecasecontract.IDisplayUseCase) *LikeHandler {
	return &LikeHandler{likes: likes, display: display}
}

// bindTarget binds the target URI params. A malformed target is treated like
// one that does not resolve.
func bindTarget(c *gin.Context) (entity.TargetRef, bool) {
	var req dto.TargetURIRequest
	if err := c.ShouldBindUri(&req); err != nil {
		return entity.TargetRef{}, false
	}
	return req.Ref(), true
}

// bindAction binds next and user_url from the query string or form body.
// next falls back to the referer.
func bindAction(c *gin.Context) (dto.LikeActionRequest, error) {
	var req dto.LikeActionRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		return req, err
	}
	if req.Next == "" {
		req.Next = c.GetHeader("Referer")
	}
	return req, nil
}

func (h *LikeHandler) LikeTargetHandler(c *gin.Context) {
	ref, ok := bindTarget(c)
	if !ok {
		ErrorHandler(c, http.StatusNotFound, "target not found")
		return
	}
	req, err := bindAction(c)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	like, err := h.likes.Like(c.Request.Context(), middleware.UserID(c), ref, middleware.SiteID(c), req.UserURL)
	if err != nil {
		ErrorHandler(c, statusFor(err), err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.LikeActionResponse{
		Success: true,
		Like:    dto.ToLikeResponse(like, h.display.RedirectPath(like)),
		Next:    req.Next,
	})
}

func (h *LikeHandler) UnlikeTargetHandler(c *gin.Context) {
	ref, ok := bindTarget(c)
	if !ok {
		ErrorHandler(c, http.StatusNotFound, "target not found")
		return
	}
	req, err := bindAction(c)
	if err != nil {
		ErrorHandler(c, http.StatusBadRequest, err.Error())
		return
	}
	removed, err := h.likes.Unlike(c.Request.Context(), middleware.UserID(c), ref, middleware.SiteID(c))
	if err != nil {
		ErrorHandler(c, statusFor(err), err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.UnlikeActionResponse{Success: true, Removed: removed, Next: req.Next})
}

// project computes a read projection for the bound target. ok is false when
// the response has already been written.
func (h *LikeHandler) project(c *gin.Context, kind usecasecontract.ProjectionKind, ref entity.TargetRef) (usecasecontract.Projection, bool) {
	p, err := h.display.Project(c.Request.Context(), kind, middleware.UserID(c), ref, middleware.SiteID(c))
	if err != nil {
		ErrorHandler(c, statusFor(err), err.Error())
		return p, false
	}
	return p, true
}

func (h *LikeHandler) CountHandler(c *gin.Context) {
	ref, ok := bindTarget(c)
	if !ok {
		SuccessHandler(c, http.StatusOK, dto.CountResponse{})
		return
	}
	p, ok := h.project(c, usecasecontract.ProjectionCount, ref)
	if !ok {
		return
	}
	SuccessHandler(c, http.StatusOK, dto.CountResponse{Count: p.Count})
}

func (h *LikeHandler) ListHandler(c *gin.Context) {
	resp := dto.ListResponse{Likes: []dto.LikeResponse{}}
	ref, ok := bindTarget(c)
	if !ok {
		SuccessHandler(c, http.StatusOK, resp)
		return
	}
	p, ok := h.project(c, usecasecontract.ProjectionList, ref)
	if !ok {
		return
	}
	for _, like := range p.Likes {
		resp.Likes = append(resp.Likes, dto.ToLikeResponse(like, h.display.RedirectPath(like)))
	}
	SuccessHandler(c, http.StatusOK, resp)
}

func (h *LikeHandler) LikedHandler(c *gin.Context) {
	ref, ok := bindTarget(c)
	if !ok {
		SuccessHandler(c, http.StatusOK, dto.LikedResponse{})
		return
	}
	p, ok := h.project(c, usecasecontract.ProjectionLiked, ref)
	if !ok {
		return
	}
	SuccessHandler(c, http.StatusOK, dto.LikedResponse{Liked: p.Liked})
}

func (h *LikeHandler) LinksHandler(c *gin.Context) {
	ref, ok := bindTarget(c)
	if !ok {
		ErrorHandler(c, http.StatusNotFound, "target not found")
		return
	}
	likeLink, err := h.display.Link(usecasecontract.ProjectionLikeLink, ref)
	if err != nil {
		ErrorHandler(c, statusFor(err), err.Error())
		return
	}
	unlikeLink, err := h.display.Link(usecasecontract.ProjectionUnlikeLink, ref)
	if err != nil {
		ErrorHandler(c, statusFor(err), err.Error())
		return
	}
	SuccessHandler(c, http.StatusOK, dto.LinksResponse{LikeLink: likeLink, UnlikeLink: unlikeLink})
}

// RedirectHandler sends the client to the liked object.
func (h *LikeHandler) RedirectHandler(c *gin.Context) {
	typeID, err := usecase.ParseTypeID(c.Param("typeID"))
	if err != nil {
		ErrorHandler(c, statusFor(err), err.Error())
		return
	}
	c.Redirect(http.StatusFound, h.display.ContentObjectURL(typeID, c.Param("pk")))
}
