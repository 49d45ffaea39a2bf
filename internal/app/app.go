package app

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/akurlov/shortly/internal/config"
	"github.com/akurlov/shortly/internal/logic"
	"github.com/akurlov/shortly/internal/models"
	"github.com/akurlov/shortly/internal/resolver"
)

const ErrorJoinURL = "URL cannot be joined: %v"

type App struct {
	config   *config.ServerConfig
	core     *logic.CoreLogic
	resolver *resolver.Resolver
	logger   *zap.SugaredLogger
}

func NewApp(
	config *config.ServerConfig,
	core *logic.CoreLogic,
	res *resolver.Resolver,
	logger *zap.SugaredLogger,
) *App {
	return &App{
		config:   config,
		core:     core,
		resolver: res,
		logger:   logger,
	}
}

func (a *App) ShortenURL(c *gin.Context) {
	req := models.ShortenReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := a.core.Create(c.Request.Context(), req.URL, req.CustomShortcode, req.ValidityMinutes)
	if err != nil {
		switch {
		case errors.Is(err, logic.ErrInvalidURL), errors.Is(err, logic.ErrInvalidValidity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, logic.ErrShortcodeTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	shortURL, err := url.JoinPath(a.config.RedirectBaseURL, record.Shortcode)
	if err != nil {
		a.logger.Errorf(ErrorJoinURL, err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, models.ShortenRes{
		ShortURL:        shortURL,
		Shortcode:       record.Shortcode,
		OriginalURL:     record.OriginalURL,
		CreatedAt:       record.CreatedAt,
		ExpiresAt:       record.ExpiresAt,
		ValidityMinutes: record.ValidityMinutes,
	})
}

func (a *App) RedirectToOriginal(c *gin.Context) {
	res := a.resolver.Resolve(
		c.Request.Context(),
		c.Param("code"),
		c.Request.Referer(),
		c.Request.Header.Get("Accept-Language"),
	)

	switch res.State {
	case resolver.StateRedirecting:
		c.Header("Location", res.OriginalURL)
		c.Status(http.StatusTemporaryRedirect)
	case resolver.StateExpired:
		c.JSON(http.StatusGone, gin.H{"error": res.Reason})
	default:
		if res.Reason == resolver.ReasonInvalid {
			c.JSON(http.StatusBadRequest, gin.H{"error": res.Reason})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": res.Reason})
	}
}

// GetRecords lists the whole collection. Expired records are swept
// before the read, so the listing only ever shows active links.
func (a *App) GetRecords(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := a.core.CleanupExpired(ctx); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	records, err := a.core.ListAll(ctx)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	if len(records) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, records)
}

func (a *App) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := a.core.CleanupExpired(ctx); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	stats, err := a.core.Stats(ctx)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (a *App) DeleteExpired(c *gin.Context) {
	removed, err := a.core.CleanupExpired(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, models.CleanupRes{Removed: removed})
}

func (a *App) Ping(c *gin.Context) {
	if err := a.core.Ping(c.Request.Context()); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
