package server

import (
	"context"
	"strconv"

	"studyglobe/internal/board"
	"studyglobe/internal/featureflags"
	"studyglobe/internal/layout"
	"studyglobe/internal/middleware"
	"studyglobe/internal/models"
	"studyglobe/internal/service"
	"studyglobe/internal/stamp"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultBoardWidth  = 1280
	defaultBoardHeight = 800
)

// postcardSource feeds a board from the postcard service in-process.
type postcardSource struct {
	svc *service.PostcardService
}

func (p postcardSource) FetchPostcards(ctx context.Context) ([]models.Postcard, error) {
	return p.svc.List(ctx)
}

func (p postcardSource) LikePostcard(ctx context.Context, id uint) (int, error) {
	return p.svc.Like(ctx, id)
}

// BoardResponse is a rendered board plus the seed that reproduces its scatter.
type BoardResponse struct {
	board.View
	Seed *int64 `json:"seed,omitempty"`
}

// GetBoard godoc
// @Summary Render the postcard board for a viewport
// @Description Lays out every postcard for the given viewport. Passing the returned seed back reproduces the same scatter.
// @Tags board
// @Produce json
// @Param width query int false "Viewport width in px" default(1280)
// @Param height query int false "Viewport height in px" default(800)
// @Param seed query int false "Jitter seed"
// @Success 200 {object} BoardResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /board [get]
func (s *Server) GetBoard(c *fiber.Ctx) error {
	vp := layout.Viewport{
		Width:  c.QueryInt("width", defaultBoardWidth),
		Height: c.QueryInt("height", defaultBoardHeight),
	}
	if vp.Width <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("width must be a positive number"))
	}

	var (
		jitter layout.Jitter = layout.NoJitter
		seed   *int64
	)
	if raw := c.Query("seed"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("seed must be an integer"))
		}
		jitter, seed = layout.NewSeededJitter(n), &n
	} else if s.featureFlags.Enabled(featureflags.BoardJitter, c.IP(), true) {
		j := layout.RandomJitter()
		n := j.Seed()
		jitter, seed = j, &n
	}

	b := board.New(postcardSource{svc: s.postcardService}, board.NewViewport(vp),
		board.WithJitter(func() layout.Jitter { return jitter }),
		board.WithURLResolver(s.resolveURL),
	)
	// A failed load renders the board's error state with a retry hint.
	if err := b.Load(c.UserContext()); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "board load failed", "error", err)
	}
	return c.JSON(BoardResponse{View: b.View(), Seed: seed})
}

// GetStamps godoc
// @Summary Stamp themes by country
// @Tags board
// @Produce json
// @Success 200 {object} object{default=stamp.Theme,stamps=[]stamp.Theme}
// @Router /stamps [get]
func (s *Server) GetStamps(c *fiber.Ctx) error {
	catalog := stamp.Default()
	return c.JSON(fiber.Map{
		"default": catalog.Fallback(),
		"stamps":  catalog.Themes(),
	})
}

// GetFeatureFlags returns the configured flags evaluated for the caller.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags": s.featureFlags.Snapshot(c.IP()),
	})
}
