package server

import (
	"studyglobe/internal/models"
	"studyglobe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPostcards godoc
// @Summary List postcards
// @Description All postcards, newest first
// @Tags postcards
// @Produce json
// @Success 200 {array} models.Postcard
// @Failure 500 {object} models.ErrorResponse
// @Router /postcards [get]
func (s *Server) GetPostcards(c *fiber.Ctx) error {
	postcards, err := s.postcardService.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(postcards)
}

// GetPostcard handles GET /api/postcards/:id
func (s *Server) GetPostcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	postcard, err := s.postcardService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(postcard)
}

// CreatePostcard godoc
// @Summary Create a postcard
// @Tags postcards
// @Accept multipart/form-data
// @Produce json
// @Param user_name formData string true "Author name"
// @Param location formData string true "Location"
// @Param country formData string true "Country"
// @Param caption formData string true "Caption"
// @Param personal_message formData string false "Message on the back"
// @Param date_stamp formData string false "Date stamp, e.g. JUL 10, 2025"
// @Param lat formData number true "Latitude"
// @Param lng formData number true "Longitude"
// @Param image formData file true "Photo"
// @Param user_avatar formData file false "Avatar"
// @Success 201 {object} models.Postcard
// @Failure 400 {object} models.ErrorResponse
// @Router /postcards [post]
func (s *Server) CreatePostcard(c *fiber.Ctx) error {
	form, err := s.readForm(c)
	if err != nil {
		return nil
	}

	in := service.CreatePostcardInput{
		UserName:        form.str("user_name"),
		Location:        form.str("location"),
		Country:         form.str("country"),
		Caption:         form.str("caption"),
		PersonalMessage: form.str("personal_message"),
		DateStamp:       form.str("date_stamp"),
	}
	if in.Lat, err = form.float("lat"); err != nil {
		return respondServiceError(c, err)
	}
	if in.Lng, err = form.float("lng"); err != nil {
		return respondServiceError(c, err)
	}
	if in.Image, err = form.file("image"); err != nil {
		return respondServiceError(c, err)
	}
	if in.Avatar, err = form.file("user_avatar"); err != nil {
		return respondServiceError(c, err)
	}

	postcard, err := s.postcardService.Create(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(postcard)
}

// LikePostcard godoc
// @Summary Like a postcard
// @Tags postcards
// @Produce json
// @Param id path int true "Postcard ID"
// @Success 200 {object} models.LikeResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /postcards/{id}/like [put]
func (s *Server) LikePostcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	likes, err := s.postcardService.Like(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.LikeResponse{Likes: likes})
}

// DeletePostcard godoc
// @Summary Delete a postcard
// @Tags postcards
// @Param id path int true "Postcard ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /postcards/{id} [delete]
func (s *Server) DeletePostcard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postcardService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
