package server

import (
	"studyglobe/internal/featureflags"
	"studyglobe/internal/models"
	"studyglobe/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCustomPoints godoc
// @Summary List custom points
// @Tags custom-points
// @Produce json
// @Success 200 {array} models.CustomPoint
// @Router /custom-points [get]
func (s *Server) GetCustomPoints(c *fiber.Ctx) error {
	points, err := s.customPointService.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(points)
}

// CreateCustomPoint godoc
// @Summary Create a custom point
// @Tags custom-points
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param description formData string false "Description"
// @Param lat formData number true "Latitude"
// @Param lng formData number true "Longitude"
// @Param image formData file false "Image"
// @Success 201 {object} models.CustomPoint
// @Failure 400 {object} models.ErrorResponse
// @Router /custom-points [post]
func (s *Server) CreateCustomPoint(c *fiber.Ctx) error {
	form, err := s.readForm(c)
	if err != nil {
		return nil
	}

	in := service.CreateCustomPointInput{
		Name:        form.str("name"),
		Description: form.str("description"),
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

	point, err := s.customPointService.Create(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(point)
}

// UpdateCustomPoint godoc
// @Summary Update a custom point
// @Description Partial update; omitted fields keep their value. A new image replaces the old one.
// @Tags custom-points
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Custom point ID"
// @Success 200 {object} models.CustomPoint
// @Failure 404 {object} models.ErrorResponse
// @Router /custom-points/{id} [put]
func (s *Server) UpdateCustomPoint(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	form, err := s.readForm(c)
	if err != nil {
		return nil
	}

	in := service.UpdateCustomPointInput{
		Name:        form.optStr("name"),
		Description: form.optStr("description"),
	}
	if in.Lat, err = form.optFloat("lat"); err != nil {
		return respondServiceError(c, err)
	}
	if in.Lng, err = form.optFloat("lng"); err != nil {
		return respondServiceError(c, err)
	}
	if in.Image, err = form.file("image"); err != nil {
		return respondServiceError(c, err)
	}

	point, err := s.customPointService.Update(c.UserContext(), id, in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(point)
}

// DeleteCustomPoint godoc
// @Summary Delete a custom point
// @Tags custom-points
// @Produce json
// @Param id path int true "Custom point ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /custom-points/{id} [delete]
func (s *Server) DeleteCustomPoint(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.customPointService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(models.MessageResponse{Message: "Custom point deleted successfully"})
}

// GetFriends godoc
// @Summary List friends
// @Tags friends
// @Produce json
// @Success 200 {array} models.Friend
// @Router /friends [get]
func (s *Server) GetFriends(c *fiber.Ctx) error {
	friends, err := s.friendService.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// SearchFriends godoc
// @Summary Fuzzy search friends by name, city or country
// @Tags friends
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} models.Friend
// @Failure 400 {object} models.ErrorResponse
// @Router /friends/search [get]
func (s *Server) SearchFriends(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.FriendSearch, c.IP(), true) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			&models.AppError{Code: models.CodeNotFound, Message: "Not found"})
	}
	friends, err := s.friendService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(friends)
}

// CreateFriend godoc
// @Summary Add a friend
// @Tags friends
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Name"
// @Param status formData string false "Status line"
// @Param country formData string false "Country"
// @Param city formData string false "City"
// @Param lat formData number true "Latitude"
// @Param lng formData number true "Longitude"
// @Param avatar formData file false "Avatar"
// @Success 201 {object} models.Friend
// @Failure 400 {object} models.ErrorResponse
// @Router /friends [post]
func (s *Server) CreateFriend(c *fiber.Ctx) error {
	form, err := s.readForm(c)
	if err != nil {
		return nil
	}

	in := service.CreateFriendInput{
		Name:    form.str("name"),
		Status:  form.str("status"),
		Country: form.str("country"),
		City:    form.str("city"),
	}
	if in.Lat, err = form.float("lat"); err != nil {
		return respondServiceError(c, err)
	}
	if in.Lng, err = form.float("lng"); err != nil {
		return respondServiceError(c, err)
	}
	if in.Avatar, err = form.file("avatar"); err != nil {
		return respondServiceError(c, err)
	}

	friend, err := s.friendService.Create(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(friend)
}
