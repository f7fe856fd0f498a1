package gateway

import (
	"context"
	"fmt"
	"net/http"

	"studyglobe/internal/models"
	"studyglobe/internal/stamp"
	"studyglobe/internal/validation"
)

// PostcardForm is the create-postcard form.
type PostcardForm struct {
	UserName        string  `form:"user_name" validate:"notblank,max=100"`
	Location        string  `form:"location" validate:"notblank,max=200"`
	Country         string  `form:"country" validate:"notblank,country"`
	Caption         string  `form:"caption" validate:"notblank"`
	PersonalMessage string  `form:"personal_message"`
	DateStamp       string  `form:"date_stamp"`
	Lat             float64 `form:"lat" validate:"latitude"`
	Lng             float64 `form:"lng" validate:"longitude"`
	Image           *File   `form:"image" validate:"required"`
	Avatar          *File   `form:"user_avatar"`
}

// FetchPostcards lists postcards, newest first.
func (c *Client) FetchPostcards(ctx context.Context) ([]models.Postcard, error) {
	postcards := []models.Postcard{}
	err := c.do(ctx, request{op: "fetch_postcards", method: http.MethodGet, path: "/api/postcards"}, &postcards)
	if err != nil {
		return nil, err
	}
	return postcards, nil
}

// CreatePostcard validates form locally, then uploads it. An empty date
// stamp is filled with today's date.
func (c *Client) CreatePostcard(ctx context.Context, form PostcardForm) (*models.Postcard, error) {
	if err := validation.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if err := checkFileSize("image", form.Image, c.maxImageBytes); err != nil {
		return nil, err
	}
	if err := checkFileSize("user_avatar", form.Avatar, c.maxImageBytes); err != nil {
		return nil, err
	}
	if form.DateStamp == "" {
		form.DateStamp = stamp.DateStamp(c.now())
	}

	fw := newFormWriter()
	fw.field("user_name", form.UserName)
	fw.field("location", form.Location)
	fw.field("country", form.Country)
	fw.field("caption", form.Caption)
	fw.field("personal_message", form.PersonalMessage)
	fw.field("date_stamp", form.DateStamp)
	fw.float("lat", form.Lat)
	fw.float("lng", form.Lng)
	fw.file("image", form.Image)
	fw.file("user_avatar", form.Avatar)
	body, contentType, err := fw.finish()
	if err != nil {
		return nil, fmt.Errorf("create_postcard: encode form: %w", err)
	}

	var postcard models.Postcard
	err = c.do(ctx, request{
		op:          "create_postcard",
		method:      http.MethodPost,
		path:        "/api/postcards",
		body:        body,
		contentType: contentType,
	}, &postcard)
	if err != nil {
		return nil, err
	}
	return &postcard, nil
}

// LikePostcard records a like and returns the new like count.
func (c *Client) LikePostcard(ctx context.Context, id uint) (int, error) {
	var resp models.LikeResponse
	err := c.do(ctx, request{
		op:     "like_postcard",
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/postcards/%d/like", id),
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.Likes, nil
}

func (c *Client) DeletePostcard(ctx context.Context, id uint) error {
	return c.do(ctx, request{
		op:     "delete_postcard",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/postcards/%d", id),
	}, nil)
}
