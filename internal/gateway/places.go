package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"studyglobe/internal/models"
	"studyglobe/internal/validation"
)

// CustomPointForm creates a custom point.
type CustomPointForm struct {
	Name        string  `form:"name" validate:"notblank,max=100"`
	Description string  `form:"description"`
	Lat         float64 `form:"lat" validate:"latitude"`
	Lng         float64 `form:"lng" validate:"longitude"`
	Image       *File   `form:"image"`
}

// CustomPointPatch updates the non-nil fields of a custom point.
type CustomPointPatch struct {
	Name        *string  `form:"name" validate:"omitempty,notblank,max=100"`
	Description *string  `form:"description"`
	Lat         *float64 `form:"lat" validate:"omitempty,latitude"`
	Lng         *float64 `form:"lng" validate:"omitempty,longitude"`
	Image       *File    `form:"image"`
}

// FriendForm adds a friend.
type FriendForm struct {
	Name    string  `form:"name" validate:"notblank,max=100"`
	Status  string  `form:"status" validate:"max=200"`
	Country string  `form:"country" validate:"max=100"`
	City    string  `form:"city" validate:"max=100"`
	Lat     float64 `form:"lat" validate:"latitude"`
	Lng     float64 `form:"lng" validate:"longitude"`
	Avatar  *File   `form:"avatar"`
}

func (c *Client) FetchCustomPoints(ctx context.Context) ([]models.CustomPoint, error) {
	points := []models.CustomPoint{}
	if err := c.do(ctx, request{op: "fetch_custom_points", method: http.MethodGet, path: "/api/custom-points"}, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *Client) CreateCustomPoint(ctx context.Context, form CustomPointForm) (*models.CustomPoint, error) {
	if err := validation.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if err := checkFileSize("image", form.Image, c.maxImageBytes); err != nil {
		return nil, err
	}

	fw := newFormWriter()
	fw.field("name", form.Name)
	if form.Description != "" {
		fw.field("description", form.Description)
	}
	fw.float("lat", form.Lat)
	fw.float("lng", form.Lng)
	fw.file("image", form.Image)
	return c.sendCustomPoint(ctx, "create_custom_point", http.MethodPost, "/api/custom-points", fw)
}

func (c *Client) UpdateCustomPoint(ctx context.Context, id uint, patch CustomPointPatch) (*models.CustomPoint, error) {
	if err := validation.ValidateStruct(&patch); err != nil {
		return nil, err
	}
	if err := checkFileSize("image", patch.Image, c.maxImageBytes); err != nil {
		return nil, err
	}

	fw := newFormWriter()
	fw.optional("name", patch.Name)
	fw.optional("description", patch.Description)
	if patch.Lat != nil {
		fw.float("lat", *patch.Lat)
	}
	if patch.Lng != nil {
		fw.float("lng", *patch.Lng)
	}
	fw.file("image", patch.Image)
	return c.sendCustomPoint(ctx, "update_custom_point", http.MethodPut, fmt.Sprintf("/api/custom-points/%d", id), fw)
}

func (c *Client) sendCustomPoint(ctx context.Context, op, method, path string, fw *formWriter) (*models.CustomPoint, error) {
	body, contentType, err := fw.finish()
	if err != nil {
		return nil, fmt.Errorf("%s: encode form: %w", op, err)
	}
	var point models.CustomPoint
	if err := c.do(ctx, request{op: op, method: method, path: path, body: body, contentType: contentType}, &point); err != nil {
		return nil, err
	}
	return &point, nil
}

func (c *Client) DeleteCustomPoint(ctx context.Context, id uint) error {
	return c.do(ctx, request{
		op:     "delete_custom_point",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/custom-points/%d", id),
	}, nil)
}

func (c *Client) FetchFriends(ctx context.Context) ([]models.Friend, error) {
	friends := []models.Friend{}
	if err := c.do(ctx, request{op: "fetch_friends", method: http.MethodGet, path: "/api/friends"}, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// SearchFriends runs the server-side fuzzy search.
func (c *Client) SearchFriends(ctx context.Context, query string) ([]models.Friend, error) {
	friends := []models.Friend{}
	path := "/api/friends/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, request{op: "search_friends", method: http.MethodGet, path: path}, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

func (c *Client) CreateFriend(ctx context.Context, form FriendForm) (*models.Friend, error) {
	if err := validation.ValidateStruct(&form); err != nil {
		return nil, err
	}
	if err := checkFileSize("avatar", form.Avatar, c.maxImageBytes); err != nil {
		return nil, err
	}

	fw := newFormWriter()
	fw.field("name", form.Name)
	fw.field("status", form.Status)
	fw.field("country", form.Country)
	fw.field("city", form.City)
	fw.float("lat", form.Lat)
	fw.float("lng", form.Lng)
	fw.file("avatar", form.Avatar)
	body, contentType, err := fw.finish()
	if err != nil {
		return nil, fmt.Errorf("create_friend: encode form: %w", err)
	}

	var friend models.Friend
	err = c.do(ctx, request{
		op:          "create_friend",
		method:      http.MethodPost,
		path:        "/api/friends",
		body:        body,
		contentType: contentType,
	}, &friend)
	if err != nil {
		return nil, err
	}
	return &friend, nil
}
