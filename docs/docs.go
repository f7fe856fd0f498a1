// Package docs registers the OpenAPI description served at /api/swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/postcards": {
            "get": {
                "produces": ["application/json"],
                "tags": ["postcards"],
                "summary": "List postcards",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Postcard"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["postcards"],
                "summary": "Create a postcard",
                "parameters": [
                    {"type": "string", "name": "user_name", "in": "formData", "required": true},
                    {"type": "string", "name": "location", "in": "formData", "required": true},
                    {"type": "string", "name": "country", "in": "formData", "required": true},
                    {"type": "string", "name": "caption", "in": "formData", "required": true},
                    {"type": "string", "name": "personal_message", "in": "formData"},
                    {"type": "string", "name": "date_stamp", "in": "formData"},
                    {"type": "number", "name": "lat", "in": "formData", "required": true},
                    {"type": "number", "name": "lng", "in": "formData", "required": true},
                    {"type": "file", "name": "image", "in": "formData", "required": true},
                    {"type": "file", "name": "user_avatar", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Postcard"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/postcards/{id}": {
            "delete": {
                "tags": ["postcards"],
                "summary": "Delete a postcard",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/postcards/{id}/like": {
            "put": {
                "produces": ["application/json"],
                "tags": ["postcards"],
                "summary": "Like a postcard",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LikeResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/custom-points": {
            "get": {
                "produces": ["application/json"],
                "tags": ["custom-points"],
                "summary": "List custom points",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.CustomPoint"}}}}
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["custom-points"],
                "summary": "Create a custom point",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "name": "description", "in": "formData"},
                    {"type": "number", "name": "lat", "in": "formData", "required": true},
                    {"type": "number", "name": "lng", "in": "formData", "required": true},
                    {"type": "file", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.CustomPoint"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/custom-points/{id}": {
            "put": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["custom-points"],
                "summary": "Update a custom point",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "name", "in": "formData"},
                    {"type": "string", "name": "description", "in": "formData"},
                    {"type": "number", "name": "lat", "in": "formData"},
                    {"type": "number", "name": "lng", "in": "formData"},
                    {"type": "file", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CustomPoint"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["custom-points"],
                "summary": "Delete a custom point",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/friends": {
            "get": {
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "List friends",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Friend"}}}}
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Add a friend",
                "parameters": [
                    {"type": "string", "name": "name", "in": "formData", "required": true},
                    {"type": "string", "name": "status", "in": "formData"},
                    {"type": "string", "name": "country", "in": "formData"},
                    {"type": "string", "name": "city", "in": "formData"},
                    {"type": "number", "name": "lat", "in": "formData", "required": true},
                    {"type": "number", "name": "lng", "in": "formData", "required": true},
                    {"type": "file", "name": "avatar", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Friend"}}}
            }
        },
        "/friends/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Fuzzy search friends by name, city or country",
                "parameters": [{"type": "string", "name": "q", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Friend"}}}}
            }
        },
        "/board": {
            "get": {
                "produces": ["application/json"],
                "tags": ["board"],
                "summary": "Render the postcard board for a viewport",
                "parameters": [
                    {"type": "integer", "default": 1280, "name": "width", "in": "query"},
                    {"type": "integer", "default": 800, "name": "height", "in": "query"},
                    {"type": "integer", "name": "seed", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stamps": {
            "get": {
                "produces": ["application/json"],
                "tags": ["board"],
                "summary": "Stamp themes by country",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "models.ErrorResponse": {
            "type": "object",
            "properties": {"detail": {"type": "string"}, "code": {"type": "string"}}
        },
        "models.LikeResponse": {
            "type": "object",
            "properties": {"likes": {"type": "integer"}}
        },
        "models.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "models.Postcard": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "user_name": {"type": "string"},
                "user_avatar": {"type": "string"},
                "location": {"type": "string"},
                "country": {"type": "string"},
                "image_url": {"type": "string"},
                "caption": {"type": "string"},
                "personal_message": {"type": "string"},
                "date_stamp": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "likes": {"type": "integer"},
                "comments": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.CustomPoint": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "image_url": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Friend": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "status": {"type": "string"},
                "avatar_url": {"type": "string"},
                "country": {"type": "string"},
                "city": {"type": "string"},
                "lat": {"type": "number"},
                "lng": {"type": "number"},
                "created_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "StudyGlobe API",
	Description:      "Postcards, custom points and friends for the study-abroad globe and cork board",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
