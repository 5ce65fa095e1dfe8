// Package docs registers the OpenAPI description served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a username/email pair and send a confirmation code",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/auth/token": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange username and confirmation code for an access token",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/users": {
            "get": {
                "tags": ["users"],
                "summary": "List accounts (admin only)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            },
            "post": {
                "tags": ["users"],
                "summary": "Create an account (admin only)",
                "responses": {"201": {"description": "Created"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/users/me": {
            "get": {
                "tags": ["users"],
                "summary": "Get the authenticated account",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "patch": {
                "tags": ["users"],
                "summary": "Update the authenticated account (role changes rejected)",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/v1/users/{username}": {
            "get": {"tags": ["users"], "summary": "Get an account", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["users"], "summary": "Update an account (admin only)", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["users"], "summary": "Delete an account (admin only)", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/categories": {
            "get": {"tags": ["catalog"], "summary": "List categories", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["catalog"], "summary": "Create a category (admin only)", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/categories/{slug}": {
            "delete": {"tags": ["catalog"], "summary": "Delete a category (admin only)", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/genres": {
            "get": {"tags": ["catalog"], "summary": "List genres", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["catalog"], "summary": "Create a genre (admin only)", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/genres/{slug}": {
            "delete": {"tags": ["catalog"], "summary": "Delete a genre (admin only)", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/titles": {
            "get": {"tags": ["catalog"], "summary": "List titles with derived ratings", "parameters": [{"name": "category", "in": "query", "type": "string"}, {"name": "genre", "in": "query", "type": "string"}, {"name": "name", "in": "query", "type": "string"}, {"name": "year", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["catalog"], "summary": "Create a title (admin only)", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/titles/{title_id}": {
            "get": {"tags": ["catalog"], "summary": "Get a title", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["catalog"], "summary": "Update a title (admin only)", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["catalog"], "summary": "Delete a title (admin only)", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/titles/{title_id}/reviews": {
            "get": {"tags": ["reviews"], "summary": "List reviews for a title", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["reviews"],
                "summary": "Create a review (one per author per title)",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/v1/titles/{title_id}/reviews/{review_id}": {
            "get": {"tags": ["reviews"], "summary": "Get a review", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["reviews"], "summary": "Update a review (author or moderator)", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["reviews"], "summary": "Delete a review (author or moderator)", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/v1/titles/{title_id}/reviews/{review_id}/comments": {
            "get": {"tags": ["comments"], "summary": "List comments on a review", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["comments"], "summary": "Create a comment", "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}": {
            "get": {"tags": ["comments"], "summary": "Get a comment", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["comments"], "summary": "Update a comment (author or moderator)", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["comments"], "summary": "Delete a comment (author or moderator)", "responses": {"204": {"description": "No Content"}}}
        },
        "/api/authz/v1/check": {
            "post": {
                "tags": ["authz"],
                "summary": "Evaluate an access decision for a requester/action/resource triple",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "RateHub API",
	Description:      "Role-based content review platform: signup, accounts, catalog, reviews and access checks.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
