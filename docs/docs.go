// Package docs registers the OpenAPI document served under /swagger/.
// Keep it in step with the godoc annotations on the controllers.
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
        "/agenda": {
            "get": {
                "description": "Returns sessions for the caller's remembered day and tier, ordered by start time, with the day list and data freshness. The day and tier query parameters override the remembered selection for this request only.",
                "produces": ["application/json"],
                "tags": ["agenda"],
                "summary": "Get the filtered agenda",
                "parameters": [
                    {"type": "string", "description": "Client whose remembered selection is used", "name": "X-Client-ID", "in": "header"},
                    {"type": "string", "description": "Day (YYYY-MM-DD); empty for all days", "name": "day", "in": "query"},
                    {"type": "string", "description": "Access tier, or All", "name": "tier", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.AgendaViewSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/agenda/days": {
            "get": {
                "description": "Returns the Day Index and the day selected when nothing is remembered.",
                "produces": ["application/json"],
                "tags": ["agenda"],
                "summary": "List agenda days",
                "responses": {
                    "200": {"description": "data: controllers.DaysResponse", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/agenda/freshness": {
            "get": {
                "description": "Returns when the agenda data was last refreshed, in the event timezone, or null when unknown.",
                "produces": ["application/json"],
                "tags": ["agenda"],
                "summary": "Get data freshness",
                "responses": {
                    "200": {"description": "data: controllers.FreshnessResponse", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/agenda/reload": {
            "post": {
                "description": "Discards the loaded agenda and fetches the feed again.",
                "produces": ["application/json"],
                "tags": ["agenda"],
                "summary": "Reload the agenda feed",
                "responses": {
                    "200": {"description": "data: controllers.ReloadResponse", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "502": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/selection": {
            "get": {
                "description": "Returns the caller's day and tier. With no remembered day, the default day is returned.",
                "produces": ["application/json"],
                "tags": ["selection"],
                "summary": "Get the remembered selection",
                "parameters": [
                    {"type": "string", "description": "Client whose remembered selection is used", "name": "X-Client-ID", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.SelectionSuccessResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/selection/day": {
            "put": {
                "description": "Persists the caller's day choice.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["selection"],
                "summary": "Change the selected day",
                "parameters": [
                    {"type": "string", "description": "Client whose remembered selection is updated", "name": "X-Client-ID", "in": "header"},
                    {"description": "New day", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ChangeDayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.SelectionSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        },
        "/selection/tier": {
            "put": {
                "description": "Persists the caller's tier choice. Unknown tiers are accepted and simply match nothing.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["selection"],
                "summary": "Change the selected access tier",
                "parameters": [
                    {"type": "string", "description": "Client whose remembered selection is updated", "name": "X-Client-ID", "in": "header"},
                    {"description": "New tier", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/controllers.ChangeTierRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/controllers.SelectionSuccessResponse"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "500": {"description": "error.code: internal_error", "schema": {"$ref": "#/definitions/helpers.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controllers.AgendaViewSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.AgendaView"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.ChangeDayRequest": {
            "type": "object",
            "properties": {"day": {"type": "string"}}
        },
        "controllers.ChangeTierRequest": {
            "type": "object",
            "properties": {"tier": {"type": "string"}}
        },
        "controllers.SelectionSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/domain.FilterSelection"},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "domain.AgendaView": {
            "type": "object",
            "properties": {
                "days": {"type": "array", "items": {"type": "string"}},
                "freshness": {"$ref": "#/definitions/domain.Freshness"},
                "selected_day": {"type": "string"},
                "selected_tier": {"type": "string"},
                "sessions": {"type": "array", "items": {"$ref": "#/definitions/domain.Session"}},
                "tier_options": {"type": "array", "items": {"type": "string"}}
            }
        },
        "domain.FilterSelection": {
            "type": "object",
            "properties": {
                "access_tier": {"type": "string"},
                "day": {"type": "string"}
            }
        },
        "domain.Freshness": {
            "type": "object",
            "properties": {
                "at": {"type": "string"},
                "formatted": {"type": "string"}
            }
        },
        "domain.Session": {
            "type": "object",
            "properties": {
                "access_tiers": {"type": "array", "items": {"type": "string"}},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "difficulty_level": {"type": "string"},
                "display_end_time": {"type": "string"},
                "display_start_time": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "id": {"type": "string"},
                "is_highlighted": {"type": "boolean"},
                "is_networking": {"type": "boolean"},
                "is_unlockable": {"type": "boolean"},
                "location": {"type": "string"},
                "session_type": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "title": {"type": "string"}
            }
        },
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Agenda Feed API",
	Description:      "Filterable event agenda normalized from legacy and modern feeds.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
