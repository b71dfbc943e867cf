// Package docs registers the Swagger document served at /swagger/*.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/config": {
            "get": {"tags": ["Business"], "summary": "Business configuration", "responses": {"200": {"description": "OK"}, "500": {"description": "Failed to load business configuration"}}}
        },
        "/config/structured-data": {
            "get": {"tags": ["Business"], "summary": "JSON-LD structured data", "responses": {"200": {"description": "OK"}}}
        },
        "/config/presets/{industry}": {
            "get": {"tags": ["Business"], "summary": "Configuration with an industry preset applied", "parameters": [{"type": "string", "name": "industry", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown industry"}}}
        },
        "/admin/bookings": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "List bookings", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bookings/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "Get a booking", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "Change status or edit a booking", "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid transition"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "Delete a booking", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bookings/{id}/confirm": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "Confirm a pending booking", "responses": {"200": {"description": "OK"}, "502": {"description": "Calendar failure"}}}
        },
        "/admin/bookings/sweep": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "Persist derived statuses", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bookings/overview": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Overview"], "summary": "Merged database and calendar bookings for a month", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bookings/overview/grid": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Overview"], "summary": "Month grid of merged bookings", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bookings/overview/availability": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Overview"], "summary": "Free and busy days per castle for a month", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/add-test-booking": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "Insert the fixed test booking", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/calendar": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Calendar"], "summary": "Calendar connection status", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/calendar/events": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Calendar"], "summary": "Events of a month", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Calendar"], "summary": "Create a booking event", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/calendar/events/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Calendar"], "summary": "Update an event", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Calendar"], "summary": "Delete an event", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/calendar/events/{id}/import": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Bookings"], "summary": "Import a calendar-only booking", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/services": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "List services", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "Create a service", "responses": {"201": {"description": "Created"}}}
        },
        "/admin/services/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "Get a service", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "Update a service", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "Delete a service", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/services/{id}/maintenance": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "Set maintenance status", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/services/{id}/image": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "Upload a service image", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/services/description": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Fleet"], "summary": "Generate a service description", "responses": {"200": {"description": "OK"}}}
        },
        "/admin/notifications": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Notifications"], "summary": "List outbound notifications", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Admin JWT. Example: \"Bearer {token}\"",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:7070",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Castle Admin API",
	Description:      "Bookings, calendar reconciliation and fleet management for a bouncy castle hire business.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
