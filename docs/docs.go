// Package docs is regenerated by swag init from the handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "cars2customer"
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
        "/health": {"get": {"tags": ["ops"], "summary": "Liveness and store connectivity", "responses": {"200": {"description": "OK"}, "500": {"description": "Store unavailable"}}}},
        "/user/request-otp": {"post": {"tags": ["user"], "summary": "Send a registration code", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Delivery failed"}}}},
        "/user/register": {"post": {"tags": ["user"], "summary": "Verify the code and create the account", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/user/request-reset": {"post": {"tags": ["user"], "summary": "Send a password reset code", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/user/reset-password": {"post": {"tags": ["user"], "summary": "Set a new password with a reset code", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/user/login": {"post": {"tags": ["user"], "summary": "User login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/google/callback": {"post": {"tags": ["user"], "summary": "Sign in with a Google ID token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/admin/register": {"post": {"tags": ["admin"], "summary": "Register an admin", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/admin/register/top": {"post": {"tags": ["admin"], "summary": "Register the top admin", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/admin/login": {"post": {"tags": ["admin"], "summary": "Admin login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/admin/all": {"get": {"tags": ["admin"], "summary": "List admins other than the top admin", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/{id}": {
            "put": {"tags": ["admin"], "summary": "Edit an admin", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["admin"], "summary": "Delete an admin", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}
        },
        "/all-cars": {"get": {"tags": ["cars"], "summary": "Catalog grouped by brand", "responses": {"200": {"description": "OK"}}}},
        "/cars": {"post": {"tags": ["cars"], "summary": "Add a car", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/cars/{carId}": {
            "get": {"tags": ["cars"], "summary": "Get a car", "parameters": [{"type": "string", "name": "carId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["cars"], "summary": "Edit a car", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "carId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["cars"], "summary": "Delete a car", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "carId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/cars/{carId}/images": {"post": {"tags": ["cars"], "summary": "Upload a car photo", "consumes": ["multipart/form-data"], "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "carId", "in": "path", "required": true}, {"type": "file", "name": "image", "in": "formData", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/favorites/add": {"post": {"tags": ["favorites"], "summary": "Add a car to the user's favorites", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}},
        "/favorites/remove": {"post": {"tags": ["favorites"], "summary": "Remove a car from the user's favorites", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/car/favorites/{uniqueId}": {"get": {"tags": ["favorites"], "summary": "List the user's favorites", "parameters": [{"type": "string", "name": "uniqueId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/cars/bookings": {"post": {"tags": ["bookings"], "summary": "Request to buy a car", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/cars/bookings/{id}": {"get": {"tags": ["bookings"], "summary": "Get a booking", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/carsBooked/bookings": {"get": {"tags": ["bookings"], "summary": "All bookings, newest first", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/carsBooked/bookings/{id}": {
            "put": {"tags": ["bookings"], "summary": "Change a booking's status", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["bookings"], "summary": "Delete a booking", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/files/{path}": {"get": {"tags": ["files"], "summary": "Download a stored image", "parameters": [{"type": "string", "name": "path", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "cars2customer API",
	Description:      "Car marketplace backend: catalog, favorites, bookings and admin management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
