// Package docs registers the emulator's OpenAPI document with swag so that
// echo-swagger can serve it under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange credentials for a token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/registerClient": {
            "post": {
                "tags": ["auth"],
                "summary": "Create a client account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserProfile"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/registerProvider": {
            "post": {
                "tags": ["auth"],
                "summary": "Create a provider account and directory entry",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserProfile"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserProfile"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/auth/auth0/start/{kind}": {
            "get": {
                "tags": ["auth"],
                "summary": "Redirect to the hosted sign-in page",
                "parameters": [{"in": "path", "name": "kind", "required": true, "type": "string", "enum": ["client", "provider"]}],
                "responses": {"302": {"description": "Found"}, "501": {"description": "Not configured"}}
            }
        },
        "/categories": {
            "get": {
                "tags": ["catalog"],
                "summary": "List service categories",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Category"}}}}
            }
        },
        "/serviceprovider": {
            "get": {
                "tags": ["catalog"],
                "summary": "List providers",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ServiceProvider"}}}}
            }
        },
        "/serviceprovider/search": {
            "get": {
                "tags": ["catalog"],
                "summary": "Accent-insensitive provider search",
                "parameters": [{"in": "query", "name": "q", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/ServiceProvider"}}}}
            }
        },
        "/serviceprovider/{id}": {
            "get": {
                "tags": ["catalog"],
                "summary": "Get a provider",
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ServiceProvider"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "patch": {
                "tags": ["catalog"],
                "summary": "Edit a provider profile",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ProviderPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ServiceProvider"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "delete": {
                "tags": ["catalog"],
                "summary": "Remove a provider",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/appointments": {
            "get": {
                "tags": ["appointments"],
                "summary": "Appointments visible to the caller",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Appointment"}}}}
            },
            "post": {
                "tags": ["appointments"],
                "summary": "Book a slot",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/BookingInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Appointment"}},
                    "409": {"description": "Slot taken", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/appointments/{id}": {
            "get": {
                "tags": ["appointments"],
                "summary": "Get an appointment",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "id", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Appointment"}}}
            },
            "put": {
                "tags": ["appointments"],
                "summary": "Move an appointment to a new status",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "id", "required": true, "type": "string"},
                    {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"status": {"type": "string"}}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Appointment"}},
                    "403": {"description": "Not allowed for this role", "schema": {"$ref": "#/definitions/Error"}},
                    "422": {"description": "Invalid transition", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/appointments/booked-hours/{providerId}": {
            "get": {
                "tags": ["appointments"],
                "summary": "Hours already booked for a provider on a date",
                "parameters": [
                    {"in": "path", "name": "providerId", "required": true, "type": "string"},
                    {"in": "query", "name": "date", "required": true, "type": "string", "format": "date"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": ["admin"],
                "summary": "Platform metrics",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardMetrics"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"error": {"type": "string"}, "details": {"type": "array", "items": {"type": "string"}}}},
        "LoginInput": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "LoginResult": {"type": "object", "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/UserProfile"}}},
        "RegisterInput": {
            "type": "object",
            "required": ["name", "email", "password"],
            "properties": {
                "name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"},
                "phone": {"type": "string"}, "category_id": {"type": "string"}, "city": {"type": "string"}
            }
        },
        "UserProfile": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"}, "role": {"type": "string"}}
        },
        "Ref": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}}},
        "Category": {"type": "object", "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "description": {"type": "string"}}},
        "ServiceProvider": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}, "phone": {"type": "string"},
                "description": {"type": "string"}, "city": {"type": "string"}, "category": {"$ref": "#/definitions/Ref"},
                "hourly_rate": {"type": "number"}, "rating": {"type": "number"}
            }
        },
        "ProviderPatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"}, "phone": {"type": "string"}, "description": {"type": "string"},
                "city": {"type": "string"}, "category_id": {"type": "string"}, "hourly_rate": {"type": "number"}
            }
        },
        "BookingInput": {
            "type": "object",
            "required": ["provider_id", "category_id", "date", "hour"],
            "properties": {
                "provider_id": {"type": "string"}, "category_id": {"type": "string"},
                "date": {"type": "string", "format": "date"}, "hour": {"type": "string"}, "notes": {"type": "string"}
            }
        },
        "Appointment": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "date": {"type": "string"}, "hour": {"type": "string"},
                "status": {"type": "string", "enum": ["PENDING", "CONFIRMED", "CANCEL", "COMPLETED_PARTIAL", "COMPLETED"]},
                "client": {"$ref": "#/definitions/Ref"}, "provider": {"$ref": "#/definitions/Ref"},
                "category": {"$ref": "#/definitions/Ref"}, "notes": {"type": "string"}
            }
        },
        "DashboardMetrics": {"type": "object", "additionalProperties": true}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SkillNet backend emulator",
	Description:      "REST contract consumed by the SkillNet client.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
