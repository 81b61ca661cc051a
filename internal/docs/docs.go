// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/device/main.go -o internal/docs
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
        "/": {
            "get": {
                "description": "HTML page with the LED switch and the three temperature cells.",
                "produces": ["text/html"],
                "tags": ["panel"],
                "summary": "Control page",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/temperature": {
            "get": {
                "description": "Readings of the three probes in °C; a probe that failed reads -1.",
                "produces": ["application/json"],
                "tags": ["panel"],
                "summary": "Latest temperatures",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Temperatures"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/toggle-led": {
            "get": {
                "description": "state=1 turns the LED on, any other value turns it off.",
                "produces": ["text/plain"],
                "tags": ["panel"],
                "summary": "Switch LED",
                "parameters": [
                    {"enum": ["0", "1"], "type": "string", "description": "1 for on, 0 for off", "name": "state", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "LED turned ON", "schema": {"type": "string"}},
                    "400": {"description": "Missing 'state' parameter", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "string"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/ws": {
            "get": {
                "description": "WebSocket stream of {\"type\":\"state\",\"data\":DeviceState} frames.",
                "tags": ["device"],
                "summary": "Live device state",
                "parameters": [
                    {"type": "string", "example": "2s", "description": "Go duration, max 10s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "Milliseconds, max 10000", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create operator",
                "parameters": [
                    {"description": "Operator credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.Credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue bearer token",
                "parameters": [
                    {"description": "Operator credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.Credentials"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/state": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["device"],
                "summary": "Get device state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeviceState"}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/led": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["device"],
                "summary": "Set LED",
                "parameters": [
                    {"description": "LED payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LedRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DeviceState"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "LED switches and probe faults. A date-only 'to' covers the whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "List device events",
                "parameters": [
                    {"type": "string", "example": "2026-10-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2026-10-31", "description": "End of range, inclusive", "name": "to", "in": "query"},
                    {"enum": ["LED_ON", "LED_OFF", "SENSOR_FAULT", "SENSOR_RECOVERED"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.Credentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "secret"},
                "username": {"type": "string", "example": "operator"}
            }
        },
        "handlers.LedRequest": {
            "type": "object",
            "required": ["on"],
            "properties": {
                "on": {"description": "Desired LED level", "type": "boolean", "example": true}
            }
        },
        "models.DeviceState": {
            "type": "object",
            "properties": {
                "fault_codes": {"type": "array", "items": {"type": "string"}},
                "id": {"type": "integer"},
                "led_on": {"type": "boolean"},
                "temp1_c": {"type": "number"},
                "temp2_c": {"type": "number"},
                "temp3_c": {"type": "number"},
                "updated_at": {"type": "string"}
            }
        },
        "models.Temperatures": {
            "type": "object",
            "properties": {
                "temp1": {"type": "number"},
                "temp2": {"type": "number"},
                "temp3": {"type": "number"}
            }
        }
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
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ESP panel device API",
	Description:      "LED control and temperature readings of the ESP32 board.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
