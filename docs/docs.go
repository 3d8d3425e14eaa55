// Package docs registers the textgate API document with swag.
// Regenerate with `make swagger-gen` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "textgate maintainers"
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
        "/generate": {
            "post": {
                "description": "Wraps the prompt in the child-safety template and runs it through the model. Requests are served one at a time.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["generate"],
                "summary": "Generate text",
                "parameters": [
                    {
                        "description": "Prompt",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.GenerateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.GenerateResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.GenerateResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports runtime availability and whether the model is loaded. Never has side effects.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/reload_model": {
            "post": {
                "description": "Synchronously re-runs model initialization and reports the outcome.",
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Reload the model",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ReloadResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Detailed status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.GenerateRequest": {
            "type": "object",
            "properties": {
                "prompt": {"type": "string", "example": "Why is the sky blue?"}
            }
        },
        "types.GenerateResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "response": {"type": "string", "example": "The sky looks blue because sunlight bounces off tiny bits of air."},
                "error": {"type": "string", "example": "Model not loaded yet or failed to load"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "mediapipe_available": {"type": "boolean", "example": true},
                "model_loaded": {"type": "boolean", "example": true},
                "model_path": {"type": "string", "example": "./models/gemma-3n-E2B-it-Q4_K_M.gguf"},
                "state": {"type": "string", "example": "ready"}
            }
        },
        "types.ReloadResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "model_loaded": {"type": "boolean", "example": true},
                "op_id": {"type": "string", "example": "3f1c9d2e-8a41-4b7e-9a51-2f0d6f1c2b77"},
                "error": {"type": "string"}
            }
        },
        "types.StatusResponse": {
            "type": "object",
            "properties": {
                "state": {"type": "string", "example": "ready"},
                "runtime_available": {"type": "boolean", "example": true},
                "model_path": {"type": "string"},
                "model_size_mb": {"type": "integer", "example": 2900},
                "max_tokens": {"type": "integer", "example": 256},
                "temperature": {"type": "number", "example": 0.5},
                "last_error": {"type": "string"},
                "last_op_id": {"type": "string"},
                "generating": {"type": "boolean"},
                "loads_total": {"type": "integer"},
                "load_failures_total": {"type": "integer"},
                "generations_total": {"type": "integer"},
                "loaded_at_unix": {"type": "integer"},
                "uptime_seconds": {"type": "integer"},
                "server_time_unix": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "textgate API",
	Description:      "HTTP API for child-safe text generation with a single on-device model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
