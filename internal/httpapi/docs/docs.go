// Package docs registers the genrelay Swagger document with swag.
// Keep in sync with the annotations in internal/httpapi/handlers.go.
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
    "paths": {
        "/generate-text": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["generate"],
                "summary": "Generate text",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/types.TextRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ReplyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/generate-image": {"post": {{template "upload" "Describe an image, then tidy the description"}}},
        "/generate-audio": {"post": {{template "upload" "Transcribe audio to Indonesian, then fix punctuation"}}},
        "/generate-pdf": {"post": {{template "upload" "Summarize a PDF document"}}},
        "/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "List configured models",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.TextRequest": {
            "type": "object",
            "properties": {"message": {"type": "string", "example": "What is the capital of Indonesia?"}}
        },
        "types.ReplyResponse": {
            "type": "object",
            "properties": {"reply": {"type": "string", "example": "Jakarta is the capital of Indonesia."}}
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "An error occurred"},
                "error": {"type": "string"}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {"models": {"type": "object", "additionalProperties": {"type": "string"}}}
        }
    }
}{{define "upload"}}{
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["generate"],
                "summary": "{{.}}",
                "parameters": [
                    {"type": "file", "in": "formData", "name": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ReplyResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }{{end}}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "genrelay API",
	Description:      "HTTP relay forwarding text, image, audio and PDF inputs to Gemini.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
