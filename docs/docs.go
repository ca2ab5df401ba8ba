// Package docs provides the generated swagger description of the API.
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
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register user",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/contact": {
            "post": {
                "tags": ["contact"],
                "summary": "Submit a contact message",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/resume/upload": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["resume"],
                "summary": "Upload a resume file",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/resume/uploads": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["resume"],
                "summary": "List uploaded resumes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/resume/extract": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["resume"],
                "summary": "Extract structured data from an upload",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/resume/confirm": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Confirm an extracted draft",
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/resume/uploads/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["resume"],
                "summary": "Delete an uploaded resume",
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Get the merged profile",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/github/connect": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["sources"],
                "summary": "Connect a GitHub account",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/github/disconnect": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["sources"],
                "summary": "Disconnect the GitHub account",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/linkedin/auth-url": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["sources"],
                "summary": "Get the LinkedIn authorization URL",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/linkedin/callback": {
            "post": {
                "tags": ["sources"],
                "summary": "LinkedIn OAuth callback",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}
            }
        },
        "/linkedin/disconnect": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["sources"],
                "summary": "Disconnect the LinkedIn account",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "resumic API",
	Description:      "Backend service that builds a merged resume profile from uploaded files, GitHub and LinkedIn.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
