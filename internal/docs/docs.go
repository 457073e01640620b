// Package docs holds the OpenAPI description served by the Swagger UI. Keep it
// in step with the handler annotations when routes change.
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
        "/evolucoes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Collaborators see the evolutions assigned to them. Administrators see all, optionally narrowed with colaborador. Without page/page_size the response is a bare array.",
                "produces": ["application/json"],
                "tags": ["evolutions"],
                "summary": "List evolutions",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Assignee user ID (administrators only)", "name": "colaborador", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Evolutions, oldest first", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.EvolutionResponse"}}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Create an evolution. The caller becomes its author and a creation entry is logged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["evolutions"],
                "summary": "Create an evolution",
                "parameters": [
                    {"description": "Evolution", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EvolutionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Evolution created", "schema": {"$ref": "#/definitions/handlers.EvolutionResponse"}},
                    "400": {"description": "Invalid input or unknown assignee", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/evolucoes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Return the evolution with its change history. The assigned collaborator's first read marks it as viewed.",
                "produces": ["application/json"],
                "tags": ["evolutions"],
                "summary": "Get an evolution",
                "parameters": [
                    {"type": "string", "description": "Evolution ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Evolution", "schema": {"$ref": "#/definitions/handlers.EvolutionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Evolution not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Update titulo, conteudo and categoria (all required) and optionally atribuido_a. An edit entry is logged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["evolutions"],
                "summary": "Replace an evolution",
                "parameters": [
                    {"type": "string", "description": "Evolution ID", "name": "id", "in": "path", "required": true},
                    {"description": "Evolution", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EvolutionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Evolution updated", "schema": {"$ref": "#/definitions/handlers.EvolutionResponse"}},
                    "400": {"description": "Invalid input or unknown assignee", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Evolution not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Delete the evolution and its change history.",
                "tags": ["evolutions"],
                "summary": "Delete an evolution",
                "parameters": [
                    {"type": "string", "description": "Evolution ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "Evolution deleted"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Evolution not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Update the supplied fields only. atribuido_a may be null to unassign. An edit entry is logged.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["evolutions"],
                "summary": "Partially update an evolution",
                "parameters": [
                    {"type": "string", "description": "Evolution ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.EvolutionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Evolution updated", "schema": {"$ref": "#/definitions/handlers.EvolutionResponse"}},
                    "400": {"description": "Invalid input or unknown assignee", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Evolution not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/evolucoes/{id}/logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Return the evolution's log entries, oldest first. Does not mark the evolution as viewed.",
                "produces": ["application/json"],
                "tags": ["evolutions"],
                "summary": "List change history",
                "parameters": [
                    {"type": "string", "description": "Evolution ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Log entries", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.LogResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Evolution not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and database check",
                "responses": {
                    "200": {"description": "Healthy", "schema": {"$ref": "#/definitions/server.HealthResponse"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        },
        "/register": {
            "post": {
                "description": "Create a user. tipo_usuario defaults to colaborador.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "User registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "User registered", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "400": {"description": "Invalid input or weak password", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "Username already taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/token": {
            "post": {
                "description": "Authenticate with username and password. Five consecutive failures lock the account for 15 minutes.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Obtain a token pair",
                "parameters": [
                    {"description": "User login credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tokens issued", "schema": {"$ref": "#/definitions/handlers.LoginResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "423": {"description": "Account locked", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/token/refresh": {
            "post": {
                "description": "Exchange a refresh token for a new pair. The presented refresh token is revoked.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Refresh the token pair",
                "parameters": [
                    {"description": "Refresh token", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RefreshRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tokens issued", "schema": {"$ref": "#/definitions/handlers.TokenPairResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Invalid or revoked token", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/usuario": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Return the authenticated user's id, username and role.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "Current user", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/usuarios": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "List all users ordered by username. Without page/page_size the response is a bare array.",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Users", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.UserResponse"}}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/usuarios/{id}": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "description": "Administrators only. The new role applies to tokens issued afterwards.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Change a user's role",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"description": "New role", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UpdateRoleRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated user", "schema": {"$ref": "#/definitions/handlers.UserResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "User not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "message": {"type": "string"}
            }
        },
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handlers.ErrorDetail"}
            }
        },
        "handlers.EvolutionRequest": {
            "type": "object",
            "properties": {
                "atribuido_a": {"type": "string", "format": "uuid"},
                "categoria": {"type": "string", "maxLength": 100},
                "conteudo": {"type": "string"},
                "titulo": {"type": "string", "maxLength": 200}
            }
        },
        "handlers.EvolutionResponse": {
            "type": "object",
            "properties": {
                "atribuido_a": {"type": "string"},
                "categoria": {"type": "string"},
                "conteudo": {"type": "string"},
                "criado_por": {"type": "string"},
                "data_criacao": {"type": "string"},
                "data_edicao": {"type": "string"},
                "id": {"type": "string"},
                "logs": {"type": "array", "items": {"$ref": "#/definitions/handlers.LogResponse"}},
                "titulo": {"type": "string"},
                "visualizado": {"type": "boolean"}
            }
        },
        "handlers.LogResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "string"},
                "id": {"type": "string"},
                "tipo": {"type": "string", "enum": ["criação", "edição"]},
                "usuario": {"type": "string"},
                "usuario_id": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "handlers.LoginResponse": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"},
                "user": {"$ref": "#/definitions/handlers.UserResponse"}
            }
        },
        "handlers.RefreshRequest": {
            "type": "object",
            "required": ["refresh"],
            "properties": {
                "refresh": {"type": "string"}
            }
        },
        "handlers.RegisterRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "maxLength": 128},
                "tipo_usuario": {"type": "string", "enum": ["admin", "colaborador"]},
                "username": {"type": "string", "maxLength": 150}
            }
        },
        "handlers.TokenPairResponse": {
            "type": "object",
            "properties": {
                "access": {"type": "string"},
                "refresh": {"type": "string"}
            }
        },
        "handlers.UpdateRoleRequest": {
            "type": "object",
            "required": ["tipo_usuario"],
            "properties": {
                "tipo_usuario": {"type": "string", "enum": ["admin", "colaborador"]}
            }
        },
        "handlers.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "tipo_usuario": {"type": "string", "enum": ["admin", "colaborador"]},
                "username": {"type": "string"}
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "status": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Plantonize API",
	Description:      "Plantonize records shift evolutions, assigns them to collaborators and keeps an audit trail of every change.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
