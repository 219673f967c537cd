// Package docs registers the OpenAPI description served at /swagger/.
// Regenerate it from the handler annotations with go generate ./docs.
package docs

//go:generate swag init --dir .. --generalInfo cmd/server/main.go --output . --outputTypes go

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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/health": {"get": {"tags": ["Health"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/auth/register": {"post": {"tags": ["Auth"], "summary": "Register", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}],
            "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/api.Envelope"}}, "400": {"description": "validation failed or email taken"}, "429": {"description": "Too Many Requests"}, "503": {"description": "Service Unavailable"}}}},
        "/api/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "400": {"description": "invalid credentials"}, "429": {"description": "Too Many Requests"}, "503": {"description": "Service Unavailable"}}}},
        "/api/user/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["User"], "summary": "Current user", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}},
        "/api/stats/user/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["Stats"], "summary": "My stats", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "404": {"description": "Not Found"}}}},
        "/api/stats/user/progress": {"get": {"security": [{"BearerAuth": []}], "tags": ["Stats"], "summary": "My daily progress", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Trailing window in days (default 30)", "name": "days", "in": "query"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/stats/user/topics": {"get": {"security": [{"BearerAuth": []}], "tags": ["Stats"], "summary": "My topic breakdown", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/stats/user/weekly-activity": {"get": {"security": [{"BearerAuth": []}], "tags": ["Stats"], "summary": "My weekly activity", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/stats/user/attempts": {"get": {"security": [{"BearerAuth": []}], "tags": ["Stats"], "summary": "My recent attempts", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Maximum rows (default 20)", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/stats/leaderboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["Stats"], "summary": "Leaderboard", "produces": ["application/json"],
            "parameters": [{"type": "integer", "description": "Maximum entries (default 10)", "name": "limit", "in": "query"}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/stats/admin/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "All users (admin)", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "403": {"description": "Forbidden"}}}},
        "/api/stats/admin/users/export": {"get": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Export users (admin)", "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "403": {"description": "Forbidden"}}}},
        "/api/stats/admin/attempts/import": {"post": {"security": [{"BearerAuth": []}], "tags": ["Admin"], "summary": "Import attempts (admin)", "consumes": ["application/json", "multipart/form-data"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "body", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.ImportAttempt"}}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}}},
        "/api/solve": {"post": {"security": [{"BearerAuth": []}], "tags": ["Tutor"], "summary": "Solve a problem", "consumes": ["application/json"], "produces": ["application/json"],
            "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/api.SolveRequest"}}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}},
        "/api/tutor-help": {"post": {"security": [{"BearerAuth": []}], "tags": ["Tutor"], "summary": "Tutor help", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/generate-lesson": {"post": {"security": [{"BearerAuth": []}], "tags": ["Lessons"], "summary": "Generate a lesson", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/lesson-topics": {"get": {"security": [{"BearerAuth": []}], "tags": ["Lessons"], "summary": "Lesson topics", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/lesson-stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["Lessons"], "summary": "Lesson stats", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/generate-quiz": {"post": {"security": [{"BearerAuth": []}], "tags": ["Quizzes"], "summary": "Generate a quiz", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/quiz-question-answer": {"post": {"security": [{"BearerAuth": []}], "tags": ["Quizzes"], "summary": "Quiz answer", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/quiz-progress": {"post": {"security": [{"BearerAuth": []}], "tags": ["Quizzes"], "summary": "Quiz progress", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/quiz-topics": {"get": {"security": [{"BearerAuth": []}], "tags": ["Quizzes"], "summary": "Quiz topics", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/popular-quiz-topics": {"get": {"security": [{"BearerAuth": []}], "tags": ["Quizzes"], "summary": "Popular quiz topics", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/quiz-stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["Quizzes"], "summary": "Quiz stats", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/generate-graph": {"post": {"security": [{"BearerAuth": []}], "tags": ["Graphs"], "summary": "Generate a graph", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/process-image": {"post": {"security": [{"BearerAuth": []}], "tags": ["OCR"], "summary": "Read a problem from an image", "consumes": ["multipart/form-data"], "produces": ["application/json"],
            "parameters": [{"type": "file", "description": "Image of the problem", "name": "image", "in": "formData", "required": true}],
            "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/conversations": {"get": {"security": [{"BearerAuth": []}], "tags": ["Conversations"], "summary": "List conversations", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/conversations/new": {"post": {"security": [{"BearerAuth": []}], "tags": ["Conversations"], "summary": "Start a conversation", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}},
        "/api/conversations/{conversationID}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Conversations"], "summary": "Get a conversation", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Conversation ID", "name": "conversationID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Conversations"], "summary": "Delete a conversation", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Conversation ID", "name": "conversationID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.Envelope"}}}}
        }
    },
    "definitions": {
        "api.Envelope": {"type": "object", "properties": {"success": {"type": "boolean"}, "data": {}, "error": {"type": "string"}}},
        "auth.RegisterRequest": {"type": "object", "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "auth.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "api.SolveRequest": {"type": "object", "properties": {"question": {"type": "string", "example": "Solve sin(x) = 0.5 for 0 <= x < 360"}, "topic": {"type": "string", "example": "Equations"}, "time_seconds": {"type": "integer", "example": 42}}},
        "api.ImportAttempt": {"type": "object", "required": ["user_id", "topic", "correct"], "properties": {"user_id": {"type": "integer", "example": 1}, "topic": {"type": "string", "example": "Equations"}, "correct": {"type": "boolean"}, "time_seconds": {"type": "integer", "example": 20}, "question": {"type": "string"}, "timestamp": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Trig Tutor API",
	Description:      "Gateway for the trigonometry tutor: accounts, progress analytics and proxied tutor requests.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
