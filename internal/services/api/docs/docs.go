// Package docs holds the OpenAPI document for the api
// swag regenerates this file from the handler annotations:
//
//	go generate ./internal/services/api/docs
package docs

import "github.com/swaggo/swag/v2"

//go:generate swag init --v3.1 -d ../../../../ -g cmd/agenda-api/main.go -o . --outputTypes go --parseInternal

const docTemplate = `{
  "openapi": "3.0.3",
  "info": {"title": "{{.Title}}", "description": "{{escape .Description}}", "version": "{{.Version}}"},
  "components": {
    "securitySchemes": {"BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}},
    "schemas": {
      "Envelope": {"type": "object", "properties": {
        "status_code": {"type": "integer"}, "status": {"type": "string"}, "code": {"type": "integer"},
        "error": {"type": "string"}, "field": {"type": "string"}, "request_id": {"type": "string"}, "data": {}
      }},
      "AppointmentInput": {"type": "object", "required": ["title", "start_time", "end_time"], "properties": {
        "title": {"type": "string", "example": "Team sync"},
        "description": {"type": "string"}, "location": {"type": "string"}, "attendees": {"type": "string"},
        "appointment_type": {"type": "string", "enum": ["meeting", "personal", "reminder", "deadline", "travel", "health", "social", "other"]},
        "start_time": {"type": "string", "example": "2023-10-01T09:00:00"},
        "end_time": {"type": "string", "example": "2023-10-01T10:00:00"},
        "is_recurring": {"type": "boolean"},
        "recurrence_interval": {"type": "string", "enum": ["daily", "weekly", "monthly"]},
        "recurrence_end_date": {"type": "string", "example": "2023-10-31"},
        "parent_appointment_id": {"type": "string", "format": "uuid"}
      }},
      "Appointment": {"allOf": [{"$ref": "#/components/schemas/AppointmentInput"}, {"type": "object", "properties": {
        "id": {"type": "string"}, "owner_id": {"type": "string"},
        "created_at": {"type": "string", "format": "date-time"}, "updated_at": {"type": "string", "format": "date-time"}
      }}]},
      "Occurrence": {"allOf": [{"$ref": "#/components/schemas/AppointmentInput"}, {"type": "object", "properties": {"id": {"type": "string"}}}]},
      "RegisterInput": {"type": "object", "required": ["email", "username", "password"], "properties": {
        "email": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string"},
        "first_name": {"type": "string"}, "last_name": {"type": "string"}
      }},
      "LoginInput": {"type": "object", "required": ["username_or_email", "password"], "properties": {
        "username_or_email": {"type": "string"}, "password": {"type": "string"}
      }},
      "User": {"type": "object", "properties": {
        "id": {"type": "string"}, "email": {"type": "string"}, "username": {"type": "string"},
        "first_name": {"type": "string"}, "last_name": {"type": "string"}, "is_active": {"type": "boolean"},
        "created_at": {"type": "string", "format": "date-time"}
      }},
      "Session": {"type": "object", "properties": {
        "token": {"type": "string"}, "expires_at": {"type": "string", "format": "date-time"}, "user": {"$ref": "#/components/schemas/User"}
      }},
      "Activity": {"type": "object", "properties": {
        "id": {"type": "string"}, "owner_id": {"type": "string"}, "appointment_id": {"type": "string"},
        "kind": {"type": "string"}, "occurrences": {"type": "integer"}, "detail": {"type": "string"},
        "at": {"type": "string", "format": "date-time"}
      }}
    }
  },
  "security": [{"BearerAuth": []}],
  "paths": {
    "/auth/register": {"post": {"tags": ["Auth"], "summary": "Create an account", "security": [],
      "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterInput"}}}},
      "responses": {"201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Session"}}}}, "409": {"description": "taken"}}}},
    "/auth/login": {"post": {"tags": ["Auth"], "summary": "Log in with username or email", "security": [],
      "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginInput"}}}},
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Session"}}}}, "401": {"description": "bad credentials"}}}},
    "/auth/current": {"get": {"tags": ["Auth"], "summary": "The authenticated account",
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/User"}}}}}}},
    "/auth/logout": {"post": {"tags": ["Auth"], "summary": "Revoke the session of the bearer token", "responses": {"204": {"description": "revoked"}}}},
    "/appointments": {
      "get": {"tags": ["Appointments"], "summary": "List occurrences in a window",
        "parameters": [
          {"name": "start", "in": "query", "schema": {"type": "string"}},
          {"name": "end", "in": "query", "schema": {"type": "string"}},
          {"name": "q", "in": "query", "schema": {"type": "string"}}
        ],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Occurrence"}}}}}}},
      "post": {"tags": ["Appointments"], "summary": "Create an appointment",
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/AppointmentInput"}}}},
        "responses": {"201": {"description": "created", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Appointment"}}}}, "409": {"description": "conflict"}}}
    },
    "/appointments/all": {"get": {"tags": ["Appointments"], "summary": "List stored definitions",
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Appointment"}}}}}}}},
    "/appointments/day": {"get": {"tags": ["Appointments"], "summary": "Occurrences starting on one day",
      "parameters": [{"name": "date", "in": "query", "required": true, "schema": {"type": "string"}}],
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Occurrence"}}}}}}}},
    "/appointments/upcoming": {"get": {"tags": ["Appointments"], "summary": "Next occurrences from now",
      "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer", "default": 10}}],
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Occurrence"}}}}}}}},
    "/appointments/export.ics": {"get": {"tags": ["Appointments"], "summary": "Export the window as iCalendar",
      "responses": {"200": {"description": "VCALENDAR document", "content": {"text/calendar": {"schema": {"type": "string"}}}}}}},
    "/appointments/{id}": {
      "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
      "get": {"tags": ["Appointments"], "summary": "Get one definition",
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Appointment"}}}}, "404": {"description": "not found"}}},
      "put": {"tags": ["Appointments"], "summary": "Replace an appointment",
        "parameters": [{"name": "updateAllFutureEvents", "in": "query", "schema": {"type": "boolean"}}],
        "requestBody": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/AppointmentInput"}}}},
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Appointment"}}}}, "409": {"description": "conflict"}}},
      "delete": {"tags": ["Appointments"], "summary": "Delete an appointment and its whole series",
        "parameters": [{"name": "deleteAllFuture", "in": "query", "schema": {"type": "boolean"}}],
        "responses": {"204": {"description": "deleted"}, "404": {"description": "not found"}}}
    },
    "/activity": {"get": {"tags": ["Activity"], "summary": "Recent appointment activity of the caller",
      "parameters": [{"name": "limit", "in": "query", "schema": {"type": "integer"}}],
      "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/Activity"}}}}}}}},
    "/meta/health": {"get": {"tags": ["Meta"], "summary": "Liveness", "security": [], "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"tags": ["Meta"], "summary": "Readiness, pings postgres and clickhouse", "security": [], "responses": {"200": {"description": "ok"}, "503": {"description": "a dependency failed"}}}},
    "/meta/version": {"get": {"tags": ["Meta"], "summary": "Build info", "security": [], "responses": {"200": {"description": "ok"}}}},
    "/meta/service": {"get": {"tags": ["Meta"], "summary": "Service name and uptime", "security": [], "responses": {"200": {"description": "ok"}}}}
  }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Title:            "Agenda API",
	Description:      "Appointments with recurring series and conflict detection",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
