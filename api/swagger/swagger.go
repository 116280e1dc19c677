package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "LUCT Reporting System API",
        "description": "Role-based academic reporting and monitoring service",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Dashboard", "description": "Role-shaped dashboard composition"},
        {"name": "Navigation", "description": "Menus, view selection and permissions"},
        {"name": "Monitoring", "description": "Lecture monitoring, analytics and exports"},
        {"name": "Report Form", "description": "Lecture report wizard"},
        {"name": "Ratings", "description": "Student lecture ratings and feedback"},
        {"name": "Classes", "description": "Class catalogue with derived status"},
        {"name": "Reports", "description": "Institution reports and runtime metrics"}
    ],
    "paths": {
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Role-shaped dashboard payload",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/navigation": {
            "get": {
                "tags": ["Navigation"],
                "summary": "Current menu, selection and resolved view",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Navigation"],
                "summary": "Drop the caller's navigation state",
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/navigation/select": {
            "post": {
                "tags": ["Navigation"],
                "summary": "Record a view selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectViewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/monitoring": {
            "get": {
                "tags": ["Monitoring"],
                "summary": "Monitoring list with analytics",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string"},
                    {"name": "faculty", "in": "query", "type": "string"},
                    {"name": "course", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "dir", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/monitoring/lectures/{id}": {
            "put": {
                "tags": ["Monitoring"],
                "summary": "Update a lecture record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LecturePatch"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            },
            "delete": {
                "tags": ["Monitoring"],
                "summary": "Delete a lecture record",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/monitoring/export": {
            "get": {
                "tags": ["Monitoring"],
                "summary": "Export the filtered monitoring list",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "description": "csv (default) or pdf"}
                ],
                "responses": {
                    "200": {"description": "Attachment"}
                }
            }
        },
        "/report-form": {
            "post": {
                "tags": ["Report Form"],
                "summary": "Start a lecture report session",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/report-form/{id}": {
            "get": {
                "tags": ["Report Form"],
                "summary": "Fetch a report session",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/report-form/{id}/next": {
            "post": {
                "tags": ["Report Form"],
                "summary": "Advance the wizard one step",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FormStepRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/report-form/{id}/back": {
            "post": {
                "tags": ["Report Form"],
                "summary": "Step the wizard back",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FormStepRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/report-form/{id}/submit": {
            "post": {
                "tags": ["Report Form"],
                "summary": "Submit the lecture report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FormStepRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ratings/lectures": {
            "get": {
                "tags": ["Ratings"],
                "summary": "Lectures the student may rate",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ratings": {
            "post": {
                "tags": ["Ratings"],
                "summary": "Rate a lecture",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/ratings/feedback": {
            "post": {
                "tags": ["Ratings"],
                "summary": "Submit written feedback",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/FeedbackRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "Classes with derived status, timetable and aggregate stats",
                "parameters": [
                    {"name": "faculty", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/principal": {
            "get": {
                "tags": ["Reports"],
                "summary": "Institution-level aggregate report",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/system": {
            "get": {
                "tags": ["Reports"],
                "summary": "Runtime metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SelectViewRequest": {
            "type": "object",
            "properties": {
                "view": {"type": "string"}
            },
            "required": ["view"]
        },
        "LecturePatch": {
            "type": "object",
            "properties": {
                "actual_students_present": {"type": "integer"},
                "total_registered_students": {"type": "integer"},
                "topic_taught": {"type": "string"},
                "learning_outcomes": {"type": "string"},
                "recommendations": {"type": "string"}
            }
        },
        "FormStepRequest": {
            "type": "object",
            "properties": {
                "fields": {"$ref": "#/definitions/FormFields"}
            }
        },
        "FormFields": {
            "type": "object",
            "properties": {
                "class_id": {"type": "integer"},
                "course_id": {"type": "integer"},
                "date_of_lecture": {"type": "string"},
                "week_of_reporting": {"type": "string"},
                "actual_students_present": {"type": "integer"},
                "topic_taught": {"type": "string"},
                "learning_outcomes": {"type": "string"},
                "recommendations": {"type": "string"}
            }
        },
        "RateRequest": {
            "type": "object",
            "properties": {
                "lecture_id": {"type": "integer"},
                "rating": {"type": "integer", "minimum": 1, "maximum": 5}
            },
            "required": ["lecture_id", "rating"]
        },
        "FeedbackRequest": {
            "type": "object",
            "properties": {
                "lecture_id": {"type": "integer"},
                "feedback_text": {"type": "string"}
            },
            "required": ["lecture_id", "feedback_text"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
