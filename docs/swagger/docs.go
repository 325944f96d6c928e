// Package swagger registers the OpenAPI document of the operational HTTP API
// with swag so gofiber/swagger can serve it. Keep it in sync with the @Router
// annotations on the feature handlers.
package swagger

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
        "/notifications": {
            "post": {
                "description": "Queue a mail for delivery. Requests repeating a recipient and purpose return the existing task.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Enqueue Notification",
                "parameters": [
                    {
                        "description": "Notification",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/notification.Request"}
                    }
                ],
                "responses": {
                    "200": {"description": "Already queued", "schema": {"$ref": "#/definitions/notification.RetryTask"}},
                    "202": {"description": "Queued", "schema": {"$ref": "#/definitions/notification.RetryTask"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/notifications/{key}": {
            "get": {
                "description": "Get the delivery state of a notification task.",
                "produces": ["application/json"],
                "tags": ["notifications"],
                "summary": "Get Notification",
                "parameters": [
                    {"type": "string", "description": "Idempotency key", "name": "key", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Task", "schema": {"$ref": "#/definitions/notification.RetryTask"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/performances": {
            "get": {
                "description": "List stored performances ordered by begin. Defaults to upcoming performances.",
                "produces": ["application/json"],
                "tags": ["performances"],
                "summary": "List Performances",
                "parameters": [
                    {"type": "string", "description": "Lower bound (RFC3339 or YYYY-MM-DD), defaults to now", "name": "from", "in": "query"},
                    {"type": "string", "description": "Upper bound (RFC3339 or YYYY-MM-DD)", "name": "to", "in": "query"},
                    {"type": "integer", "default": 100, "description": "Maximum number of results", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Performances", "schema": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Listed"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/performances/cleanup": {
            "post": {
                "description": "Delete every performance that has already begun.",
                "produces": ["application/json"],
                "tags": ["performances"],
                "summary": "Run Cleanup Sweep",
                "responses": {
                    "200": {"description": "Cleanup Report", "schema": {"$ref": "#/definitions/performance.CleanupReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/performances/reconcile": {
            "post": {
                "description": "Fetch the current and next month, reconcile them against storage and report the outcome.",
                "produces": ["application/json"],
                "tags": ["performances"],
                "summary": "Run Reconciliation Pass",
                "parameters": [
                    {"type": "boolean", "description": "Plan only, apply nothing", "name": "dry_run", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Pass Report", "schema": {"$ref": "#/definitions/performance.PassReport"}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "notification.Request": {
            "type": "object",
            "properties": {
                "body": {"type": "string"},
                "purpose": {"type": "string"},
                "recipient": {"type": "string"},
                "subject": {"type": "string"}
            }
        },
        "notification.RetryTask": {
            "type": "object",
            "properties": {
                "attempt": {"type": "integer"},
                "body": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "idempotency_key": {"type": "string"},
                "last_error": {"type": "string"},
                "max_retries": {"type": "integer"},
                "next_attempt_at": {"type": "string"},
                "purpose": {"type": "string"},
                "recipient": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "delivered", "abandoned", "rejected"]},
                "subject": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "performance.CleanupReport": {
            "type": "object",
            "properties": {
                "archives_removed": {"type": "integer"},
                "deleted": {"type": "integer"}
            }
        },
        "performance.PassReport": {
            "type": "object",
            "properties": {
                "created": {"type": "integer"},
                "deleted": {"type": "integer"},
                "dropped": {"type": "integer"},
                "dry_run": {"type": "boolean"},
                "plan": {"$ref": "#/definitions/reconcile.ReconcilePlan"},
                "skipped": {"type": "integer"},
                "windows": {"type": "array", "items": {"$ref": "#/definitions/performance.WindowReport"}}
            }
        },
        "performance.WindowReport": {
            "type": "object",
            "properties": {
                "anomaly": {"type": "boolean"},
                "archived": {"type": "string"},
                "candidates": {"type": "integer"},
                "error": {"type": "string"},
                "window": {"type": "string"}
            }
        },
        "reconcile.Action": {
            "type": "object",
            "properties": {
                "key": {"type": "string"},
                "reason": {"type": "string"},
                "type": {"type": "string", "enum": ["create", "delete"]}
            }
        },
        "reconcile.Listed": {
            "type": "object",
            "properties": {
                "begin": {"type": "string"},
                "category": {"type": "string"},
                "category_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "identity_key": {"type": "string"},
                "location": {"type": "string"},
                "location_id": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "reconcile.PlanSummary": {
            "type": "object",
            "properties": {
                "absent": {"type": "integer"},
                "creates": {"type": "integer"},
                "deletes": {"type": "integer"},
                "ticketed": {"type": "integer"},
                "total_items": {"type": "integer"},
                "unchanged": {"type": "integer"},
                "unticketed": {"type": "integer"}
            }
        },
        "reconcile.ReconcilePlan": {
            "type": "object",
            "properties": {
                "actions": {"type": "array", "items": {"$ref": "#/definitions/reconcile.Action"}},
                "summary": {"$ref": "#/definitions/reconcile.PlanSummary"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Theaterwecker API",
	Description:      "Operational API of the theater schedule reconciler.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
