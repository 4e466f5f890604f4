package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Fleet Logistics API",
        "description": "Mover lifecycle, capacity-checked loading and mission tracking",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Items", "description": "Cargo item catalog"},
        {"name": "Movers", "description": "Mover registry, loading and missions"},
        {"name": "Audit", "description": "Lifecycle audit trail"}
    ],
    "paths": {
        "/items": {
            "get": {
                "tags": ["Items"],
                "summary": "List cargo items",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Items"],
                "summary": "Create a cargo item",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/movers": {
            "get": {
                "tags": ["Movers"],
                "summary": "List movers",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Movers"],
                "summary": "Register a mover",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMoverRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation failed"}
                }
            }
        },
        "/movers/load-items": {
            "post": {
                "tags": ["Movers"],
                "summary": "Load items onto a mover",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoadItemsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Items loaded"},
                    "400": {"description": "Invalid state or capacity exceeded"},
                    "404": {"description": "Mover or item not found"}
                }
            }
        },
        "/movers/start-mission": {
            "put": {
                "tags": ["Movers"],
                "summary": "Start a mission",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Mission started"},
                    "400": {"description": "Mover not Loading"},
                    "404": {"description": "Load record not found"}
                }
            }
        },
        "/movers/end-mission": {
            "put": {
                "tags": ["Movers"],
                "summary": "End a mission",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Mission ended"},
                    "400": {"description": "Mover not On-Mission"},
                    "404": {"description": "Load record not found"}
                }
            }
        },
        "/movers/mission-completion": {
            "get": {
                "tags": ["Movers"],
                "summary": "Movers ranked by completed missions",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/logs": {
            "get": {
                "tags": ["Audit"],
                "summary": "List audit log entries",
                "parameters": [
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "load_record_id", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/logs/export": {
            "get": {
                "tags": ["Audit"],
                "summary": "Export the audit log as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "CreateItemRequest": {
            "type": "object",
            "required": ["name", "weight"],
            "properties": {
                "name": {"type": "string"},
                "weight": {"type": "integer", "minimum": 0}
            }
        },
        "CreateMoverRequest": {
            "type": "object",
            "required": ["max_weight"],
            "properties": {
                "max_weight": {"type": "integer", "minimum": 1}
            }
        },
        "LoadItemsRequest": {
            "type": "object",
            "required": ["mover_id"],
            "properties": {
                "mover_id": {"type": "string"},
                "items": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "required": ["item_id", "quantity"],
                        "properties": {
                            "item_id": {"type": "string"},
                            "quantity": {"type": "integer", "minimum": 1}
                        }
                    }
                }
            }
        },
        "MissionRequest": {
            "type": "object",
            "required": ["load_record_id"],
            "properties": {
                "load_record_id": {"type": "string"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"},
                "data": {"type": "object"},
                "code": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
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
