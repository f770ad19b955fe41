// Package docs registers the swagger document of the playback API.
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
        "/attacks": {
            "get": {
                "description": "Attack intervals sorted by id. startTime can be passed to /data/by-timestamp.",
                "produces": ["application/json"],
                "tags": ["attacks"],
                "summary": "List attacks",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.AttackSummary"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/data/by-index/{index}": {
            "get": {
                "description": "Record at a playback position with its predecessor, per-device change and active attack",
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "Record by index",
                "parameters": [
                    {"type": "integer", "description": "Record index", "name": "index", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RecordView"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/data/by-timestamp": {
            "get": {
                "description": "Resolves a DD/MM/YYYY time of day to the index of the closest record",
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "Nearest record to a time",
                "parameters": [
                    {"type": "string", "description": "Wall-clock time, e.g. 28/12/2015 10:29:14 AM", "name": "time", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TimestampMatch"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/data/history": {
            "get": {
                "description": "Chart samples of one device ending at endIndex. mode=index (default) reads seconds as a record count, mode=time as a time span.",
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "Device history",
                "parameters": [
                    {"type": "string", "description": "Device identifier", "name": "deviceId", "in": "query", "required": true},
                    {"type": "integer", "description": "Last record index", "name": "endIndex", "in": "query", "required": true},
                    {"type": "integer", "description": "Window length", "name": "seconds", "in": "query", "required": true},
                    {"type": "string", "description": "index or time", "name": "mode", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.HistoryPoint"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/data/info": {
            "get": {
                "description": "Total record count, first and last timestamps and the device columns",
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "Dataset summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DatasetInfo"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Dataset load state, record counts and version",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.LoadStatus"}}
                }
            }
        }
    },
    "definitions": {
        "errors.APIError": {
            "type": "object",
            "properties": {
                "details": {},
                "error": {"type": "string"},
                "request_id": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.AttackStatus": {
            "type": "object",
            "properties": {
                "attackId": {"type": "string"},
                "description": {"type": "string"},
                "isActive": {"type": "boolean"},
                "targets": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.AttackSummary": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "endMs": {"type": "integer"},
                "endTime": {"type": "string"},
                "id": {"type": "string"},
                "startMs": {"type": "integer"},
                "startTime": {"type": "string"},
                "targets": {"type": "array", "items": {"type": "string"}}
            }
        },
        "models.DatasetInfo": {
            "type": "object",
            "properties": {
                "attackCount": {"type": "integer"},
                "deviceNames": {"type": "array", "items": {"type": "string"}},
                "droppedRows": {"type": "integer"},
                "endTime": {"type": "string"},
                "startTime": {"type": "string"},
                "totalRecords": {"type": "integer"}
            }
        },
        "models.HistoryPoint": {
            "type": "object",
            "properties": {
                "jsTimestamp": {"type": "integer"},
                "value": {"type": "number"}
            }
        },
        "models.LoadStatus": {
            "type": "object",
            "properties": {
                "attacks": {"type": "integer"},
                "droppedAttacks": {"type": "integer"},
                "droppedRows": {"type": "integer"},
                "error": {"type": "string"},
                "loadedAt": {"type": "string"},
                "records": {"type": "integer"},
                "state": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "models.RecordView": {
            "type": "object",
            "properties": {
                "attackInfo": {"$ref": "#/definitions/models.AttackStatus"},
                "diff": {"type": "object", "additionalProperties": {"type": "number"}},
                "prevTimestampData": {"type": "object"},
                "timestampData": {"type": "object"}
            }
        },
        "models.TimestampMatch": {
            "type": "object",
            "properties": {
                "index": {"type": "integer"},
                "timestamp": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "SWaT Playback API",
	Description:      "Time-indexed playback of the SWaT water treatment dataset and its attack list.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
