// Package docs registers the Swagger specification served at /swagger/*any.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "termsOfService": "https://github.com/guttosm/findim",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/guttosm/findim",
            "email": "support@example.com"
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
        "/api/v1/calendar": {
            "get": {
                "description": "Returns one row per day in [start, end] with calendar attributes and the national holiday flag. An inverted range returns an empty list.",
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Build the date dimension",
                "parameters": [
                    {"type": "string", "example": "2023-01-01", "description": "First day (YYYY-MM-DD)", "name": "start", "in": "query", "required": true},
                    {"type": "string", "example": "2025-12-31", "description": "Last day (YYYY-MM-DD)", "name": "end", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/dto.CalendarResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/holidays/{year}": {
            "get": {
                "description": "Returns the fixed and Easter-based Brazilian national holidays, sorted by date",
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "National holidays of a year",
                "parameters": [
                    {"type": "integer", "example": 2024, "description": "Year (1..9999)", "name": "year", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/dto.HolidaysResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/business-days": {
            "get": {
                "description": "Returns the last n business days up to and including from, most recent first",
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "Last business days",
                "parameters": [
                    {"type": "integer", "example": 5, "description": "How many days (1..60, default 5)", "name": "n", "in": "query"},
                    {"type": "string", "example": "2024-01-02", "description": "Reference day (YYYY-MM-DD, default today)", "name": "from", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/dto.BusinessDaysResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/api/v1/series/{name}": {
            "get": {
                "description": "Fetches an SGS series from the Central Bank of Brazil, sorts it by date and flags every value change",
                "produces": ["application/json"],
                "tags": ["series"],
                "summary": "Normalized economic series",
                "parameters": [
                    {"enum": ["ipca", "selic"], "type": "string", "description": "Series name", "name": "name", "in": "path", "required": true},
                    {"type": "integer", "example": 2023, "description": "First year (default end_year)", "name": "start_year", "in": "query"},
                    {"type": "integer", "example": 2025, "description": "Last year (default current year)", "name": "end_year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Success", "schema": {"$ref": "#/definitions/dto.SeriesResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "description": "Always returns OK if the service is running",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/readyz": {
            "get": {
                "description": "Returns ready if the configured dependencies (Postgres) are reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "invalid request"},
                "error": {"type": "string", "example": "year must be an integer"},
                "timestamp": {"type": "string", "example": "2024-01-01T00:00:00Z"}
            }
        },
        "models.CalendarDay": {
            "type": "object",
            "properties": {
                "id_data": {"type": "integer", "example": 1},
                "data": {"type": "string", "example": "2024-01-01T00:00:00Z"},
                "dia": {"type": "integer", "example": 1},
                "mes": {"type": "integer", "example": 1},
                "ano": {"type": "integer", "example": 2024},
                "trimestre": {"type": "integer", "example": 1},
                "bimestre": {"type": "integer", "example": 1},
                "dia_semana_num": {"type": "integer", "example": 0},
                "nome_dia": {"type": "string", "example": "Segunda-feira"},
                "nome_mes": {"type": "string", "example": "Janeiro"},
                "final_semana": {"type": "boolean"},
                "inicio_mes": {"type": "boolean"},
                "fim_mes": {"type": "boolean"},
                "inicio_trimestre": {"type": "boolean"},
                "fim_trimestre": {"type": "boolean"},
                "inicio_ano": {"type": "boolean"},
                "fim_ano": {"type": "boolean"},
                "dias_no_mes": {"type": "integer", "example": 31},
                "semana_do_ano": {"type": "integer", "example": 1},
                "feriado_nacional": {"type": "boolean", "example": true}
            }
        },
        "dto.CalendarResponse": {
            "type": "object",
            "properties": {
                "start": {"type": "string", "example": "2023-01-01"},
                "end": {"type": "string", "example": "2025-12-31"},
                "count": {"type": "integer", "example": 1096},
                "days": {"type": "array", "items": {"$ref": "#/definitions/models.CalendarDay"}}
            }
        },
        "dto.HolidayResponse": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-02-13"},
                "name": {"type": "string", "example": "Carnaval"},
                "movable": {"type": "boolean", "example": true}
            }
        },
        "dto.HolidaysResponse": {
            "type": "object",
            "properties": {
                "year": {"type": "integer", "example": 2024},
                "holidays": {"type": "array", "items": {"$ref": "#/definitions/dto.HolidayResponse"}}
            }
        },
        "dto.BusinessDaysResponse": {
            "type": "object",
            "properties": {
                "from": {"type": "string", "example": "2024-01-02"},
                "count": {"type": "integer", "example": 2},
                "days": {"type": "array", "items": {"type": "string"}, "example": ["2024-01-02", "2023-12-29"]}
            }
        },
        "dto.ObservationResponse": {
            "type": "object",
            "properties": {
                "data": {"type": "string", "example": "2023-01-01"},
                "valor": {"type": "number", "example": 0.53},
                "mudou": {"type": "boolean", "example": true}
            }
        },
        "dto.SeriesResponse": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "ipca"},
                "code": {"type": "integer", "example": 433},
                "start_year": {"type": "integer", "example": 2023},
                "end_year": {"type": "integer", "example": 2025},
                "changes": {"type": "integer", "example": 12},
                "observations": {"type": "array", "items": {"$ref": "#/definitions/dto.ObservationResponse"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "findim API",
	Description:      "Brazilian date dimension, national holidays and BCB economic series (IPCA, Selic).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
