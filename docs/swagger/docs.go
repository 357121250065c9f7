// Package swagger registers the OpenAPI description of the /ruleset HTTP API with swag.
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
        "/ruleset": {
            "get": {
                "description": "Returns the run id, source sets and record counts of the combined ruleset, building it on first use.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ruleset"
                ],
                "summary": "Ruleset Summary",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ruleset.Summary"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/ruleset/manifest": {
            "get": {
                "description": "Lists every output record with the source entity its assets derive from.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ruleset"
                ],
                "summary": "Asset Manifest",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/ruleset.ManifestRecord"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/ruleset/rebuild": {
            "post": {
                "description": "Re-reads every source set and combines them again. Concurrent requests share one build.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ruleset"
                ],
                "summary": "Rebuild Ruleset",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ruleset.Summary"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/ruleset/{kind}": {
            "get": {
                "description": "Returns the consolidated records of one kind (building, improvement, unit, nation).",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ruleset"
                ],
                "summary": "Records By Kind",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entity kind",
                        "name": "kind",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object",
                                "additionalProperties": true
                            }
                        }
                    },
                    "400": {
                        "description": "Unknown kind",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        },
        "/ruleset/{kind}/{name}": {
            "get": {
                "description": "Returns one consolidated record by its synthesized name.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "ruleset"
                ],
                "summary": "Record By Name",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entity kind",
                        "name": "kind",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Record name",
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": true
                        }
                    },
                    "400": {
                        "description": "Unknown kind",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "entity.Kind": {
            "type": "string",
            "enum": [
                "building",
                "improvement",
                "unit",
                "nation"
            ],
            "x-enum-varnames": [
                "KindBuilding",
                "KindImprovement",
                "KindUnit",
                "KindNation"
            ]
        },
        "ruleset.ManifestRecord": {
            "type": "object",
            "properties": {
                "kind": {
                    "$ref": "#/definitions/entity.Kind"
                },
                "name": {
                    "type": "string"
                },
                "sourceName": {
                    "type": "string"
                }
            }
        },
        "ruleset.Summary": {
            "type": "object",
            "properties": {
                "builtAt": {
                    "type": "string"
                },
                "counts": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "runId": {
                    "type": "string"
                },
                "sourceSets": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
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
	Title:            "Ruleset Combiner API",
	Description:      "API serving the combined ruleset and its asset manifest.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
