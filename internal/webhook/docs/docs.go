// Package docs registers the webhook's swagger spec with swaggo's global
// registry so /swagger/*any can serve it. This file follows the shape
// `swag init` produces; it is checked in rather than generated on build
// since the route surface here is small and fixed.
package docs

import (
	"github.com/swaggo/swag"
)

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns the domain filter the provider was configured with.",
                "produces": ["application/json"],
                "tags": ["webhook"],
                "summary": "Negotiate and report the configured domain filter",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/adjustendpoints": {
            "post": {
                "description": "Lets the provider adjust proposed endpoints before a plan.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["webhook"],
                "summary": "Adjust endpoints",
                "responses": {"200": {"description": "OK"}, "422": {"description": "validation error"}}
            }
        },
        "/healthz": {
            "get": {
                "description": "Liveness probe.",
                "tags": ["webhook"],
                "summary": "Healthz",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/records": {
            "get": {
                "description": "Lists the current device records as endpoints.",
                "produces": ["application/json"],
                "tags": ["webhook"],
                "summary": "List records",
                "responses": {"200": {"description": "OK"}, "500": {"description": "device error"}}
            },
            "post": {
                "description": "Applies a batch of endpoint changes to the device.",
                "consumes": ["application/json"],
                "tags": ["webhook"],
                "summary": "Apply changes",
                "responses": {"204": {"description": "No Content"}, "422": {"description": "validation error"}, "500": {"description": "device error"}}
            }
        }
    }
}`

// SwaggerInfo holds exported swagger metadata, in the shape swag's
// generated docs.go always exposes.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8888",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "RouterOS external-dns webhook",
	Description:      "Webhook provider exposing RouterOS static DNS records to external-dns.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
