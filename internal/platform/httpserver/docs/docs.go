// Package docs registers the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/slots": {
            "get": {
                "summary": "Slot view for a business month",
                "parameters": [
                    {"name": "business", "in": "query", "type": "string", "required": true},
                    {"name": "month", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/assignments/add": {
            "post": {
                "summary": "Assign a creator to a campaign slot",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/assignments/remove": {
            "delete": {
                "summary": "Remove a creator from a campaign",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/assignments/replace": {
            "put": {
                "summary": "Replace one creator with another atomically",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/stage/transition": {
            "post": {
                "summary": "Record a pipeline stage transition",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/campaigns": {
            "post": {
                "summary": "Create a campaign for a business month",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/api/v1/campaigns/{campaign_id}/history": {
            "get": {
                "summary": "Audit history for a campaign",
                "parameters": [
                    {"name": "campaign_id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/integrity/validate": {
            "get": {
                "summary": "Report assigned-count mismatches",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/integrity/fix": {
            "post": {
                "summary": "Repair assigned-count mismatches",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "slot-service API",
	Description:      "Campaign slot reconciliation and audit-logged stage transitions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
