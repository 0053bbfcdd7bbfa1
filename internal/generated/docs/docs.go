// Package docs registers the OpenAPI document with swag so echo-swagger can
// serve it at /swagger/doc.json.
package docs

import (
	"bloomify/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bloomify Orders API",
	Description:      "Order intake, lookup and status notifications for the Bloomify kitchen.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  string(servers.Spec()),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
