// Package docs mendaftarkan dokumen OpenAPI (Swagger 2.0) API v1 ke swag,
// dibaca oleh handler /swagger/*.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

//go:embed swagger.json
var docTemplate string

// SwaggerInfo menyimpan info yang diisi ke template dokumen.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Todo Calendar API",
	Description:      "REST API to-do dan kalender: registrasi, token JWT, CRUD task, dan ringkasan status per hari.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
