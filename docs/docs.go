// Package docs регистрирует OpenAPI описание для /swagger.
// Обновляется командой swag init -g cmd/web/main.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Регистрация соискателя",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Вход по email и паролю",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/jobs/all": {
            "get": {
                "tags": ["jobs"],
                "summary": "Список видимых вакансий",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "jobRole", "in": "query"},
                    {"type": "string", "name": "industry", "in": "query"},
                    {"type": "string", "name": "location", "in": "query"},
                    {"type": "string", "name": "jobType", "in": "query"},
                    {"type": "string", "name": "experience", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/jobs/add": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Публикация вакансии",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
            }
        },
        "/user/jobs/{jobId}/apply": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["user-jobs"],
                "summary": "Отклик на вакансию",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "jobId", "in": "path", "required": true},
                    {"type": "string", "name": "coverLetter", "in": "formData"},
                    {"type": "file", "name": "resume", "in": "formData"}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/payment/recruiter/verify": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["payment"],
                "summary": "Проверить оплату рекрутера",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "name": "reference", "in": "query", "required": true},
                    {"type": "string", "name": "recruiterId", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}}
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
	Title:            "Vacancy API",
	Description:      "REST API доски вакансий: соискатели, рекрутеры, отклики и оплата размещения.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
