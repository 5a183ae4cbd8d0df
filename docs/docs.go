// Package docs holds the OpenAPI document served at /swagger/doc.json.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "contact": {
            "name": "Contact Support",
            "email": "support@bazaar.local"
        },
        "license": {
            "name": "MIT",
            "url": "https://mit-license.org/"
        },
        "version": "{{.Version}}"
    },
    "servers": [
        {"url": "http://localhost:8080"}
    ],
    "paths": {
        "/otp/send": {
            "post": {
                "tags": ["Registration"],
                "summary": "Send a registration OTP",
                "requestBody": {"$ref": "#/components/requestBodies/Email"},
                "responses": {
                    "200": {"$ref": "#/components/responses/Message"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "429": {"$ref": "#/components/responses/Error"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/otp/verify": {
            "post": {
                "tags": ["Registration"],
                "summary": "Exchange a registration OTP for a short token",
                "requestBody": {"$ref": "#/components/requestBodies/EmailCode"},
                "responses": {
                    "200": {"$ref": "#/components/responses/ShortToken"},
                    "400": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Registration"],
                "summary": "Create an account with a verified short token",
                "parameters": [{"$ref": "#/components/parameters/IdempotencyKey"}],
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RegisterRequest"}}}
                },
                "responses": {
                    "201": {"$ref": "#/components/responses/Tokens"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "409": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/forgot-password": {
            "post": {
                "tags": ["Password"],
                "summary": "Send a password reset OTP",
                "requestBody": {"$ref": "#/components/requestBodies/Email"},
                "responses": {
                    "200": {"$ref": "#/components/responses/Message"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "404": {"$ref": "#/components/responses/Error"},
                    "429": {"$ref": "#/components/responses/Error"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/reset-password": {
            "post": {
                "tags": ["Password"],
                "summary": "Reset a password with the emailed OTP",
                "parameters": [{"$ref": "#/components/parameters/IdempotencyKey"}],
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ResetPasswordRequest"}}}
                },
                "responses": {
                    "200": {"$ref": "#/components/responses/Message"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "404": {"$ref": "#/components/responses/Error"},
                    "409": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/verification/send": {
            "post": {
                "tags": ["Verification"],
                "summary": "Send a verification code to the signed-in account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"$ref": "#/components/responses/Message"},
                    "401": {"$ref": "#/components/responses/Error"},
                    "429": {"$ref": "#/components/responses/Error"},
                    "500": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/verification/verify": {
            "post": {
                "tags": ["Verification"],
                "summary": "Confirm the signed-in account's email",
                "security": [{"BearerAuth": []}],
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/CodeRequest"}}}
                },
                "responses": {
                    "200": {"$ref": "#/components/responses/ShortToken"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "401": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Session"],
                "summary": "Sign in with email and password",
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/LoginRequest"}}}
                },
                "responses": {
                    "200": {"$ref": "#/components/responses/Login"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "401": {"$ref": "#/components/responses/Error"},
                    "429": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["Session"],
                "summary": "Revoke a refresh token",
                "requestBody": {"$ref": "#/components/requestBodies/Refresh"},
                "responses": {
                    "200": {"$ref": "#/components/responses/Message"},
                    "400": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/token/refresh": {
            "post": {
                "tags": ["Session"],
                "summary": "Rotate a refresh token",
                "requestBody": {"$ref": "#/components/requestBodies/Refresh"},
                "responses": {
                    "200": {"$ref": "#/components/responses/Tokens"},
                    "401": {"$ref": "#/components/responses/Error"}
                }
            }
        },
        "/password/change": {
            "post": {
                "tags": ["Password"],
                "summary": "Change the signed-in account's password",
                "security": [{"BearerAuth": []}],
                "requestBody": {
                    "required": true,
                    "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ChangePasswordRequest"}}}
                },
                "responses": {
                    "200": {"$ref": "#/components/responses/Message"},
                    "400": {"$ref": "#/components/responses/Error"},
                    "401": {"$ref": "#/components/responses/Error"}
                }
            }
        }
    },
    "components": {
        "securitySchemes": {
            "BearerAuth": {
                "type": "apiKey",
                "in": "header",
                "name": "Authorization",
                "description": "Type \"Bearer\" followed by a space and JWT."
            }
        },
        "parameters": {
            "IdempotencyKey": {
                "name": "Idempotency-Key",
                "in": "header",
                "required": false,
                "schema": {"type": "string"}
            }
        },
        "requestBodies": {
            "Email": {
                "required": true,
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EmailRequest"}}}
            },
            "EmailCode": {
                "required": true,
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/EmailCodeRequest"}}}
            },
            "Refresh": {
                "required": true,
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/RefreshRequest"}}}
            }
        },
        "responses": {
            "Message": {
                "description": "OK",
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Message"}}}
            },
            "ShortToken": {
                "description": "OK",
                "content": {"application/json": {"schema": {
                    "allOf": [
                        {"$ref": "#/components/schemas/Message"},
                        {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/ShortToken"}}}
                    ]
                }}}
            },
            "Tokens": {
                "description": "OK",
                "content": {"application/json": {"schema": {
                    "allOf": [
                        {"$ref": "#/components/schemas/Message"},
                        {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/Tokens"}}}
                    ]
                }}}
            },
            "Login": {
                "description": "OK",
                "content": {"application/json": {"schema": {
                    "allOf": [
                        {"$ref": "#/components/schemas/Message"},
                        {"type": "object", "properties": {"data": {"$ref": "#/components/schemas/LoginData"}}}
                    ]
                }}}
            },
            "Error": {
                "description": "Error",
                "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}
            }
        },
        "schemas": {
            "Message": {
                "type": "object",
                "properties": {"message": {"type": "string"}}
            },
            "Error": {
                "type": "object",
                "properties": {
                    "message": {"type": "string"},
                    "error": {"type": "object", "additionalProperties": {"type": "string"}}
                }
            },
            "EmailRequest": {
                "type": "object",
                "required": ["email"],
                "properties": {"email": {"type": "string", "format": "email", "example": "jane@example.com"}}
            },
            "EmailCodeRequest": {
                "type": "object",
                "required": ["email", "code"],
                "properties": {
                    "email": {"type": "string", "format": "email", "example": "jane@example.com"},
                    "code": {"type": "string", "pattern": "^[0-9]{6}$", "example": "123456"}
                }
            },
            "CodeRequest": {
                "type": "object",
                "required": ["code"],
                "properties": {"code": {"type": "string", "pattern": "^[0-9]{6}$", "example": "123456"}}
            },
            "ShortToken": {
                "type": "object",
                "properties": {"short_token": {"type": "string", "example": "k3J9aQ2mZx7LwP0rT5bV8nC1dF4gH6jY"}}
            },
            "RegisterRequest": {
                "type": "object",
                "required": ["username", "email", "password", "confirm_password", "short_token"],
                "properties": {
                    "username": {"type": "string", "minLength": 3, "example": "jane"},
                    "email": {"type": "string", "format": "email", "example": "jane@example.com"},
                    "password": {"type": "string", "minLength": 8, "maxLength": 72},
                    "confirm_password": {"type": "string"},
                    "short_token": {"type": "string"},
                    "phone_number": {"type": "string", "example": "+6281234567890"},
                    "country": {"type": "string"},
                    "province": {"type": "string"},
                    "city": {"type": "string"},
                    "postal_code": {"type": "string"},
                    "full_address": {"type": "string"}
                }
            },
            "ResetPasswordRequest": {
                "type": "object",
                "required": ["email", "code", "new_password", "confirm_password"],
                "properties": {
                    "email": {"type": "string", "format": "email"},
                    "code": {"type": "string", "pattern": "^[0-9]{6}$"},
                    "new_password": {"type": "string", "minLength": 8, "maxLength": 72},
                    "confirm_password": {"type": "string"}
                }
            },
            "LoginRequest": {
                "type": "object",
                "required": ["email", "password"],
                "properties": {
                    "email": {"type": "string", "format": "email"},
                    "password": {"type": "string"}
                }
            },
            "RefreshRequest": {
                "type": "object",
                "required": ["refresh"],
                "properties": {"refresh": {"type": "string"}}
            },
            "ChangePasswordRequest": {
                "type": "object",
                "required": ["old_password", "new_password", "confirm_new_password"],
                "properties": {
                    "old_password": {"type": "string"},
                    "new_password": {"type": "string", "minLength": 8, "maxLength": 72},
                    "confirm_new_password": {"type": "string"},
                    "refresh_token": {"type": "string"}
                }
            },
            "Tokens": {
                "type": "object",
                "properties": {
                    "access": {"type": "string"},
                    "refresh": {"type": "string"}
                }
            },
            "LoginData": {
                "type": "object",
                "properties": {
                    "access": {"type": "string"},
                    "refresh": {"type": "string"},
                    "user": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "integer", "format": "int64"},
                            "username": {"type": "string"},
                            "email": {"type": "string"},
                            "phone_number": {"type": "string"},
                            "is_setup_complete": {"type": "boolean"}
                        }
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "Bazaar API",
	Description:      "Bazaar provides email OTP registration, password reset and account verification APIs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
