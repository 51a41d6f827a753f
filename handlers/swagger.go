package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>recipebook API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the service's endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "recipebook", "version": "v0.1.0" },
  "paths": {
    "/auth/register": {
      "post": {
        "summary": "Register a new account",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","password"],"properties":{"name":{"type":"string"},"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "201": { "description": "account created, token returned" }, "409": { "description": "email already registered" } }
      }
    },
    "/auth/login": {
      "post": {
        "summary": "Log in with email and password",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["email","password"],"properties":{"email":{"type":"string"},"password":{"type":"string"}}}}}},
        "responses": { "200": { "description": "token returned" }, "401": { "description": "invalid credentials" }, "404": { "description": "unknown email" } }
      }
    },
    "/api/v1/users": { "get": { "summary": "List users", "responses": { "200": { "description": "users" } } } },
    "/api/v1/me": { "get": { "summary": "Current account", "responses": { "200": { "description": "user" }, "401": { "description": "no identity" } } } },
    "/api/v1/recipes": {
      "get": { "summary": "List recipes (optionally ?category=)", "responses": { "200": { "description": "recipes" } } },
      "post": { "summary": "Create a recipe", "responses": { "201": { "description": "created" }, "401": { "description": "authentication required" } } }
    },
    "/api/v1/recipes/{id}": {
      "get": { "summary": "Recipe detail", "responses": { "200": { "description": "recipe" }, "404": { "description": "not found" } } },
      "patch": { "summary": "Partially update an owned recipe", "responses": { "200": { "description": "updated" }, "404": { "description": "not found" } } },
      "delete": { "summary": "Delete an owned recipe, returning it", "responses": { "200": { "description": "deleted record" }, "404": { "description": "not found" } } }
    },
    "/api/v1/recipes/{id}/image": {
      "post": { "summary": "Upload a recipe image (multipart)", "responses": { "200": { "description": "stored" }, "503": { "description": "image storage disabled" } } }
    },
    "/api/notes": {
      "get": { "summary": "List the caller's notes", "responses": { "200": { "description": "notes with owner profile" }, "401": { "description": "authentication required" } } },
      "post": { "summary": "Create a note", "responses": { "201": { "description": "created" } } }
    },
    "/api/ai/chat": { "post": { "summary": "Proxy a chat request upstream", "responses": { "200": { "description": "upstream response" }, "503": { "description": "chat disabled" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
