package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger serves Swagger UI and an OpenAPI document generated from
// the /api/docs route table.
// - GET /swagger/index.html
// - GET /swagger/doc.json
func RegisterSwagger(r gin.IRoutes) {
	spec := openAPI()
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.JSON(http.StatusOK, spec)
	})
}

func openAPI() gin.H {
	paths := map[string]map[string]interface{}{}
	for _, domain := range docOrder {
		for _, rt := range apiEndpoints[domain].Routes {
			p := "/api" + openAPIPath(rt.Path)
			if paths[p] == nil {
				paths[p] = map[string]interface{}{}
			}
			op := gin.H{
				"tags":      []string{domain},
				"summary":   rt.Description,
				"responses": gin.H{"200": gin.H{"description": "success"}},
			}
			if params := pathParams(rt.Path); len(params) > 0 {
				op["parameters"] = params
			}
			if rt.Auth != "" {
				op["security"] = []gin.H{{"bearerAuth": []string{}}}
			}
			paths[p][strings.ToLower(rt.Method)] = op
		}
	}
	paths["/health"] = map[string]interface{}{"get": gin.H{"summary": "Liveness check", "responses": gin.H{"200": gin.H{"description": "healthy"}}}}
	paths["/ready"] = map[string]interface{}{"get": gin.H{"summary": "Readiness check", "responses": gin.H{"200": gin.H{"description": "ready"}, "503": gin.H{"description": "not ready"}}}}

	return gin.H{
		"openapi": "3.0.0",
		"info":    gin.H{"title": apiName, "version": apiVersion},
		"paths":   paths,
		"components": gin.H{
			"securitySchemes": gin.H{"bearerAuth": gin.H{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}},
		},
	}
}

// openAPIPath rewrites gin's :param segments as {param}.
func openAPIPath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segs, "/")
}

func pathParams(p string) []gin.H {
	var out []gin.H
	for _, s := range strings.Split(p, "/") {
		if strings.HasPrefix(s, ":") {
			out = append(out, gin.H{"name": s[1:], "in": "path", "required": true, "schema": gin.H{"type": "string"}})
		}
	}
	return out
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>EcoHealth Sentinel API</title>
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
