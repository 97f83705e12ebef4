// Command swaggergen generates OpenAPI 3.0 specification files (JSON and YAML)
// for the Weekly Prompt Planner API and writes them to the api/ directory.
//
// Usage:
//
//	go run ./tools/swaggergen
//
// # For Contributors
//
// When you modify the API (add/change endpoints, request/response schemas, etc.),
// update this file to keep the swagger spec in sync:
//
//  1. Endpoints: Edit buildPaths() to add/modify path items and operations
//  2. Schemas: Edit buildSchemas() to add/modify request/response types
//  3. Regenerate: Run `go run ./tools/swaggergen` from the project root
//  4. Verify: Check api/swagger.yaml and api/swagger.json for correctness
//
// Helper functions:
//   - errContent(): Returns standard error response content (reuse for error responses)
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Lightweight OpenAPI 3.0 types
// ---------------------------------------------------------------------------

type OpenAPI struct {
	OpenAPI    string               `json:"openapi"              yaml:"openapi"`
	Info       Info                 `json:"info"                 yaml:"info"`
	Paths      map[string]*PathItem `json:"paths"                yaml:"paths"`
	Components Components           `json:"components"           yaml:"components"`
}

type Info struct {
	Title       string `json:"title"       yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Version     string `json:"version"     yaml:"version"`
}

type PathItem struct {
	Get    *Operation `json:"get,omitempty"    yaml:"get,omitempty"`
	Post   *Operation `json:"post,omitempty"   yaml:"post,omitempty"`
	Put    *Operation `json:"put,omitempty"    yaml:"put,omitempty"`
	Delete *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
}

type Operation struct {
	Tags        []string              `json:"tags"                  yaml:"tags"`
	Summary     string                `json:"summary"               yaml:"summary"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string                `json:"operationId"           yaml:"operationId"`
	Security    []map[string][]string `json:"security,omitempty"    yaml:"security,omitempty"`
	Parameters  []Parameter           `json:"parameters,omitempty"  yaml:"parameters,omitempty"`
	RequestBody *RequestBody          `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   map[string]Response   `json:"responses"             yaml:"responses"`
}

type Parameter struct {
	Name        string `json:"name"        yaml:"name"`
	In          string `json:"in"          yaml:"in"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required"    yaml:"required"`
	Schema      Schema `json:"schema"      yaml:"schema"`
}

type RequestBody struct {
	Required    bool                 `json:"required"              yaml:"required"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Content     map[string]MediaType `json:"content"               yaml:"content"`
}

type MediaType struct {
	Schema Schema `json:"schema" yaml:"schema"`
}

type Response struct {
	Description string               `json:"description"       yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

type Schema struct {
	Type                 string            `json:"type,omitempty"                 yaml:"type,omitempty"`
	Format               string            `json:"format,omitempty"               yaml:"format,omitempty"`
	Description          string            `json:"description,omitempty"          yaml:"description,omitempty"`
	Properties           map[string]Schema `json:"properties,omitempty"           yaml:"properties,omitempty"`
	Items                *Schema           `json:"items,omitempty"                yaml:"items,omitempty"`
	Required             []string          `json:"required,omitempty"             yaml:"required,omitempty"`
	Enum                 []string          `json:"enum,omitempty"                 yaml:"enum,omitempty"`
	Ref                  string            `json:"$ref,omitempty"                 yaml:"$ref,omitempty"`
	AdditionalProperties *Schema           `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	OneOf                []Schema          `json:"oneOf,omitempty"                yaml:"oneOf,omitempty"`
	Example              any               `json:"example,omitempty"              yaml:"example,omitempty"`
}

type Components struct {
	Schemas         map[string]Schema         `json:"schemas"         yaml:"schemas"`
	SecuritySchemes map[string]SecurityScheme `json:"securitySchemes" yaml:"securitySchemes"`
}

type SecurityScheme struct {
	Type         string `json:"type"         yaml:"type"`
	Scheme       string `json:"scheme"       yaml:"scheme"`
	BearerFormat string `json:"bearerFormat" yaml:"bearerFormat"`
	Description  string `json:"description"  yaml:"description"`
}

// ---------------------------------------------------------------------------
// Spec builder
// ---------------------------------------------------------------------------

func buildSpec() OpenAPI {
	bearerAuth := []map[string][]string{{"BearerAuth": {}}}

	return OpenAPI{
		OpenAPI: "3.0.3",
		Info: Info{
			Title:       "Weekly Prompt Planner API",
			Description: "REST API for deterministic weekly social-media prompt plans, trend fusion, CSV export and planner QR codes.",
			Version:     "1.0.0",
		},
		Paths: buildPaths(bearerAuth),
		Components: Components{
			Schemas:         buildSchemas(),
			SecuritySchemes: buildSecuritySchemes(),
		},
	}
}

func buildPaths(bearerAuth []map[string][]string) map[string]*PathItem {
	return map[string]*PathItem{
		"/api/v1/plans": {
			Post: &Operation{
				Tags:        []string{"Plans"},
				Summary:     "Generate a weekly plan",
				Description: "Builds the deterministic 7-day prompt plan for a payload, platform and week. Identical requests always return the identical plan.",
				OperationID: "generatePlan",
				Security:    bearerAuth,
				RequestBody: &RequestBody{
					Required: true,
					Content: map[string]MediaType{
						"application/json": {Schema: Schema{Ref: "#/components/schemas/PlanRequest"}},
					},
				},
				Responses: map[string]Response{
					"200": {
						Description: "The generated weekly plan",
						Content: map[string]MediaType{
							"application/json": {Schema: Schema{Ref: "#/components/schemas/WeeklyPlan"}},
						},
					},
					"400": {Description: "Invalid request body or payload validation error", Content: errContent()},
					"401": {Description: "Unauthorized - missing or invalid JWT"},
					"500": {Description: "Internal server error", Content: errContent()},
				},
			},
		},
		"/api/v1/plans/export": {
			Post: &Operation{
				Tags:        []string{"Plans"},
				Summary:     "Export a weekly plan as CSV",
				Description: "Generates the plan and returns it as an RFC 4180 CSV attachment: one header row plus seven day rows.",
				OperationID: "exportPlan",
				Security:    bearerAuth,
				RequestBody: &RequestBody{
					Required: true,
					Content: map[string]MediaType{
						"application/json": {Schema: Schema{Ref: "#/components/schemas/PlanRequest"}},
					},
				},
				Responses: map[string]Response{
					"200": {Description: "CSV export of the weekly plan"},
					"400": {Description: "Invalid request body or payload validation error", Content: errContent()},
					"401": {Description: "Unauthorized"},
					"500": {Description: "Internal server error", Content: errContent()},
				},
			},
		},
		"/api/v1/qr": {
			Post: &Operation{
				Tags:        []string{"QR"},
				Summary:     "Generate a planner QR code",
				Description: "Builds the final destination URL with UTM attribution and optional payload, and renders it as a PNG QR image.",
				OperationID: "generateQR",
				Security:    bearerAuth,
				RequestBody: &RequestBody{
					Required: true,
					Content: map[string]MediaType{
						"application/json": {Schema: Schema{Ref: "#/components/schemas/QRRequest"}},
					},
				},
				Responses: map[string]Response{
					"200": {
						Description: "Final URL and QR PNG",
						Content: map[string]MediaType{
							"application/json": {Schema: Schema{Ref: "#/components/schemas/QRResponse"}},
						},
					},
					"400": {Description: "Invalid request body or destination URL", Content: errContent()},
					"401": {Description: "Unauthorized"},
					"500": {Description: "QR image generation failed", Content: errContent()},
				},
			},
		},
		"/api/v1/qr/decode": {
			Post: &Operation{
				Tags:        []string{"QR"},
				Summary:     "Decode a QR image",
				Description: "Extracts the text of an uploaded QR image. Returns 503 when the optional decode capability is disabled.",
				OperationID: "decodeQR",
				Security:    bearerAuth,
				RequestBody: &RequestBody{
					Required: true,
					Content: map[string]MediaType{
						"application/json": {Schema: Schema{Ref: "#/components/schemas/DecodeRequest"}},
					},
				},
				Responses: map[string]Response{
					"200": {Description: "Decoded text"},
					"400": {Description: "Invalid request body or base64", Content: errContent()},
					"401": {Description: "Unauthorized"},
					"422": {Description: "No QR code found in the image", Content: errContent()},
					"503": {Description: "Decode capability unavailable", Content: errContent()},
				},
			},
		},
		"/api/v1/catalog/templates": {
			Get: &Operation{
				Tags:        []string{"Catalog"},
				Summary:     "List prompt templates",
				OperationID: "listTemplates",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {
						Description: "The eight fixed prompt templates",
						Content: map[string]MediaType{
							"application/json": {Schema: Schema{
								Type:  "array",
								Items: &Schema{Ref: "#/components/schemas/PromptTemplate"},
							}},
						},
					},
					"401": {Description: "Unauthorized"},
				},
			},
		},
		"/api/v1/catalog/automations": {
			Get: &Operation{
				Tags:        []string{"Catalog"},
				Summary:     "List automation ideas",
				OperationID: "listAutomations",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {
						Description: "The fixed automation catalog",
						Content: map[string]MediaType{
							"application/json": {Schema: Schema{
								Type:  "array",
								Items: &Schema{Ref: "#/components/schemas/AutomationIdea"},
							}},
						},
					},
					"401": {Description: "Unauthorized"},
				},
			},
		},
		"/api/v1/catalog/platforms": {
			Get: &Operation{
				Tags:        []string{"Catalog"},
				Summary:     "List supported platforms",
				OperationID: "listPlatforms",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {
						Description: "The fixed platform profiles",
						Content: map[string]MediaType{
							"application/json": {Schema: Schema{
								Type:  "array",
								Items: &Schema{Ref: "#/components/schemas/PlatformProfile"},
							}},
						},
					},
					"401": {Description: "Unauthorized"},
				},
			},
		},
		"/api/v1/trends/demo": {
			Get: &Operation{
				Tags:        []string{"Trends"},
				Summary:     "Fetch seasonal demo trends",
				Description: "Returns the static seasonal demo trend list for a date (defaults to today). Never a live fetch.",
				OperationID: "demoTrends",
				Security:    bearerAuth,
				Parameters: []Parameter{{
					Name:        "date",
					In:          "query",
					Description: "ISO date selecting the season (YYYY-MM-DD)",
					Required:    false,
					Schema:      Schema{Type: "string", Format: "date"},
				}},
				Responses: map[string]Response{
					"200": {Description: "Demo trend list"},
					"400": {Description: "Malformed date", Content: errContent()},
					"401": {Description: "Unauthorized"},
				},
			},
		},
		"/api/v1/session/payload": {
			Get: &Operation{
				Tags:        []string{"Session"},
				Summary:     "Fetch the stored payload",
				OperationID: "getSessionPayload",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "The user's last stored payload"},
					"401": {Description: "Unauthorized"},
					"404": {Description: "No payload stored", Content: errContent()},
				},
			},
			Put: &Operation{
				Tags:        []string{"Session"},
				Summary:     "Store a payload for reuse",
				OperationID: "putSessionPayload",
				Security:    bearerAuth,
				RequestBody: &RequestBody{
					Required: true,
					Content: map[string]MediaType{
						"application/json": {Schema: Schema{
							Type: "object",
							Properties: map[string]Schema{
								"payload": {Description: "QR payload object or bare URL string"},
							},
							Required: []string{"payload"},
						}},
					},
				},
				Responses: map[string]Response{
					"200": {Description: "Payload stored"},
					"400": {Description: "Invalid payload", Content: errContent()},
					"401": {Description: "Unauthorized"},
				},
			},
			Delete: &Operation{
				Tags:        []string{"Session"},
				Summary:     "Clear the stored payload",
				OperationID: "deleteSessionPayload",
				Security:    bearerAuth,
				Responses: map[string]Response{
					"200": {Description: "Payload cleared"},
					"401": {Description: "Unauthorized"},
				},
			},
		},
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func errContent() map[string]MediaType {
	return map[string]MediaType{
		"application/json": {Schema: Schema{Ref: "#/components/schemas/ErrorResponse"}},
	}
}

func buildSecuritySchemes() map[string]SecurityScheme {
	return map[string]SecurityScheme{
		"BearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  "JWT token with a 'sub' claim identifying the user.",
		},
	}
}

func buildSchemas() map[string]Schema {
	return map[string]Schema{
		"ErrorResponse": {
			Type: "object",
			Properties: map[string]Schema{
				"error": {Type: "string", Description: "Human-readable error message"},
			},
			Required: []string{"error"},
		},
		"PlanRequest": {
			Type:        "object",
			Description: "Inputs of one plan generation. week_of may be any date of the wanted week; it snaps to Monday.",
			Properties: map[string]Schema{
				"payload": {
					Description: "Raw QR payload: a JSON object with EtsyPlannerURL, AILesson, trends (and optional brand/platform), or a bare URL string",
				},
				"platform": {
					Type: "string",
					Enum: []string{"Instagram", "TikTok", "LinkedIn", "X (Twitter)", "YouTube Shorts", "Facebook"},
				},
				"week_of":         {Type: "string", Format: "date"},
				"manual_trends":   {Type: "string", Description: "Trend tokens separated by commas or newlines"},
				"use_demo_trends": {Type: "boolean"},
			},
			Required: []string{"week_of"},
		},
		"WeeklyPlan": {
			Type:        "object",
			Description: "A deterministic 7-day plan, Monday through Sunday.",
			Properties: map[string]Schema{
				"week_start": {Type: "string", Format: "date"},
				"platform":   {Type: "string"},
				"days": {
					Type:  "array",
					Items: &Schema{Ref: "#/components/schemas/DayPlan"},
				},
			},
			Required: []string{"week_start", "platform", "days"},
		},
		"DayPlan": {
			Type: "object",
			Properties: map[string]Schema{
				"date":       {Type: "string", Format: "date"},
				"theme":      {Type: "string", Example: "Motivation Monday"},
				"hook":       {Type: "string"},
				"platform":   {Type: "string"},
				"category":   {Type: "string", Example: "Engagement"},
				"prompt":     {Type: "string"},
				"automation": {Ref: "#/components/schemas/AutomationIdea"},
			},
			Required: []string{"date", "theme", "hook", "platform", "category", "prompt", "automation"},
		},
		"PromptTemplate": {
			Type: "object",
			Properties: map[string]Schema{
				"category":  {Type: "string"},
				"base_text": {Type: "string"},
			},
			Required: []string{"category", "base_text"},
		},
		"AutomationIdea": {
			Type: "object",
			Properties: map[string]Schema{
				"title": {Type: "string"},
				"idea":  {Type: "string"},
				"tools": {Type: "string"},
			},
			Required: []string{"title", "idea", "tools"},
		},
		"PlatformProfile": {
			Type: "object",
			Properties: map[string]Schema{
				"name":          {Type: "string"},
				"hint":          {Type: "string"},
				"hashtag_limit": {Type: "integer"},
			},
			Required: []string{"name", "hint", "hashtag_limit"},
		},
		"QRRequest": {
			Type: "object",
			Properties: map[string]Schema{
				"destination_url": {Type: "string"},
				"payload":         {Type: "string", Description: "Optional JSON or free text attached to the URL"},
			},
			Required: []string{"destination_url"},
		},
		"QRResponse": {
			Type: "object",
			Properties: map[string]Schema{
				"final_url":  {Type: "string"},
				"png_base64": {Type: "string"},
			},
			Required: []string{"final_url", "png_base64"},
		},
		"DecodeRequest": {
			Type: "object",
			Properties: map[string]Schema{
				"image_base64": {Type: "string"},
			},
			Required: []string{"image_base64"},
		},
	}
}

// ---------------------------------------------------------------------------
// File writers
// ---------------------------------------------------------------------------

func writeJSON(spec OpenAPI, path string) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

func writeYAML(spec OpenAPI, path string) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshal YAML: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func main() {
	_, src, _, _ := runtime.Caller(0)
	outDir := filepath.Join(filepath.Join(filepath.Dir(src), "..", ".."), "api")

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create api/ directory: %v\n", err)
		os.Exit(1)
	}

	spec := buildSpec()

	jsonPath := filepath.Join(outDir, "swagger.json")
	if err := writeJSON(spec, jsonPath); err != nil {
		fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
		os.Exit(1)
	}

	yamlPath := filepath.Join(outDir, "swagger.yaml")
	if err := writeYAML(spec, yamlPath); err != nil {
		fmt.Fprintf(os.Stderr, "error writing YAML: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Swagger specs generated:\n  %s\n  %s\n", jsonPath, yamlPath)
}
