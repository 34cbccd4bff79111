package catalog_api_client

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Схемы контрактов ответов каталога. Валидация ловит «съехавший» формат
// до маппинга в домен: нарушение схемы — это DecodingError, а не паника
// где-то глубже.

const carSummarySchema = `{
	"$id": "https://autofinder.local/schemas/car-summary.json",
	"type": "object",
	"required": ["id", "model", "price"],
	"properties": {
		"id":       {"type": "integer"},
		"brand":    {"type": "string"},
		"model":    {"type": "string"},
		"year":     {"type": "integer"},
		"price":    {"type": "integer", "minimum": 0},
		"mileage":  {"type": "integer", "minimum": 0},
		"fuel":     {"type": "string"},
		"region":   {"type": "string"},
		"imageUrl": {"type": "string"}
	}
}`

const carPageSchema = `{
	"$id": "https://autofinder.local/schemas/car-page.json",
	"type": "object",
	"required": ["content", "last", "totalElements"],
	"properties": {
		"content": {
			"type": "array",
			"items": {"$ref": "https://autofinder.local/schemas/car-summary.json"}
		},
		"last":          {"type": "boolean"},
		"totalElements": {"type": "integer", "minimum": 0}
	}
}`

const carSummaryListSchema = `{
	"$id": "https://autofinder.local/schemas/car-summary-list.json",
	"type": "array",
	"items": {"$ref": "https://autofinder.local/schemas/car-summary.json"}
}`

const priceAnalysisListSchema = `{
	"$id": "https://autofinder.local/schemas/price-analysis-list.json",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["year", "averagePrice", "listingCount"],
		"properties": {
			"year":         {"type": "integer"},
			"averagePrice": {"type": "integer", "minimum": 0},
			"listingCount": {"type": "integer", "minimum": 0}
		}
	}
}`

const carDetailSchema = `{
	"$id": "https://autofinder.local/schemas/car-detail.json",
	"type": "object",
	"required": ["id", "model", "price"],
	"properties": {
		"id":          {"type": "integer"},
		"brand":       {"type": "string"},
		"model":       {"type": "string"},
		"year":        {"type": "integer"},
		"price":       {"type": "integer", "minimum": 0},
		"mileage":     {"type": "integer", "minimum": 0},
		"fuel":        {"type": "string"},
		"region":      {"type": "string"},
		"imageUrl":    {"type": "string"},
		"description": {"type": "string"},
		"sellerName":  {"type": "string"},
		"listedAt":    {"type": "string"}
	}
}`

var (
	compiledPageSchema        *jsonschema.Schema
	compiledDetailSchema      *jsonschema.Schema
	compiledSummaryListSchema *jsonschema.Schema
	compiledPriceListSchema   *jsonschema.Schema
)

func init() {
	compiler := jsonschema.NewCompiler()

	// Схема карточки добавляется как ресурс, чтобы работал $ref из схем страницы и списка
	for id, src := range map[string]string{
		"https://autofinder.local/schemas/car-summary.json":         carSummarySchema,
		"https://autofinder.local/schemas/car-page.json":            carPageSchema,
		"https://autofinder.local/schemas/car-detail.json":          carDetailSchema,
		"https://autofinder.local/schemas/car-summary-list.json":    carSummaryListSchema,
		"https://autofinder.local/schemas/price-analysis-list.json": priceAnalysisListSchema,
	} {
		if err := compiler.AddResource(id, strings.NewReader(src)); err != nil {
			log.Fatalf("failed to add schema resource %s: %v", id, err)
		}
	}

	compile := func(id string) *jsonschema.Schema {
		schema, err := compiler.Compile(id)
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", id, err)
		}
		return schema
	}

	compiledPageSchema = compile("https://autofinder.local/schemas/car-page.json")
	compiledDetailSchema = compile("https://autofinder.local/schemas/car-detail.json")
	compiledSummaryListSchema = compile("https://autofinder.local/schemas/car-summary-list.json")
	compiledPriceListSchema = compile("https://autofinder.local/schemas/price-analysis-list.json")
}

// validateAgainst проверяет сырые байты ответа по схеме.
func validateAgainst(schema *jsonschema.Schema, raw []byte) error {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return err
	}
	return schema.Validate(value)
}
