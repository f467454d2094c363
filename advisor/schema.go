package advisor

import (
	"encoding/json"
	"fmt"

	"google.golang.org/genai"
)

// Declared response schemas, one per operation. They are embedded in
// the request instruction and the response document is validated
// against them before decoding.

var discoverSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"stocks"},
	Properties: map[string]*genai.Schema{
		"stocks": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"ticker", "name", "price"},
				Properties: map[string]*genai.Schema{
					"ticker":    {Type: genai.TypeString, Description: "Exchange ticker symbol."},
					"name":      {Type: genai.TypeString, Description: "Company name."},
					"price":     {Type: genai.TypeNumber, Description: "Latest share price in USD."},
					"marketCap": {Type: genai.TypeString, Description: "Approximate market capitalization."},
					"reason":    {Type: genai.TypeString, Description: "One sentence on why the stock is interesting."},
				},
			},
		},
	},
}

var analyzeSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"ticker", "recommendation", "currentPrice", "confidence", "analysis"},
	Properties: map[string]*genai.Schema{
		"ticker":         {Type: genai.TypeString},
		"recommendation": {Type: genai.TypeString, Enum: []string{"BUY", "SELL", "HOLD"}},
		"currentPrice":   {Type: genai.TypeNumber, Description: "Latest share price in USD."},
		"confidence":     {Type: genai.TypeNumber, Description: "Confidence in the recommendation, 0 to 100."},
		"analysis":       {Type: genai.TypeString, Description: "A few paragraphs of analysis."},
	},
}

var predictSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"predictions", "rationale"},
	Properties: map[string]*genai.Schema{
		"predictions": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"date", "totalValue"},
				Properties: map[string]*genai.Schema{
					"date":       {Type: genai.TypeString, Description: "Forecast day, format 2006-01-02."},
					"totalValue": {Type: genai.TypeNumber, Description: "Projected total portfolio value in USD."},
				},
			},
		},
		"rationale": {Type: genai.TypeString},
	},
}

var overviewSchema = &genai.Schema{
	Type:     genai.TypeObject,
	Required: []string{"indices"},
	Properties: map[string]*genai.Schema{
		"indices": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"name", "value", "changePercent"},
				Properties: map[string]*genai.Schema{
					"name":          {Type: genai.TypeString},
					"value":         {Type: genai.TypeNumber},
					"changePercent": {Type: genai.TypeNumber},
				},
			},
		},
	},
}

// renderSchema serializes a declared schema for embedding in the
// request instruction.
func renderSchema(s *genai.Schema) string {
	data, err := json.Marshal(s)
	if err != nil {
		// Schemas are package constants; a marshal failure is a bug.
		panic(err.Error())
	}
	return string(data)
}

// validateSchema checks a decoded JSON document against a declared
// schema. It walks objects, arrays, enums and scalar kinds; unknown
// extra fields are tolerated, missing required fields are not.
func validateSchema(doc any, s *genai.Schema, at string) error {
	switch s.Type {
	case genai.TypeObject:
		obj, ok := doc.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object, got %T", at, doc)
		}
		for _, req := range s.Required {
			if _, ok := obj[req]; !ok {
				return fmt.Errorf("%s: missing required field %q", at, req)
			}
		}
		for name, prop := range s.Properties {
			value, ok := obj[name]
			if !ok {
				continue // optional and absent
			}
			if err := validateSchema(value, prop, at+"."+name); err != nil {
				return err
			}
		}
	case genai.TypeArray:
		items, ok := doc.([]any)
		if !ok {
			return fmt.Errorf("%s: expected array, got %T", at, doc)
		}
		if s.Items != nil {
			for i, item := range items {
				if err := validateSchema(item, s.Items, fmt.Sprintf("%s[%d]", at, i)); err != nil {
					return err
				}
			}
		}
	case genai.TypeString:
		str, ok := doc.(string)
		if !ok {
			return fmt.Errorf("%s: expected string, got %T", at, doc)
		}
		if len(s.Enum) > 0 {
			for _, allowed := range s.Enum {
				if str == allowed {
					return nil
				}
			}
			return fmt.Errorf("%s: %q not in enum %v", at, str, s.Enum)
		}
	case genai.TypeNumber, genai.TypeInteger:
		if _, ok := doc.(float64); !ok {
			return fmt.Errorf("%s: expected number, got %T", at, doc)
		}
	case genai.TypeBoolean:
		if _, ok := doc.(bool); !ok {
			return fmt.Errorf("%s: expected boolean, got %T", at, doc)
		}
	}
	return nil
}
