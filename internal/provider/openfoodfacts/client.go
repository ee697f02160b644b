package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nutritrack/backend/internal/model"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// Client looks products up in the Open Food Facts database. The zero value
// is usable; BaseURL and HTTPClient exist for tests.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a Client against the given base URL. An empty baseURL
// falls back to the public instance.
func NewClient(baseURL string) *Client {
	return &Client{BaseURL: baseURL}
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	Brands          string         `json:"brands"`
	Categories      string         `json:"categories"`
	IngredientsText string         `json:"ingredients_text"`
	AllergensTags   []string       `json:"allergens_tags"`
	Nutriments      map[string]any `json:"nutriments"`
}

// LookupBarcode resolves a barcode into a normalized ScannedProduct with
// per-100g nutrition.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (model.ScannedProduct, error) {
	body, err := c.get(ctx, fmt.Sprintf("/api/v2/product/%s.json", url.PathEscape(barcode)))
	if err != nil {
		return model.ScannedProduct{}, err
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.ScannedProduct{}, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return model.ScannedProduct{}, fmt.Errorf("no openfoodfacts product found for barcode %q", barcode)
	}

	product := toScannedProduct(parsed.Product)
	product.Barcode = barcode
	return product, nil
}

// SearchByName resolves a free-text product name to the best match, used by
// the image scan path after label detection.
func (c *Client) SearchByName(ctx context.Context, query string) (model.ScannedProduct, error) {
	path := fmt.Sprintf("/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page_size=5",
		url.QueryEscape(strings.TrimSpace(query)))
	body, err := c.get(ctx, path)
	if err != nil {
		return model.ScannedProduct{}, err
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.ScannedProduct{}, fmt.Errorf("decode openfoodfacts search response: %w", err)
	}
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		product := toScannedProduct(p)
		product.Barcode = strings.TrimSpace(p.Code)
		return product, nil
	}
	return model.ScannedProduct{}, fmt.Errorf("no openfoodfacts product found for query %q", query)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "nutritrack-backend/1.0 (+https://github.com/nutritrack/backend)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

func toScannedProduct(p offProduct) model.ScannedProduct {
	return model.ScannedProduct{
		Name:     strings.TrimSpace(p.ProductName),
		Brand:    strings.TrimSpace(p.Brands),
		Category: firstCategory(p.Categories),
		Nutrition: model.NutritionPer100G{
			Calories: nutrientPer100g(p.Nutriments, "energy-kcal"),
			Protein:  nutrientPer100g(p.Nutriments, "proteins"),
			Carbs:    nutrientPer100g(p.Nutriments, "carbohydrates"),
			Fat:      nutrientPer100g(p.Nutriments, "fat"),
			Fiber:    nutrientPer100g(p.Nutriments, "fiber"),
			Sugar:    nutrientPer100g(p.Nutriments, "sugars"),
			Sodium:   nutrientPer100g(p.Nutriments, "sodium") * 1000, // g -> mg
		},
		Ingredients: splitIngredients(p.IngredientsText),
		Allergens:   cleanAllergenTags(p.AllergensTags),
	}
}

func nutrientPer100g(n map[string]any, base string) float64 {
	if v, ok := parseFloatAny(n[base+"_100g"]); ok {
		return v
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(t), "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

func firstCategory(categories string) string {
	for _, c := range strings.Split(categories, ",") {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return ""
}

func splitIngredients(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// cleanAllergenTags strips the taxonomy language prefix ("en:milk" -> "milk").
func cleanAllergenTags(tags []string) []string {
	out := []string{}
	for _, tag := range tags {
		if i := strings.Index(tag, ":"); i >= 0 {
			tag = tag[i+1:]
		}
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
