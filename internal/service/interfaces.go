package service

import (
	"context"

	"github.com/nutritrack/backend/internal/model"
)

// ProductLookup resolves barcodes and free-text names into products.
// Implemented by the Open Food Facts provider; faked in tests.
type ProductLookup interface {
	LookupBarcode(ctx context.Context, barcode string) (model.ScannedProduct, error)
	SearchByName(ctx context.Context, query string) (model.ScannedProduct, error)
}

// LabelDetector turns a captured product photo into a search label.
type LabelDetector interface {
	DetectProductLabel(ctx context.Context, image []byte) (string, error)
}

// MenuGenerator produces a structured menu plan from a prompt.
type MenuGenerator interface {
	GenerateMenuPlan(ctx context.Context, prompt string) (*GeneratedPlan, error)
}
