package promo

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/knightempire/e-commerce-frontend/internal/pricing"
	apperrors "github.com/knightempire/e-commerce-frontend/pkg/errors"
)

// Catalog resolves promo codes to discounts. Codes are matched without
// regard to case or surrounding spaces. A Catalog is read-only after
// construction.
type Catalog struct {
	codes map[string]pricing.Discount
}

// Default is the built-in catalog used when no file is configured.
func Default() *Catalog {
	return &Catalog{codes: map[string]pricing.Discount{
		"SAVE10":  {Kind: pricing.Percentage, Value: decimal.NewFromInt(10)},
		"SAVE20":  {Kind: pricing.Percentage, Value: decimal.NewFromInt(20)},
		"FIRST50": {Kind: pricing.FixedAmount, Value: decimal.NewFromInt(50)},
	}}
}

type fileEntry struct {
	Code  string  `yaml:"code"`
	Kind  string  `yaml:"kind"`
	Value float64 `yaml:"value"`
}

type file struct {
	Codes []fileEntry `yaml:"codes"`
}

// Load reads a YAML catalog:
//
//	codes:
//	  - code: SAVE10
//	    kind: percentage
//	    value: 10
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read promo catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse promo catalog: %w", err)
	}

	c := &Catalog{codes: make(map[string]pricing.Discount, len(f.Codes))}
	for i, e := range f.Codes {
		code := normalize(e.Code)
		if code == "" {
			return nil, fmt.Errorf("promo catalog entry %d: code is required", i)
		}
		if _, dup := c.codes[code]; dup {
			return nil, fmt.Errorf("promo catalog entry %d: duplicate code %s", i, code)
		}
		kind, err := pricing.ParseDiscountKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("promo catalog entry %s: %w", code, err)
		}
		if e.Value <= 0 {
			return nil, fmt.Errorf("promo catalog entry %s: value must be positive", code)
		}
		c.codes[code] = pricing.Discount{Kind: kind, Value: decimal.NewFromFloat(e.Value)}
	}

	return c, nil
}

// Resolve returns the discount for code, or an invalid-input error when the
// code is unknown.
func (c *Catalog) Resolve(code string) (pricing.Discount, error) {
	d, ok := c.codes[normalize(code)]
	if !ok {
		return pricing.Discount{}, apperrors.InvalidInput("invalid promo code")
	}
	return d, nil
}

// Codes lists the known codes in sorted order.
func (c *Catalog) Codes() []string {
	out := make([]string, 0, len(c.codes))
	for code := range c.codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
