package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ronginpran/checkout-api/internal/common"
	"github.com/ronginpran/checkout-api/internal/variation"
)

// Queries is the catalog read surface the service needs.
type Queries interface {
	GetProductByID(ctx context.Context, id int64) (Product, error)
	ListImagesByProduct(ctx context.Context, productID int64) ([]string, error)
	ListVariationsByProduct(ctx context.Context, productID int64) ([]VariationRecord, error)
	ListAttributesByProduct(ctx context.Context, productID int64) ([]AttributeRecord, error)
}

// Service assembles the product payload a widget instance boots from.
type Service struct {
	DB    Queries
	Cache *Cache
	Log   zerolog.Logger
}

// ProductPayload is the widget boot document: the product itself, its
// gallery, its variation-driving attributes, and its sellable variations.
type ProductPayload struct {
	Product    ProductView     `json:"product"`
	Images     []string        `json:"images"`
	Attributes []AttributeView `json:"attributes"`
	Variations []VariationView `json:"variations"`
}

// ProductView is the product portion of the payload.
type ProductView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	RegularPrice int64  `json:"regular_price"`
	Type         string `json:"type"`
}

// AttributeView is one selectable attribute dimension. Options only include
// values reachable through a sellable variation.
type AttributeView struct {
	Slug    string   `json:"slug"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// VariationView is one sellable variation.
type VariationView struct {
	ID         int64           `json:"id"`
	Price      int64           `json:"price"`
	Attributes []AttributePair `json:"attributes"`
}

// ToVariations converts payload variations to resolver variations with
// normalized attribute slugs.
func ToVariations(views []VariationView) []variation.Variation {
	out := make([]variation.Variation, 0, len(views))
	for _, v := range views {
		attrs := make(map[variation.Slug]string, len(v.Attributes))
		for _, pair := range v.Attributes {
			attrs[variation.NormalizeSlug(pair.Name)] = pair.Option
		}
		out = append(out, variation.Variation{ID: v.ID, Price: v.Price, Attributes: attrs})
	}
	return out
}

func cacheKey(productID int64) string {
	return fmt.Sprintf("catalog:product:%d", productID)
}

// GetProduct loads and assembles the payload for a product, serving from the
// Redis cache when possible. Simple products carry no attributes or
// variations; variable products only expose variations that are in stock and
// purchasable.
func (s *Service) GetProduct(ctx context.Context, productID int64) (ProductPayload, error) {
	key := cacheKey(productID)
	if cached, hit, err := s.Cache.Get(ctx, key); err != nil {
		s.Log.Warn().Err(err).Int64("product_id", productID).Msg("catalog cache read failed")
	} else if hit {
		return cached, nil
	}

	product, err := s.DB.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrNoRows) {
			return ProductPayload{}, common.NotFound("Product not found")
		}
		return ProductPayload{}, err
	}

	images, err := s.DB.ListImagesByProduct(ctx, productID)
	if err != nil {
		return ProductPayload{}, err
	}

	payload := ProductPayload{
		Product: ProductView{
			ID:           product.ID,
			Name:         product.Name,
			Price:        product.Price,
			RegularPrice: product.RegularPrice,
			Type:         product.Type,
		},
		Images: images,
	}

	if product.IsVariable() {
		records, err := s.DB.ListVariationsByProduct(ctx, productID)
		if err != nil {
			return ProductPayload{}, err
		}
		declared, err := s.DB.ListAttributesByProduct(ctx, productID)
		if err != nil {
			return ProductPayload{}, err
		}

		for _, rec := range records {
			if !rec.Sellable() {
				continue
			}
			payload.Variations = append(payload.Variations, VariationView{
				ID:         rec.ID,
				Price:      rec.Price,
				Attributes: rec.Attributes,
			})
		}

		meta := variation.BuildMeta(metaSources(declared), ToVariations(payload.Variations))
		for _, slug := range meta.Slugs() {
			attr, ok := meta.Lookup(slug)
			if !ok {
				continue
			}
			payload.Attributes = append(payload.Attributes, AttributeView{
				Slug:    string(attr.Slug),
				Label:   attr.Label,
				Options: attr.Options,
			})
		}
	}

	if err := s.Cache.Put(ctx, key, payload); err != nil {
		s.Log.Warn().Err(err).Int64("product_id", productID).Msg("catalog cache write failed")
	}
	return payload, nil
}

func metaSources(declared []AttributeRecord) []variation.MetaSource {
	out := make([]variation.MetaSource, 0, len(declared))
	for _, attr := range declared {
		if !attr.UsedForVariation {
			continue
		}
		out = append(out, variation.MetaSource{Slug: attr.Slug, Label: attr.Label})
	}
	return out
}
