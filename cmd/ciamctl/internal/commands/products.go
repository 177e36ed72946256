package commands

import (
	"context"
)

// ProductsCmd manages products.
type ProductsCmd struct {
	List   ProductsListCmd   `cmd:"" help:"List products"`
	Get    ProductsGetCmd    `cmd:"" help:"Get products by ID"`
	Create ProductsCreateCmd `cmd:"" help:"Create a product"`
	Update ProductsUpdateCmd `cmd:"" help:"Update a product"`
	Delete ProductsDeleteCmd `cmd:"" help:"Delete a product"`
}

var productSpec = resourceSpec{
	singular: "product",
	plural:   "products",
	path:     "/products",
	summary: func(data map[string]any) string {
		return stringField(data, "name", "N/A")
	},
	detail: func(data map[string]any) string {
		if sku := stringField(data, "sku", ""); sku != "" {
			return "SKU: " + sku
		}
		return ""
	},
}

// ProductsListCmd lists products.
type ProductsListCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *ProductsListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("list products")
	return nil
}

// ProductsGetCmd fetches one or more products by id.
type ProductsGetCmd struct {
	IDs     []string `arg:"" help:"Product ID(s)"`
	StoreID string   `name:"store-id" help:"Store ID"`
}

func (c *ProductsGetCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	getByIDs(ctx, globals, rt, productSpec, c.IDs)
	return nil
}

// ProductsCreateCmd creates a product.
type ProductsCreateCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *ProductsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("create product")
	return nil
}

// ProductsUpdateCmd updates a product.
type ProductsUpdateCmd struct {
	ID      string `arg:"" help:"Product ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *ProductsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("update product")
	return nil
}

// ProductsDeleteCmd deletes a product.
type ProductsDeleteCmd struct {
	ID      string `arg:"" help:"Product ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *ProductsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("delete product")
	return nil
}
