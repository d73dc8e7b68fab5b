package catalog

import "context"

type memoryRepository struct {
    products []Product
}

// NewMemoryRepository serves a fixed product list. A nil list serves DefaultMenu.
func NewMemoryRepository(products []Product) Repository {
    if products == nil {
        products = DefaultMenu
    }
    return &memoryRepository{products: products}
}

func (r *memoryRepository) List(_ context.Context) ([]Product, error) {
    out := make([]Product, len(r.products))
    copy(out, r.products)
    return out, nil
}
