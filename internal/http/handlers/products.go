package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/product"
	"github.com/gin-gonic/gin"
)

type ProductsStore interface {
	List(ctx context.Context, label string) ([]product.Product, error)
	GetByID(ctx context.Context, id int64) (product.Product, error)
	Create(ctx context.Context, req product.CreateProductRequest) (product.Product, error)
	Update(ctx context.Context, id int64, req product.UpdateProductRequest) (product.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductsHandler struct {
	repo ProductsStore
}

func NewProductsHandler(repo ProductsStore) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	products, err := h.repo.List(cctx, ctx.Query("product"))

	if err != nil {
		logErr(ctx, "products.list", err)
		RespondInternal(ctx, "Could not list products")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": products,
		"count": len(products),
	})
}

func (h *ProductsHandler) GetProductByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		logErr(ctx, "products.get", err)
		RespondInternal(ctx, "Could not fetch product")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		logErr(ctx, "products.create", err)
		RespondInternal(ctx, "Could not create product")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *ProductsHandler) UpdateProduct(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req product.UpdateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		logErr(ctx, "products.update", err)
		RespondInternal(ctx, "Could not update product")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *ProductsHandler) DeleteProduct(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondNotFound(ctx, "Product not found")
			return
		}

		logErr(ctx, "products.delete", err)
		RespondInternal(ctx, "Could not delete product")
		return
	}

	ctx.Status(http.StatusNoContent)
}
