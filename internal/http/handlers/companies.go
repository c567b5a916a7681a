package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ftmlabs/directory-api/internal/config"
	"github.com/ftmlabs/directory-api/internal/domain/company"
	"github.com/ftmlabs/directory-api/internal/repo/postgres"
	"github.com/gin-gonic/gin"
)

type CompaniesStore interface {
	List(ctx context.Context, limit, offset int) ([]company.Company, error)
	GetByID(ctx context.Context, id int64) (company.Company, error)
	Create(ctx context.Context, req company.CreateCompanyRequest) (company.Company, error)
	Update(ctx context.Context, id int64, req company.UpdateCompanyRequest) (company.Company, error)
	Delete(ctx context.Context, id int64) error
}

type CompaniesHandler struct {
	repo CompaniesStore
}

func NewCompaniesHandler(repo CompaniesStore) *CompaniesHandler {
	return &CompaniesHandler{repo: repo}
}

func (h *CompaniesHandler) ListCompanies(ctx *gin.Context) {
	limit, offset, ok := pagination(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	companies, err := h.repo.List(cctx, limit, offset)

	if err != nil {
		logErr(ctx, "companies.list", err)
		RespondInternal(ctx, "Could not list companies")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": companies,
		"count": len(companies),
	})
}

func (h *CompaniesHandler) GetCompanyByID(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	found, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			RespondNotFound(ctx, "Company not found")
			return
		}

		logErr(ctx, "companies.get", err)
		RespondInternal(ctx, "Could not fetch company")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, found)
}

func (h *CompaniesHandler) CreateCompany(ctx *gin.Context) {
	var req company.CreateCompanyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, postgres.ErrDuplicate) {
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "SIRET_number", Rule: "unique", Message: "is already registered"},
			})
			return
		}

		logErr(ctx, "companies.create", err)
		RespondInternal(ctx, "Could not create company")
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (h *CompaniesHandler) UpdateCompany(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	var req company.UpdateCompanyRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	updated, err := h.repo.Update(cctx, id, req)

	if err != nil {
		switch {
		case errors.Is(err, company.ErrNotFound):
			RespondNotFound(ctx, "Company not found")
		case errors.Is(err, postgres.ErrDuplicate):
			RespondValidation(ctx, "Validation failed", []FieldError{
				{Field: "SIRET_number", Rule: "unique", Message: "is already registered"},
			})
		default:
			logErr(ctx, "companies.update", err)
			RespondInternal(ctx, "Could not update company")
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// DeleteCompany leaves employees in place; the schema sets their company
// link to NULL rather than removing accounts.
func (h *CompaniesHandler) DeleteCompany(ctx *gin.Context) {
	id, ok := idParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			RespondNotFound(ctx, "Company not found")
			return
		}

		logErr(ctx, "companies.delete", err)
		RespondInternal(ctx, "Could not delete company")
		return
	}

	ctx.Status(http.StatusNoContent)
}
