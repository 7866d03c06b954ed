package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/report"
	"github.com/starford/vaultboot/internal/vault"
)

// maxBody bounds request bodies; every request is a small JSON object.
const maxBody = 1 << 20

// VaultService is the subset of the vault engine the handlers call.
type VaultService interface {
	Templates() []catalog.Template
	Template(key string) (catalog.Template, error)
	Create(ctx context.Context, req vault.CreateRequest) (*vault.Created, error)
	Adopt(ctx context.Context, req vault.AdoptRequest) (*vault.Adopted, error)
	Analyze(ctx context.Context, url string) (*vault.Inspection, error)
	History(ctx context.Context, limit int) ([]models.VaultRecord, error)
}

// Handler holds API route handlers.
type Handler struct {
	svc VaultService
}

// NewHandler creates a new Handler.
func NewHandler(svc VaultService) *Handler {
	return &Handler{svc: svc}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// ListTemplates handles GET /api/templates.
//
//	@Summary		List vault templates in declaration order
//	@Tags			templates
//	@Produce		json
//	@Success		200	{object}	TemplateListResponse
//	@Security		BearerAuth
//	@Router			/templates [get]
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TemplateListResponse{Templates: h.svc.Templates()})
}

// GetTemplate handles GET /api/templates/{key}.
//
//	@Summary		Get a single template by key
//	@Tags			templates
//	@Produce		json
//	@Param			key	path		string	true	"Template key"
//	@Success		200	{object}	catalog.Template
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/templates/{key} [get]
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.svc.Template(chi.URLParam(r, "key"))
	if err != nil {
		writeError(w, "get template", err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

// CreateVault handles POST /api/vaults.
//
//	@Summary		Create a vault from a template
//	@Tags			vaults
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateVaultRequest	true	"Vault to create"
//	@Success		201		{object}	VaultResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/vaults [post]
func (h *Handler) CreateVault(w http.ResponseWriter, r *http.Request) {
	var req CreateVaultRequest
	if !decode(w, r, &req) {
		return
	}
	created, err := h.svc.Create(r.Context(), vault.CreateRequest{
		Template: req.Template,
		Name:     req.Name,
		Path:     req.Path,
	})
	if err != nil {
		writeError(w, "create vault", err)
		return
	}
	md, err := report.Created(created)
	if err != nil {
		writeError(w, "render report", err)
		return
	}
	writeJSON(w, http.StatusCreated, VaultResponse{Vault: created, Report: md})
}

// AdoptVault handles POST /api/vaults/adopt.
//
//	@Summary		Create a vault that adopts an external configuration
//	@Tags			vaults
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AdoptVaultRequest	true	"Configuration to adopt"
//	@Success		201		{object}	AdoptResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/vaults/adopt [post]
func (h *Handler) AdoptVault(w http.ResponseWriter, r *http.Request) {
	var req AdoptVaultRequest
	if !decode(w, r, &req) {
		return
	}
	if req.BaseTemplate == "" {
		req.BaseTemplate = catalog.DefaultTemplate
	}
	adopted, err := h.svc.Adopt(r.Context(), vault.AdoptRequest{
		URL:          req.URL,
		Name:         req.Name,
		Path:         req.Path,
		BaseTemplate: req.BaseTemplate,
	})
	if err != nil {
		writeError(w, "adopt vault", err)
		return
	}
	md, err := report.Adopted(adopted)
	if err != nil {
		writeError(w, "render report", err)
		return
	}
	writeJSON(w, http.StatusCreated, AdoptResponse{Vault: adopted, Report: md})
}

// Analyze handles POST /api/analyze.
//
//	@Summary		Analyze an external vault configuration
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			body	body		AnalyzeRequest	true	"Configuration source"
//	@Success		200		{object}	AnalyzeResponse
//	@Failure		400		{object}	errResponse
//	@Failure		502		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/analyze [post]
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !decode(w, r, &req) {
		return
	}
	in, err := h.svc.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, "analyze", err)
		return
	}
	md, err := report.Analysis(in)
	if err != nil {
		writeError(w, "render report", err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{Inspection: in, Report: md})
}

// ListVaults handles GET /api/vaults.
//
//	@Summary		List recorded vaults, newest first
//	@Tags			vaults
//	@Produce		json
//	@Param			limit	query		int	false	"Max results"
//	@Success		200		{object}	VaultListResponse
//	@Security		BearerAuth
//	@Router			/vaults [get]
func (h *Handler) ListVaults(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := h.svc.History(r.Context(), limit)
	if err != nil {
		writeError(w, "list vaults", err)
		return
	}
	writeJSON(w, http.StatusOK, VaultListResponse{Vaults: records})
}
