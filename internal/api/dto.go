package api

import (
	"github.com/starford/vaultboot/internal/catalog"
	"github.com/starford/vaultboot/internal/models"
	"github.com/starford/vaultboot/internal/vault"
)

// CreateVaultRequest is the request body for creating a vault.
type CreateVaultRequest struct {
	Template string `json:"template" example:"pkm" validate:"required"`
	Name     string `json:"name" example:"Second-Brain" validate:"required"`
	Path     string `json:"path,omitempty" example:"~/Documents/Obsidian"`
}

// AdoptVaultRequest is the request body for adopting an external configuration.
type AdoptVaultRequest struct {
	URL          string `json:"url" example:"https://github.com/user/vault-config" validate:"required"`
	Name         string `json:"name" example:"Notes" validate:"required"`
	Path         string `json:"path,omitempty" example:"~/Documents/Obsidian"`
	BaseTemplate string `json:"baseTemplate,omitempty" example:"minimal"`
}

// AnalyzeRequest is the request body for analyzing an external configuration.
type AnalyzeRequest struct {
	URL string `json:"url" example:"https://github.com/user/vault-config" validate:"required"`
}

// TemplateListResponse wraps the template registry.
type TemplateListResponse struct {
	Templates []catalog.Template `json:"templates" validate:"required"`
}

// VaultResponse is returned after a vault is created.
type VaultResponse struct {
	Vault  *vault.Created `json:"vault" validate:"required"`
	Report string         `json:"report" validate:"required"`
}

// AdoptResponse is returned after a vault is adopted.
type AdoptResponse struct {
	Vault  *vault.Adopted `json:"vault" validate:"required"`
	Report string         `json:"report" validate:"required"`
}

// AnalyzeResponse is returned after an external configuration is analyzed.
type AnalyzeResponse struct {
	Inspection *vault.Inspection `json:"inspection" validate:"required"`
	Report     string            `json:"report" validate:"required"`
}

// VaultListResponse wraps recorded vaults, newest first.
type VaultListResponse struct {
	Vaults []models.VaultRecord `json:"vaults" validate:"required"`
}
