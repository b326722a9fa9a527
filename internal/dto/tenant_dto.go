package dto

import (
	"github.com/detailflowhq/detailflow/internal/models"
	"github.com/google/uuid"
)

type CreateTenantRequest struct {
	Name      string                 `json:"name"`
	Slug      string                 `json:"slug"`
	Subdomain string                 `json:"subdomain"`
	Settings  *models.TenantSettings `json:"settings,omitempty"`
}

type UpdateTenantRequest struct {
	Name     *string                `json:"name,omitempty"`
	Settings *models.TenantSettings `json:"settings,omitempty"`
}

type CreateOrganizationRequest struct {
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	ExternalOrgID string    `json:"external_org_id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Address       string    `json:"address"`
	PhoneNumber   string    `json:"phone_number"`
}

type CreateLocationRequest struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
}

type UpdateLocationRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}
