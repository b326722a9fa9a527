package dto

// IdentityEvent is the payload shape the identity provider posts on user
// and membership changes (Clerk-style "type" + "data" envelope).
type IdentityEvent struct {
	Type string            `json:"type"`
	Data IdentityEventData `json:"data"`
}

type IdentityEventData struct {
	ID            string `json:"id"`
	Email         string `json:"email_address"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url"`
	Role          string `json:"role"`
	TenantSlug    string `json:"tenant_slug"`
	ExternalOrgID string `json:"organization_id"`
}
