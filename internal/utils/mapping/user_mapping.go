package mapping

import (
	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	"github.com/darwincarillo2003/liquidation-backend/internal/models"
)

// ToModelUser converts a domain User to its row shape.
func ToModelUser(d domain.User) models.User {
	var orgID *string
	if d.OrganizationID != "" {
		id := d.OrganizationID
		orgID = &id
	}
	return models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		Role:           string(d.Role),
		OrganizationID: orgID,
		DeletedAt:      d.DeletedAt,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a user row to the domain shape.
func ToDomainUser(m models.User) domain.User {
	orgID := ""
	if m.OrganizationID != nil {
		orgID = *m.OrganizationID
	}
	return domain.User{
		UserID:         m.UserID,
		Username:       m.Username,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           domain.Role(m.Role),
		OrganizationID: orgID,
		DeletedAt:      m.DeletedAt,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
