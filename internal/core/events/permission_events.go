package events

const (
	EventRolePermissionUpdated = "rolepermission.updated"
	EventCompanyUpdated        = "company.updated"
)

// NewRolePermissionUpdatedEvent is published after an administrative
// overwrite of a role's feature list.
func NewRolePermissionUpdatedEvent(companyID, role string, featureCount int, updatedBy *string) BaseEvent {
	data := map[string]interface{}{
		"company_id":    companyID,
		"role":          role,
		"feature_count": featureCount,
	}
	if updatedBy != nil {
		data["updated_by"] = *updatedBy
	}
	return NewBaseEvent(EventRolePermissionUpdated, data)
}

func NewCompanyUpdatedEvent(companyID string) BaseEvent {
	return NewBaseEvent(EventCompanyUpdated, map[string]interface{}{
		"company_id": companyID,
	})
}
