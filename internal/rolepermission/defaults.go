package rolepermission

// Default feature grants per role. These are seed data only: once a company
// has records, changing this table does not re-sync existing rows.
var defaultFeatures = map[Role][]string{
	RoleOwner: {
		"dashboard",
		"reports",
		"staff-management",
		"role-management",
		"menu-management",
		"categories",
		"order-management",
		"table-management",
		"kitchen-display",
		"inventory",
		"purchase-orders",
		"customer-management",
		"expenses",
		"accounting",
		"work-periods",
		"loyalty",
		"settings",
		"branches",
		"subscription",
		"qr-menu",
		"notifications",
	},
	RoleManager: {
		"dashboard",
		"reports",
		"staff-management",
		"menu-management",
		"categories",
		"order-management",
		"table-management",
		"kitchen-display",
		"inventory",
		"purchase-orders",
		"customer-management",
		"expenses",
		"work-periods",
		"settings",
		"qr-menu",
		"notifications",
	},
	RoleChef: {
		"dashboard",
		"menu-management",
		"categories",
		"kitchen-display",
		"inventory",
		"purchase-orders",
		"notifications",
	},
	RoleWaiter: {
		"dashboard",
		"order-management",
		"table-management",
		"customer-management",
		"notifications",
	},
	RoleCashier: {
		"dashboard",
		"order-management",
		"customer-management",
		"expenses",
		"work-periods",
		"notifications",
	},
}

// DefaultFeaturesForRole returns a copy of the default feature list for a
// role, or nil for an unrecognized role.
func DefaultFeaturesForRole(role Role) []string {
	features, ok := defaultFeatures[role]
	if !ok {
		return nil
	}
	out := make([]string, len(features))
	copy(out, features)
	return out
}
