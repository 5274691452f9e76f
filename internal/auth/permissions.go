package auth

import "github.com/arjun/news_aggregator/internal/store"

// Permission names checked before core logic runs.
const (
	PermArticlesView      = "articles.view"
	PermPreferencesView   = "preferences.view"
	PermPreferencesCreate = "preferences.create"
)

// rolePermissions maps each role to the permissions it grants.
var rolePermissions = map[string]map[string]bool{
	"user": {
		PermArticlesView:      true,
		PermPreferencesView:   true,
		PermPreferencesCreate: true,
	},
	"admin": {
		PermArticlesView:      true,
		PermPreferencesView:   true,
		PermPreferencesCreate: true,
	},
}

// Can reports whether the user's role grants the named permission.
func Can(user *store.User, permission string) bool {
	if user == nil {
		return false
	}
	return rolePermissions[user.Role][permission]
}
