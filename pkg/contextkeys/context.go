package contextkeys

type contextKey string

const (
	// DBContextKey keys the *gorm.DB handle (connection pool or an open
	// test transaction) that DBMiddleware places into the request context.
	DBContextKey contextKey = "db"

	// UserIDContextKey keys the authenticated caller's user id.
	UserIDContextKey contextKey = "userID"

	// UserRolesContextKey keys the caller's role names, loaded from the
	// database by the role middleware.
	UserRolesContextKey contextKey = "userRoles"
)
