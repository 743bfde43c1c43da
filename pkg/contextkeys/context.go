package contextkeys

type contextKey string

// AdminContextKey holds the authorized *models.Admin on a gin.Context.
const AdminContextKey = contextKey("admin")

// AdminIDHeader carries a bare admin identifier for clients without a token.
const AdminIDHeader = "X-Admin-Id"
