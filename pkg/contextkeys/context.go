package contextkeys

// Кастомный тип, чтобы избежать коллизий ключей
type contextKey string

// DBContextKey - ключ, по которому в gin.Context лежит *gorm.DB
const DBContextKey = contextKey("db")

// Ключи аутентифицированного запроса
const (
	AccountKey = "account"
	UserIDKey  = "userID"
	RoleKey    = "role"
	TokenKey   = "token"
)
