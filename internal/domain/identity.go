package domain

// Identity - аутентифицированный кассир из access-токена.
type Identity struct {
	UserID int64
	Role   string
}
