package auth

type AdminClaimsData struct {
	AdminID   string
	Email     string
	ExpiresAt int64
	IssuedAt  int64
}
