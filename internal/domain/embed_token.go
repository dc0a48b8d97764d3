package domain

import "time"

// EmbedToken representa una consulta guardada con acceso por token temporal.
// El registro es inmutable despues de creado; la expiración se deriva
// comparando ExpiresAt contra el reloj en cada lectura.
type EmbedToken struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	CypherQuery string    `json:"cypher_query"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired indica si el token ya no es válido en el instante dado.
func (t EmbedToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
