package entity

import "time"

// User representa un operador del sistema. El inventario completo (ubicaciones, stock,
// movimientos, productos) está particionado por UserID: es el tenant de cada registro.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca en claro después de persistir
	Name         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
