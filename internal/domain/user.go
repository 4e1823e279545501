package domain

import "time"

type Role struct {
	ID   int64  `json:"id_rol"`
	Name string `json:"nombre_rol"`
}

// Permission names a UI module the user may open.
type Permission struct {
	ModuleID   int64  `json:"id_modulo,omitempty"`
	ModuleName string `json:"nombre_modulo,omitempty"`
	Route      string `json:"ruta,omitempty"`
	Key        string `json:"clave,omitempty"`
}

type User struct {
	ID          int64        `json:"id_usuario,omitempty"`
	Username    string       `json:"nombre_usuario"`
	Password    string       `json:"contrasena,omitempty"`
	RoleID      int64        `json:"id_rol,omitempty"`
	RoleName    string       `json:"nombre_rol,omitempty"`
	Role        string       `json:"rol,omitempty"`
	Permissions []Permission `json:"permisos,omitempty"`
}

// RoleLabel returns whichever role field the backend filled in.
func (u User) RoleLabel() string {
	if u.Role != "" {
		return u.Role
	}
	return u.RoleName
}

// TerminalSession binds an issued terminal token to the user that logged in.
type TerminalSession struct {
	Token      string    `json:"token"`
	TerminalID string    `json:"terminalId"`
	User       User      `json:"user"`
	CreatedAt  time.Time `json:"createdAt"`
}
