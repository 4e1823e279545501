package account

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"sowin-pos/internal/domain"
)

// FoldKey lowercases s, strips diacritics and drops everything that is not
// an ASCII letter or digit, so "CATEGORÍAS" and "/categorias" compare equal.
func FoldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}
	var b strings.Builder
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Module is a screen guarded by a permission.
type Module struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Route string `json:"route"`
}

var (
	ModuleDashboard  = Module{ID: "dashboard", Title: "DASHBOARD", Route: "/"}
	ModuleCategories = Module{ID: "categorias", Title: "CATEGORÍAS", Route: "/categorias"}
	ModuleInventory  = Module{ID: "inventarioP", Title: "INVENTARIO", Route: "/inventarioP"}
	ModuleEntries    = Module{ID: "entradaDProductos", Title: "ENTRADA/PRODUCTOS", Route: "/entradaDProductos"}
	ModuleMovements  = Module{ID: "movimientosP", Title: "MOVIMIENTOS", Route: "/movimientosP"}
	ModuleSales      = Module{ID: "ventasCaja", Title: "VENTAS CAJA", Route: "/ventasCaja"}
	ModuleSuppliers  = Module{ID: "proveedores", Title: "PROVEEDORES", Route: "/proveedores"}
	ModuleUsers      = Module{ID: "usuarios", Title: "USUARIOS", Route: "/usuarios"}
)

var Modules = []Module{
	ModuleDashboard, ModuleCategories, ModuleInventory, ModuleEntries,
	ModuleMovements, ModuleSales, ModuleSuppliers, ModuleUsers,
}

func (m Module) keys() []string {
	return []string{FoldKey(m.ID), FoldKey(m.Title), FoldKey(m.Route)}
}

func permissionKey(p domain.Permission) string {
	for _, v := range []string{p.ModuleName, p.Route, p.Key} {
		if k := FoldKey(v); k != "" {
			return k
		}
	}
	if p.ModuleID != 0 {
		return strconv.FormatInt(p.ModuleID, 10)
	}
	return ""
}

func IsAdmin(u domain.User) bool {
	return strings.Contains(FoldKey(u.RoleLabel()), "admin")
}

// CanAccess reports whether u may open m. Administrators and users without
// any permission entries may open every module.
func CanAccess(u domain.User, m Module) bool {
	if IsAdmin(u) {
		return true
	}
	var granted []string
	for _, p := range u.Permissions {
		if k := permissionKey(p); k != "" {
			granted = append(granted, k)
		}
	}
	if len(granted) == 0 {
		return true
	}
	for _, g := range granted {
		for _, k := range m.keys() {
			if k != "" && g == k {
				return true
			}
		}
	}
	return false
}

// Allowed lists the modules u may open.
func Allowed(u domain.User) []Module {
	var out []Module
	for _, m := range Modules {
		if CanAccess(u, m) {
			out = append(out, m)
		}
	}
	return out
}
