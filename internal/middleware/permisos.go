package middleware

// permisos.go
// Central role/permission matrix. Routes declare the action they need and
// the matrix decides which roles may perform it — role checks are never
// scattered as string comparisons across handlers.

import (
	"net/http"

	"github.com/lgalindop/emociones-viajes-sub000/internal/apierror"

	"github.com/gin-gonic/gin"
)

// Actions guarded by the matrix.
const (
	PermClientesLeer       = "clientes:leer"
	PermClientesEscribir   = "clientes:escribir"
	PermCotizacionesLeer   = "cotizaciones:leer"
	PermCotizacionesEscrib = "cotizaciones:escribir"
	PermVentasConvertir    = "ventas:convertir"
	PermVentasLeer         = "ventas:leer"
	PermVentasCancelar     = "ventas:cancelar"
	PermPagosRegistrar     = "pagos:registrar"
	PermRecibosEmitir      = "recibos:emitir"
	PermRecibosLeer        = "recibos:leer"
	PermReportesLeer       = "reportes:leer"
	PermUsuariosAdmin      = "usuarios:administrar"
	PermActividadesLeer    = "actividades:leer"
	PermNotasEscribir      = "actividades:escribir"
)

// Known roles, lowest to highest privilege.
var Roles = []string{"viewer", "agent", "manager", "admin", "super_admin"}

var permisosLectura = []string{
	PermClientesLeer, PermCotizacionesLeer, PermVentasLeer,
	PermRecibosLeer, PermActividadesLeer,
}

var permisosOperacion = []string{
	PermClientesEscribir, PermCotizacionesEscrib, PermVentasConvertir,
	PermPagosRegistrar, PermRecibosEmitir, PermNotasEscribir,
}

// matriz maps rol → allowed actions. Built once at init.
var matriz = buildMatriz()

func buildMatriz() map[string]map[string]bool {
	m := make(map[string]map[string]bool, len(Roles))
	for _, rol := range Roles {
		m[rol] = make(map[string]bool)
	}

	grant := func(rol string, permisos ...string) {
		for _, p := range permisos {
			m[rol][p] = true
		}
	}

	grant("viewer", permisosLectura...)

	grant("agent", permisosLectura...)
	grant("agent", permisosOperacion...)

	grant("manager", permisosLectura...)
	grant("manager", permisosOperacion...)
	grant("manager", PermVentasCancelar, PermReportesLeer)

	grant("admin", permisosLectura...)
	grant("admin", permisosOperacion...)
	grant("admin", PermVentasCancelar, PermReportesLeer, PermUsuariosAdmin)

	// super_admin holds every permission
	for p := range m["admin"] {
		m["super_admin"][p] = true
	}

	return m
}

// Puede reports whether rol may perform accion. Unknown roles have no
// permissions.
func Puede(rol, accion string) bool {
	perms, ok := matriz[rol]
	if !ok {
		return false
	}
	return perms[accion]
}

// RequirePermiso rejects requests whose JWT role lacks the action.
func RequirePermiso(accion string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !Puede(claims.Rol, accion) {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}
