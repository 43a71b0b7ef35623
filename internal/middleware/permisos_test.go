package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPuede_Viewer(t *testing.T) {
	assert.True(t, Puede("viewer", PermClientesLeer))
	assert.True(t, Puede("viewer", PermVentasLeer))
	assert.True(t, Puede("viewer", PermRecibosLeer))

	assert.False(t, Puede("viewer", PermClientesEscribir))
	assert.False(t, Puede("viewer", PermPagosRegistrar))
	assert.False(t, Puede("viewer", PermVentasCancelar))
	assert.False(t, Puede("viewer", PermReportesLeer))
	assert.False(t, Puede("viewer", PermUsuariosAdmin))
}

func TestPuede_Agent(t *testing.T) {
	assert.True(t, Puede("agent", PermClientesEscribir))
	assert.True(t, Puede("agent", PermVentasConvertir))
	assert.True(t, Puede("agent", PermPagosRegistrar))
	assert.True(t, Puede("agent", PermRecibosEmitir))
	assert.True(t, Puede("agent", PermNotasEscribir))

	assert.False(t, Puede("agent", PermVentasCancelar))
	assert.False(t, Puede("agent", PermReportesLeer))
	assert.False(t, Puede("agent", PermUsuariosAdmin))
}

func TestPuede_Manager(t *testing.T) {
	assert.True(t, Puede("manager", PermVentasCancelar))
	assert.True(t, Puede("manager", PermReportesLeer))
	assert.False(t, Puede("manager", PermUsuariosAdmin))
}

func TestPuede_Admin(t *testing.T) {
	assert.True(t, Puede("admin", PermUsuariosAdmin))
	assert.True(t, Puede("admin", PermVentasCancelar))
	assert.True(t, Puede("admin", PermReportesLeer))
}

func TestPuede_SuperAdminTieneTodo(t *testing.T) {
	acciones := []string{
		PermClientesLeer, PermClientesEscribir,
		PermCotizacionesLeer, PermCotizacionesEscrib,
		PermVentasLeer, PermVentasConvertir, PermVentasCancelar,
		PermPagosRegistrar, PermRecibosEmitir, PermRecibosLeer,
		PermReportesLeer, PermUsuariosAdmin,
		PermActividadesLeer, PermNotasEscribir,
	}
	for _, accion := range acciones {
		assert.True(t, Puede("super_admin", accion), accion)
	}
}

func TestPuede_RolDesconocido(t *testing.T) {
	assert.False(t, Puede("", PermClientesLeer))
	assert.False(t, Puede("root", PermClientesLeer))
	assert.False(t, Puede("AGENT", PermClientesLeer))
}

func TestRequirePermiso(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/ventas", func(c *gin.Context) {
		c.Set(ClaimsKey, &JWTClaims{UserID: "u1", Username: "ana", Rol: c.GetHeader("X-Test-Rol")})
	}, RequirePermiso(PermVentasCancelar), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	cases := []struct {
		rol      string
		expected int
	}{
		{"manager", http.StatusNoContent},
		{"super_admin", http.StatusNoContent},
		{"agent", http.StatusForbidden},
		{"viewer", http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/ventas", nil)
		req.Header.Set("X-Test-Rol", tc.rol)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tc.expected, w.Code, "rol=%s", tc.rol)
	}
}
