package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
)

func TestRouterStartsAtRoleDefault(t *testing.T) {
	r := NewRouter(models.User{ID: 1, Role: models.RoleStudent})
	assert.Equal(t, ViewDashboard, r.Resolve())
}

func TestRouterSelectOutsideMenuFallsBackToDefault(t *testing.T) {
	// Students have no Courses entry; the selection is recorded but the
	// role default renders.
	r := NewRouter(models.User{ID: 1, Role: models.RoleStudent})

	r.Select(ViewCourses)

	assert.Equal(t, ViewCourses, r.Current())
	assert.Equal(t, ViewDashboard, r.Resolve())
}

func TestRouterSelectInsideMenuResolvesAsIs(t *testing.T) {
	r := NewRouter(models.User{ID: 2, Role: models.RoleProgramLeader})

	r.Select(ViewCourses)

	assert.Equal(t, ViewCourses, r.Resolve())
}

func TestRouterUnknownRoleResolvesToFallback(t *testing.T) {
	r := NewRouter(models.User{ID: 3, Role: models.Role("registrar")})

	r.Select(ViewMonitoring)

	assert.Equal(t, ViewUnrecognizedRole, r.Resolve())
}

func TestRouterResetClearsStaleSelection(t *testing.T) {
	r := NewRouter(models.User{ID: 4, Role: models.RoleAdmin})
	r.Select(ViewReports)

	r.Reset(models.User{ID: 5, Role: models.RoleStudent})

	assert.Equal(t, ViewDashboard, r.Current())
	assert.Equal(t, ViewDashboard, r.Resolve())
	assert.Equal(t, 5, r.Owner().ID)
}

func TestRegistryResetsOnRoleChange(t *testing.T) {
	reg := NewRegistry()

	r := reg.For(models.User{ID: 9, Role: models.RoleLecturer})
	r.Select(ViewMonitoring)

	// Same user comes back with the same role: selection survives.
	same := reg.For(models.User{ID: 9, Role: models.RoleLecturer})
	assert.Same(t, r, same)
	assert.Equal(t, ViewMonitoring, same.Current())

	// Role changed behind the ID: router resets to the new default.
	changed := reg.For(models.User{ID: 9, Role: models.RoleAdmin})
	assert.Equal(t, ViewDashboard, changed.Current())
	assert.Equal(t, models.RoleAdmin, changed.Owner().Role)
}

func TestRegistryDrop(t *testing.T) {
	reg := NewRegistry()
	r := reg.For(models.User{ID: 7, Role: models.RoleStudent})
	r.Select(ViewRating)

	reg.Drop(7)

	fresh := reg.For(models.User{ID: 7, Role: models.RoleStudent})
	assert.Equal(t, ViewDashboard, fresh.Current())
}
