package tenant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "caja@asociacion.org", NormalizeEmail("  Caja@Asociacion.ORG "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestScope_Resolved(t *testing.T) {
	assert.False(t, Unresolved("a@b.c").Resolved())
	assert.Equal(t, "a@b.c", Unresolved(" A@B.C").Email)
	assert.True(t, Scope{AssociationID: "id", Email: "a@b.c"}.Resolved())
}
