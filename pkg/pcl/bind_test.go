package pcl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pclgo/pcl-go/internal/bindgen"
	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
)

func TestCatalogKindsResolve(t *testing.T) {
	for _, name := range bindgen.Kinds() {
		_, ok := backend.KindByName(name)
		assert.True(t, ok, name)
	}
}

func TestConstructRejectsUnknownKind(t *testing.T) {
	cls := &bindgen.Class{Name: "Bogus", Native: "pcl::Bogus", Kind: "bogus", Ctors: []bindgen.Signature{{}}}
	_, err := construct(cls, 0, nil, nil, true)
	assert.ErrorIs(t, err, bindgen.ErrMalformed)
}
