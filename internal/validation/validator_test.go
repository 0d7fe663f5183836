package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func TestStruct(t *testing.T) {
	field, err := Struct(sample{Username: "a", Password: "b"})
	assert.NoError(t, err)
	assert.Empty(t, field)

	field, err = Struct(sample{Username: "a"})
	assert.Error(t, err)
	assert.Equal(t, "Password", field)

	field, err = Struct(sample{})
	assert.Error(t, err)
	assert.Equal(t, "Username", field)
}
