package line

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSignature(t *testing.T) {
	body := []byte(`{"events":[]}`)
	sig := Sign("secret", body)

	assert.True(t, ValidateSignature("secret", body, sig))
	assert.False(t, ValidateSignature("other", body, sig))
	assert.False(t, ValidateSignature("secret", []byte(`{"events":[{}]}`), sig))
	assert.False(t, ValidateSignature("secret", body, ""))
	assert.False(t, ValidateSignature("secret", body, "not base64!"))
}
