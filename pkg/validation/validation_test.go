package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "ab", SanitizeString("a\x00b"))
	assert.Equal(t, "a\nb", SanitizeString("a\nb"))
	assert.Equal(t, "ab", SanitizeString("a\x07b"))
}

func TestValidateRollNumber(t *testing.T) {
	assert.NoError(t, ValidateRollNumber("22G31A3167"))
	assert.NoError(t, ValidateRollNumber("20cse001"))
	assert.Error(t, ValidateRollNumber(""))
	assert.Error(t, ValidateRollNumber("abc"))
	assert.Error(t, ValidateRollNumber("22-G31-A3167"))
}

func TestValidateDeptCode(t *testing.T) {
	assert.NoError(t, ValidateDeptCode("CSE"))
	assert.NoError(t, ValidateDeptCode("it"))
	assert.Error(t, ValidateDeptCode(""))
	assert.Error(t, ValidateDeptCode("C"))
	assert.Error(t, ValidateDeptCode("CSE123"))
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ValidateYear(1))
	assert.NoError(t, ValidateYear(4))
	assert.Error(t, ValidateYear(0))
	assert.Error(t, ValidateYear(5))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Abcdef1!"))
	assert.Error(t, ValidatePassword("short1!"))
	assert.Error(t, ValidatePassword("alllowercase1!"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1!"))
	assert.Error(t, ValidatePassword("NoNumbers!"))
	assert.Error(t, ValidatePassword("NoSpecial1"))
}

func TestValidateChatQuery(t *testing.T) {
	assert.NoError(t, ValidateChatQuery("top 5 performers", 500))
	assert.Error(t, ValidateChatQuery("", 500))
	assert.Error(t, ValidateChatQuery("   ", 500))

	long := make([]byte, 501)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, ValidateChatQuery(string(long), 500))
}
