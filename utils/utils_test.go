// file: utils/utils_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/Bellic12/RabbitCTF/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvitationCode(t *testing.T) {
	code := GenerateInvitationCode(8)
	assert.Len(t, code, 8)
	for _, c := range code {
		assert.Contains(t, charset, string(c))
	}
	// 两次生成撞车的概率可以忽略
	assert.NotEqual(t, GenerateInvitationCode(16), GenerateInvitationCode(16))
}

func TestGenerateFlag(t *testing.T) {
	flag := GenerateFlag()
	assert.True(t, strings.HasPrefix(flag, "RabbitCTF{"))
	assert.True(t, strings.HasSuffix(flag, "}"))
	assert.NotEqual(t, flag, GenerateFlag())
}

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{
		ID:       42,
		Username: "alice",
		Role:     models.RoleAdmin,
	}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}
