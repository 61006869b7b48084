package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() *Address {
	return &Address{Street: "12 rue des Lilas", City: "Lyon", PostalCode: "69003"}
}

func TestNewUser_AdminHasNoShopOrAddress(t *testing.T) {
	user, err := NewUser("Alice", "Alice@Example.com", "", "hash", RoleAdmin, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.Active)
	assert.Nil(t, user.ShopID)
	assert.Nil(t, user.Address)
	assert.True(t, user.IsAdmin())
}

func TestNewUser_ShopOwnerRequiresShopReference(t *testing.T) {
	_, err := NewUser("Bob", "bob@example.com", "", "hash", RoleShopOwner, nil, nil)
	require.Error(t, err)

	shopID := uuid.New()
	user, err := NewUser("Bob", "bob@example.com", "", "hash", RoleShopOwner, &shopID, nil)
	require.NoError(t, err)
	assert.Equal(t, shopID, *user.ShopID)
}

func TestNewUser_NonOwnerForbidsShopReference(t *testing.T) {
	shopID := uuid.New()

	for _, role := range []Role{RoleAdmin, RoleShopOwnerPending, RoleClient} {
		_, err := NewUser("Eve", "eve@example.com", "", "hash", role, &shopID, validAddress())
		assert.Error(t, err, "role %s must not carry a shop reference", role)
	}
}

func TestNewUser_ClientRequiresAddress(t *testing.T) {
	_, err := NewUser("Carol", "carol@example.com", "", "hash", RoleClient, nil, nil)
	require.Error(t, err)

	user, err := NewUser("Carol", "carol@example.com", "", "hash", RoleClient, nil, validAddress())
	require.NoError(t, err)
	assert.True(t, user.IsClient())
}

func TestNewUser_ClientAddressPostalCode(t *testing.T) {
	addr := validAddress()
	addr.PostalCode = "6900"

	_, err := NewUser("Carol", "carol@example.com", "", "hash", RoleClient, nil, addr)
	assert.Error(t, err)
}

func TestNewUser_NonClientForbidsAddress(t *testing.T) {
	_, err := NewUser("Dan", "dan@example.com", "", "hash", RoleShopOwnerPending, nil, validAddress())
	assert.Error(t, err)
}

func TestNewUser_FieldValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		hash     string
		role     Role
	}{
		{name: "short name", userName: "A", email: "a@example.com", hash: "h", role: RoleAdmin},
		{name: "bad email", userName: "Alice", email: "not-an-email", hash: "h", role: RoleAdmin},
		{name: "missing password", userName: "Alice", email: "a@example.com", hash: "", role: RoleAdmin},
		{name: "unknown role", userName: "Alice", email: "a@example.com", hash: "h", role: Role("root")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.userName, tt.email, "", tt.hash, tt.role, nil, nil)
			assert.Error(t, err)
		})
	}
}
