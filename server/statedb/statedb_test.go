package statedb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrincipals(t *testing.T) {
	db := createTestDB(t)

	p, err := db.CreatePrincipal("Acme-Admin ", RoleAdmin, "Acme Admin", "123456")
	require.NoError(t, err)
	require.Equal(t, "acme-admin", p.Slug)
	require.NotEqual(t, "123456", p.PinHash)

	// Slugs are unique
	_, err = db.CreatePrincipal("acme-admin", RoleAdmin, "Imposter", "999999")
	require.Error(t, err)

	// Validation
	_, err = db.CreatePrincipal("", RoleAdmin, "", "123456")
	require.Error(t, err)
	_, err = db.CreatePrincipal("bob", "superuser", "", "123456")
	require.Error(t, err)
	_, err = db.CreatePrincipal("bob", RoleInvestor, "", "")
	require.Error(t, err)

	// Lookup normalizes the slug too
	got, err := db.GetPrincipal("ACME-ADMIN")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, p.ID, got.ID)

	got, err = db.GetPrincipal("nobody")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestVerifyPIN(t *testing.T) {
	db := createTestDB(t)
	_, err := db.CreatePrincipal("carol", RoleInvestor, "Carol", "314159")
	require.NoError(t, err)

	p, err := db.VerifyPIN("carol", "314159")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, "carol", p.Slug)

	// Wrong PIN and unknown slug are indistinguishable
	p, err = db.VerifyPIN("carol", "000000")
	require.NoError(t, err)
	require.Nil(t, p)
	p, err = db.VerifyPIN("nobody", "314159")
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestSetPIN(t *testing.T) {
	db := createTestDB(t)
	_, err := db.CreatePrincipal("carol", RoleInvestor, "Carol", "111111")
	require.NoError(t, err)
	require.Error(t, db.SetPIN("carol", ""))
	require.NoError(t, db.SetPIN("carol", "222222"))

	p, err := db.VerifyPIN("carol", "111111")
	require.NoError(t, err)
	require.Nil(t, p)
	p, err = db.VerifyPIN("carol", "222222")
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestNumAdminsAndListing(t *testing.T) {
	db := createTestDB(t)
	n, err := db.NumAdmins()
	require.NoError(t, err)
	require.Equal(t, 0, n)

	_, err = db.CreatePrincipal("acme-admin", RoleAdmin, "", "123456")
	require.NoError(t, err)
	_, err = db.CreatePrincipal("carol", RoleInvestor, "Carol", "111111")
	require.NoError(t, err)
	_, err = db.CreatePrincipal("dave", RoleInvestor, "Dave", "222222")
	require.NoError(t, err)

	n, err = db.NumAdmins()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	investors, err := db.ListPrincipals(RoleInvestor)
	require.NoError(t, err)
	require.Len(t, investors, 2)
	all, err := db.ListPrincipals("")
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestDeletePrincipal(t *testing.T) {
	db := createTestDB(t)
	p, err := db.CreatePrincipal("carol", RoleInvestor, "Carol", "111111")
	require.NoError(t, err)
	require.NoError(t, db.DeletePrincipal(p.ID))
	got, err := db.GetPrincipal("carol")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLoginLog(t *testing.T) {
	db := createTestDB(t)
	db.RecordLogin("carol", RoleInvestor, "10.0.0.1:1234", "test-agent")
	db.RecordLogin("dave", RoleInvestor, "10.0.0.2:1234", "test-agent")
	db.RecordLogin("carol", RoleInvestor, "10.0.0.1:5678", "test-agent")

	// Newest first
	list, err := db.ListLogins(0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "carol", list[0].Slug)
	require.Equal(t, "10.0.0.1:5678", list[0].RemoteAddr)
	require.Equal(t, "dave", list[1].Slug)

	list, err = db.ListLogins(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestPartners(t *testing.T) {
	db := createTestDB(t)

	_, err := db.AddPartner(&Partner{})
	require.Error(t, err)

	idZeta, err := db.AddPartner(&Partner{Name: "Zeta Capital", Category: "vc", PosX: 10, PosY: 20})
	require.NoError(t, err)
	idAlpha, err := db.AddPartner(&Partner{Name: "Alpha Bank", Category: "bank"})
	require.NoError(t, err)
	require.NotEqual(t, idZeta, idAlpha)

	// Ordered by name
	list, err := db.ListPartners()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Alpha Bank", list[0].Name)
	require.Equal(t, "Zeta Capital", list[1].Name)

	zeta, err := db.GetPartner(idZeta)
	require.NoError(t, err)
	require.NotNil(t, zeta)
	require.Equal(t, 10.0, zeta.PosX)

	// Update preserves CreatedAt
	created := zeta.CreatedAt
	zeta.Notes = "lead on series B"
	require.NoError(t, db.UpdatePartner(zeta))
	zeta, err = db.GetPartner(idZeta)
	require.NoError(t, err)
	require.Equal(t, "lead on series B", zeta.Notes)
	require.Equal(t, created, zeta.CreatedAt)

	require.Error(t, db.UpdatePartner(&Partner{BaseModel: BaseModel{ID: 9999}, Name: "Ghost"}))

	require.NoError(t, db.SetPartnerPosition(idZeta, 33, 44))
	zeta, err = db.GetPartner(idZeta)
	require.NoError(t, err)
	require.Equal(t, 33.0, zeta.PosX)
	require.Equal(t, 44.0, zeta.PosY)

	require.NoError(t, db.DeletePartner(idAlpha))
	list, err = db.ListPartners()
	require.NoError(t, err)
	require.Len(t, list, 1)

	missing, err := db.GetPartner(idAlpha)
	require.NoError(t, err)
	require.Nil(t, missing)
}
