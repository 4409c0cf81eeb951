package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hanahafi/redux-stack-ecommerce/internal/apperr"
	"github.com/Hanahafi/redux-stack-ecommerce/internal/models"
)

func TestProductsAreScopedToSeller(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice", models.RoleSeller)
	bob := seedUser(t, s, "bob", models.RoleSeller)
	lamp := seedProduct(t, s, alice.ID, "Lamp", 10, 5)
	seedProduct(t, s, bob.ID, "Chair", 40, 2)

	mine, err := s.ListProductsBySeller(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Lamp", mine[0].Name)

	all, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.UpdateSellerProduct(ctx, bob.ID, models.Product{ID: lamp.ID, Name: "Stolen", Price: 1, Quantity: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = s.DeleteSellerProduct(ctx, bob.ID, lamp.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	got, err := s.GetProduct(ctx, lamp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", got.Name)
	assert.Equal(t, 5, got.Quantity)
}

func TestUpdateSellerProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := seedUser(t, s, "seller", models.RoleSeller)
	p := seedProduct(t, s, seller.ID, "Lamp", 10, 5)

	updated, err := s.UpdateSellerProduct(ctx, seller.ID, models.Product{ID: p.ID, Name: "Desk Lamp", Price: 12.5, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", updated.Name)
	assert.Equal(t, 12.5, updated.Price)
	assert.Equal(t, 7, updated.Quantity)
	assert.Equal(t, seller.ID, updated.SellerID)
}

func TestDeleteProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := seedUser(t, s, "seller", models.RoleSeller)
	p := seedProduct(t, s, seller.ID, "Lamp", 10, 5)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, p.ID), apperr.ErrNotFound)

	_, err := s.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSellerProductStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := seedUser(t, s, "seller", models.RoleSeller)

	empty, err := s.SellerProductStats(ctx, seller.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SellerProductStats{}, *empty)

	seedProduct(t, s, seller.ID, "Lamp", 10, 5)
	seedProduct(t, s, seller.ID, "Chair", 2.5, 4)

	st, err := s.SellerProductStats(ctx, seller.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, st.TotalProducts)
	assert.EqualValues(t, 9, st.TotalStock)
	assert.InDelta(t, 60.0, st.TotalValue, 0.001)
}
