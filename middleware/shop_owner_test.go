package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"
	"wrenchly/services/appointment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubShopRepo struct {
	shop *models.Shop
}

func (s *stubShopRepo) Create(ctx context.Context, shop *models.Shop) error { return nil }

func (s *stubShopRepo) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	if s.shop == nil || s.shop.ID != shopID {
		return nil, shopRepo.ErrNotFound
	}
	return s.shop, nil
}

func (s *stubShopRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Shop, error) {
	if s.shop == nil || s.shop.OwnerID != ownerID {
		return nil, shopRepo.ErrNotFound
	}
	return s.shop, nil
}

func (s *stubShopRepo) UpdateProfile(ctx context.Context, shop *models.Shop) error { return nil }

func (s *stubShopRepo) UpdateWorkingHours(ctx context.Context, shopID string, hours []models.WorkingHours) error {
	return nil
}

func (s *stubShopRepo) UpdateFCMToken(ctx context.Context, shopID, token string) error { return nil }

func performOwnedRequest(t *testing.T, actor appointment.Actor, shopID string) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := &stubShopRepo{shop: &models.Shop{ID: "shop-1", OwnerID: "owner-1"}}
	r := gin.New()
	r.PUT("/api/shops/:shopID/working-hours",
		func(c *gin.Context) { c.Set(actorKey, actor) },
		ShopOwnerMiddleware(repo),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "updated"}) },
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/shops/"+shopID+"/working-hours", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestShopOwnerMiddlewareAllowsOwner(t *testing.T) {
	code := performOwnedRequest(t, appointment.Actor{ID: "owner-1", Role: appointment.RoleShop}, "shop-1")
	assert.Equal(t, http.StatusOK, code)
}

func TestShopOwnerMiddlewareRejectsOtherOwner(t *testing.T) {
	code := performOwnedRequest(t, appointment.Actor{ID: "owner-2", Role: appointment.RoleShop}, "shop-1")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestShopOwnerMiddlewareRejectsShopIDSubject(t *testing.T) {
	// The shop document ID is not an identity; only the owner's user ID is.
	code := performOwnedRequest(t, appointment.Actor{ID: "shop-1", Role: appointment.RoleShop}, "shop-1")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestShopOwnerMiddlewareRejectsCustomer(t *testing.T) {
	code := performOwnedRequest(t, appointment.Actor{ID: "owner-1", Role: appointment.RoleCustomer}, "shop-1")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestShopOwnerMiddlewareUnknownShop(t *testing.T) {
	code := performOwnedRequest(t, appointment.Actor{ID: "owner-1", Role: appointment.RoleShop}, "shop-9")
	assert.Equal(t, http.StatusNotFound, code)
}
