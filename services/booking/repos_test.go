package booking

import (
	"context"
	"sync"
	"time"

	appointmentRepo "wrenchly/database/repository/appointment"
	catalogRepo "wrenchly/database/repository/catalog"
	shopRepo "wrenchly/database/repository/shop"
	"wrenchly/models"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the booking service tests.

type fakeShopRepo struct {
	shops map[string]*models.Shop
}

func (f *fakeShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	f.shops[shop.ID] = shop
	return nil
}

func (f *fakeShopRepo) GetByID(ctx context.Context, shopID string) (*models.Shop, error) {
	shop, ok := f.shops[shopID]
	if !ok {
		return nil, shopRepo.ErrNotFound
	}
	copied := *shop
	return &copied, nil
}

func (f *fakeShopRepo) GetByOwner(ctx context.Context, ownerID string) (*models.Shop, error) {
	for _, shop := range f.shops {
		if shop.OwnerID == ownerID {
			copied := *shop
			return &copied, nil
		}
	}
	return nil, shopRepo.ErrNotFound
}

func (f *fakeShopRepo) UpdateProfile(ctx context.Context, shop *models.Shop) error {
	if _, ok := f.shops[shop.ID]; !ok {
		return shopRepo.ErrNotFound
	}
	f.shops[shop.ID] = shop
	return nil
}

func (f *fakeShopRepo) UpdateWorkingHours(ctx context.Context, shopID string, hours []models.WorkingHours) error {
	shop, ok := f.shops[shopID]
	if !ok {
		return shopRepo.ErrNotFound
	}
	shop.WorkingHours = hours
	return nil
}

func (f *fakeShopRepo) UpdateFCMToken(ctx context.Context, shopID, token string) error {
	shop, ok := f.shops[shopID]
	if !ok {
		return shopRepo.ErrNotFound
	}
	shop.FCMToken = token
	return nil
}

type fakeCatalogRepo struct {
	services map[string]*models.Service
}

func (f *fakeCatalogRepo) Create(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeCatalogRepo) Update(ctx context.Context, svc *models.Service) error {
	if _, ok := f.services[svc.ID]; !ok {
		return catalogRepo.ErrNotFound
	}
	f.services[svc.ID] = svc
	return nil
}

func (f *fakeCatalogRepo) Delete(ctx context.Context, shopID, serviceID string) error {
	svc, ok := f.services[serviceID]
	if !ok || svc.ShopID != shopID {
		return catalogRepo.ErrNotFound
	}
	delete(f.services, serviceID)
	return nil
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	copied := *svc
	return &copied, nil
}

func (f *fakeCatalogRepo) ListByShop(ctx context.Context, shopID string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.ShopID == shopID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

type fakeApptRepo struct {
	mu    sync.Mutex
	appts []models.Appointment
}

func (f *fakeApptRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.appts {
		if existing.ShopID == appt.ShopID && existing.Status.Active() && existing.Overlaps(*appt) {
			return appointmentRepo.ErrSlotTaken
		}
	}
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.appts = append(f.appts, *appt)
	return nil
}

func (f *fakeApptRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeApptRepo) ListActiveBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ShopID == shopID && a.Status.Active() &&
			a.StartTime.Before(to) && a.EndTime().After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) ListBetween(ctx context.Context, shopID string, from, to time.Time) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ShopID == shopID && a.StartTime.Before(to) && a.EndTime().After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) ListByShop(ctx context.Context, shopID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.ShopID == shopID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) UpdateStatus(ctx context.Context, id string, expected []models.AppointmentStatus, target models.AppointmentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.appts {
		if a.ID != id {
			continue
		}
		for _, exp := range expected {
			if a.Status == exp {
				f.appts[i].Status = target
				f.appts[i].UpdatedAt = time.Now()
				return nil
			}
		}
		return appointmentRepo.ErrStatusChanged
	}
	return appointmentRepo.ErrNotFound
}
