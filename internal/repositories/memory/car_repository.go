package memory

import (
	"context"
	"sync"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/repositories"
)

type CarRepository struct {
	mu    sync.RWMutex
	order []string
	cars  map[string]models.Car
}

func NewCarRepository() *CarRepository {
	return &CarRepository{cars: make(map[string]models.Car)}
}

func (r *CarRepository) Create(_ context.Context, car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cars[car.CarID]; ok {
		return repositories.ErrCarAlreadyExists
	}
	r.cars[car.CarID] = car.Snapshot()
	r.order = append(r.order, car.CarID)
	return nil
}

func (r *CarRepository) FindByCarID(_ context.Context, carID string) (*models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	car, ok := r.cars[carID]
	if !ok {
		return nil, repositories.ErrCarNotFound
	}
	cp := car.Snapshot()
	return &cp, nil
}

func (r *CarRepository) FindAll(_ context.Context) ([]models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cars := make([]models.Car, 0, len(r.order))
	for _, id := range r.order {
		cars = append(cars, r.cars[id].Snapshot())
	}
	return cars, nil
}

func (r *CarRepository) Update(_ context.Context, carID string, upd repositories.CarUpdate) (*models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	car, ok := r.cars[carID]
	if !ok {
		return nil, repositories.ErrCarNotFound
	}
	upd.Apply(&car)
	r.cars[carID] = car
	cp := car.Snapshot()
	return &cp, nil
}

func (r *CarRepository) Delete(_ context.Context, carID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cars[carID]; !ok {
		return repositories.ErrCarNotFound
	}
	delete(r.cars, carID)
	for i, id := range r.order {
		if id == carID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *CarRepository) AppendImage(_ context.Context, carID, url string) (*models.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	car, ok := r.cars[carID]
	if !ok {
		return nil, repositories.ErrCarNotFound
	}
	car.Images = append(car.Images, url)
	r.cars[carID] = car
	cp := car.Snapshot()
	return &cp, nil
}
