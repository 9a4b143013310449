package service

import (
	"errors"
	"testing"

	"github.com/bgsport/backoffice/internal/repository"
)

func TestFabricServiceLongPriceAndDelete(t *testing.T) {
	env := newServiceTestEnv(t, "fabric_service")
	svc := NewFabricService(repository.NewFabricRepository(env.db))

	fabric, err := svc.Create(FabricInput{Name: " Mesh ", ShortPrice: 45000, LongAdd: 15000})
	if err != nil {
		t.Fatalf("create fabric failed: %v", err)
	}
	if fabric.Name != "Mesh" || fabric.LongPrice.Int64() != 60000 {
		t.Fatalf("unexpected fabric: %+v", fabric)
	}
	updated, err := svc.Update(fabric.ID, FabricInput{Name: "Mesh", ShortPrice: 48000, LongAdd: 15000})
	if err != nil {
		t.Fatalf("update fabric failed: %v", err)
	}
	if updated.LongPrice.Int64() != 63000 {
		t.Fatalf("expected long price recomputed to 63000, got %s", updated.LongPrice.String())
	}
	if _, err := svc.Create(FabricInput{Name: "Bad", ShortPrice: -1}); !errors.Is(err, ErrFabricInvalid) {
		t.Fatalf("expected invalid fabric, got %v", err)
	}

	env.createOrder(t, "PKF26-600", 0)
	if err := svc.Delete(env.fabric.ID); !errors.Is(err, ErrFabricInUse) {
		t.Fatalf("expected fabric in use, got %v", err)
	}
	if err := svc.Delete(fabric.ID); err != nil {
		t.Fatalf("delete unused fabric failed: %v", err)
	}
	if _, err := svc.Get(fabric.ID); !errors.Is(err, ErrFabricNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
