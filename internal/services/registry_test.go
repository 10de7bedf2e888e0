package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	name    string
	initErr error
	inits   int
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Initialize() error {
	s.inits++
	return s.initErr
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	svc := &stubService{name: "settings"}

	require.NoError(t, registry.RegisterService(svc))

	got, err := registry.GetService("settings")
	require.NoError(t, err)
	assert.Same(t, svc, got)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&stubService{name: "audit"}))

	err := registry.RegisterService(&stubService{name: "audit"})
	require.Error(t, err)
	assert.Equal(t, "service audit already registered", err.Error())
}

func TestRegistry_GetUnknown(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.GetService("ghost")
	require.Error(t, err)
	assert.Equal(t, "service ghost not found", err.Error())
}

func TestRegistry_InitializeAll(t *testing.T) {
	registry := NewRegistry()
	a := &stubService{name: "a"}
	b := &stubService{name: "b"}
	require.NoError(t, registry.RegisterService(a))
	require.NoError(t, registry.RegisterService(b))

	require.NoError(t, registry.InitializeAll())
	assert.Equal(t, 1, a.inits)
	assert.Equal(t, 1, b.inits)
}

func TestRegistry_InitializeAllPropagatesFailure(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&stubService{name: "broken", initErr: errors.New("disk full")}))

	err := registry.InitializeAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize service broken")
}

func TestRegistry_GetAllServicesReturnsCopy(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterService(&stubService{name: "history"}))

	all := registry.GetAllServices()
	delete(all, "history")

	_, err := registry.GetService("history")
	assert.NoError(t, err)
}
