package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryGetUnknownName(t *testing.T) {
	registry := NewRegistry("mock")

	_, err := registry.Get("absent")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownProvider)

	var unknownErr *UnknownProviderError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "absent", unknownErr.Name)
}

func TestRegistryResolveBlankUsesDefault(t *testing.T) {
	mock := &mockProvider{}
	registry := NewRegistry("mock")
	registry.Register("mock", mock)
	registry.Register("other", &mockProvider{})

	for _, blank := range []string{"", "   "} {
		provider, name, err := registry.Resolve(blank)
		require.NoError(t, err)
		require.Equal(t, "mock", name)
		require.Same(t, mock, provider.(*mockProvider))
	}
}

func TestRegistryResolveUnregisteredDefault(t *testing.T) {
	registry := NewRegistry("ghost")
	registry.Register("mock", &mockProvider{})

	// The default name itself is unregistered: fail, never pick another
	// provider arbitrarily.
	_, name, err := registry.Resolve("")
	require.ErrorIs(t, err, ErrUnknownProvider)
	require.Equal(t, "ghost", name)

	var unknownErr *UnknownProviderError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "ghost", unknownErr.Name)
}

func TestRegistryNamesAreCaseSensitive(t *testing.T) {
	registry := NewRegistry("mock")
	registry.Register("mock", &mockProvider{})

	_, err := registry.Get("Mock")
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRegistryAllReturnsCopy(t *testing.T) {
	registry := NewRegistry("mock")
	registry.Register("mock", &mockProvider{})

	all := registry.All()
	require.Len(t, all, 1)
	delete(all, "mock")

	_, err := registry.Get("mock")
	require.NoError(t, err)
}

func TestRegistryBlankDefaultNameFallsBack(t *testing.T) {
	registry := NewRegistry("")
	require.Equal(t, DefaultProviderName, registry.DefaultName())
}
