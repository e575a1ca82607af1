package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpec_FQDN(t *testing.T) {
	for _, tc := range []struct {
		name string
		spec Spec
		want string
	}{
		{"prod apex", Spec{Stage: StageProd}, "aetherdrone.io"},
		{"prod sub", Spec{Stage: StageProd, Sub: "www"}, "www.aetherdrone.io"},
		{"dev prefixed", Spec{Stage: StageDev, DevPrefix: "alice"}, "alice.aetherdrone.io"},
		{"dev sub", Spec{Stage: StageDev, DevPrefix: "alice", Sub: "www"}, "www.alice.aetherdrone.io"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, *tc.spec.FQDN())
		})
	}
}

func TestSpec_Subdomain(t *testing.T) {
	spec := Spec{Stage: StageDev, DevPrefix: "alice"}
	require.Equal(t, "api.alice.aetherdrone.io", *spec.Subdomain("api"))
}

func TestSpec_Panics(t *testing.T) {
	require.Panics(t, func() {
		Spec{Stage: StageProd, DevPrefix: "alice"}.FQDN()
	})
	require.Panics(t, func() {
		Spec{Stage: StageDev}.FQDN()
	})
}
